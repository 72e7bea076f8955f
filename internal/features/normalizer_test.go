package features

import (
	"testing"

	"github.com/mietwert/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeKnownLabels(t *testing.T) {
	cases := []struct {
		field string
		label string
		want  string
	}{
		{FieldHeatingType, "Zentralheizung", "central_heating"},
		{FieldHeatingType, "Fernwaerme", "district_heating"},
		{FieldHeatingType, "Gas-Heizung", "gas_heating"},
		{FieldHeatingType, "Etagenheizung", "self_contained_central_heating"},
		{FieldHeatingType, "Fussbodenheizung", "floor_heating"},
		{FieldHeatingType, "Oelheizung", "oil_heating"},
		{FieldHeatingType, "Waermepumpe", "heat_pump"},
		{FieldHeatingType, "Holzpelletheizung", "wood_pellet_heating"},
		{FieldHeatingType, "Andere", "central_heating"},
		{FieldCondition, "Gepflegt", "well_kept"},
		{FieldCondition, "Erstbezug", "first_time_use"},
		{FieldCondition, "Saniert", "refurbished"},
		{FieldCondition, "Vollstaendig renoviert", "fully_renovated"},
		{FieldCondition, "Neuwertig", "mint_condition"},
		{FieldCondition, "Modernisiert", "modernized"},
		{FieldCondition, "Erstbezug nach Sanierung", "first_time_use_after_refurbishment"},
		{FieldCondition, "Andere", "negotiable"},
		{FieldInteriorQual, "Normal", "normal"},
		{FieldInteriorQual, "Gehoben", "sophisticated"},
		{FieldInteriorQual, "Luxus", "luxury"},
		{FieldInteriorQual, "Einfach", "simple"},
		{FieldTypeOfFlat, "Etagenwohnung", "apartment"},
		{FieldTypeOfFlat, "Dachgeschoss", "roof_storey"},
		{FieldTypeOfFlat, "Erdgeschoss", "ground_floor"},
		{FieldTypeOfFlat, "Maisonette", "maisonette"},
		{FieldTypeOfFlat, "Hochparterre", "raised_ground_floor"},
		{FieldTypeOfFlat, "Penthouse", "penthouse"},
		{FieldTypeOfFlat, "Souterrain", "half_basement"},
		{FieldTypeOfFlat, "Andere", "apartment"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Normalize(tc.field, tc.label), "%s / %s", tc.field, tc.label)
	}
}

func TestNormalizeUnknownLabelFallsBackToDefault(t *testing.T) {
	assert.Equal(t, "central_heating", Normalize(FieldHeatingType, "Lagerfeuer"))
	assert.Equal(t, "negotiable", Normalize(FieldCondition, "kaputt"))
	assert.Equal(t, "normal", Normalize(FieldInteriorQual, ""))
	assert.Equal(t, "apartment", Normalize(FieldTypeOfFlat, "Schloss"))
}

func TestNormalizeCategoriesReplacesOnlyCategoricalFields(t *testing.T) {
	in := domain.ListingInput{
		LivingSpace:  75,
		Regio1:       "Bayern",
		Regio2:       "Muenchen",
		GeoPLZ:       "80331",
		HeatingType:  "Zentralheizung",
		Condition:    "Gepflegt",
		InteriorQual: "Normal",
		TypeOfFlat:   "Etagenwohnung",
	}

	out := NormalizeCategories(in)

	assert.Equal(t, "central_heating", out.HeatingType)
	assert.Equal(t, "well_kept", out.Condition)
	assert.Equal(t, "normal", out.InteriorQual)
	assert.Equal(t, "apartment", out.TypeOfFlat)
	assert.Equal(t, in.Regio1, out.Regio1)
	assert.Equal(t, in.GeoPLZ, out.GeoPLZ)
	assert.Equal(t, in.LivingSpace, out.LivingSpace)
}
