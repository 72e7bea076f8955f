// Package features converts raw listing attributes into the exact feature
// record the trained rent model was fit on. Column names, value encodings and
// ordering must stay byte-identical to the training schema; the model performs
// no schema check of its own and would silently misread a drifted frame.
package features

import "github.com/mietwert/backend/internal/domain"

// Field names of the four closed categorical vocabularies.
const (
	FieldHeatingType  = "heatingType"
	FieldCondition    = "condition"
	FieldInteriorQual = "interiorQual"
	FieldTypeOfFlat   = "typeOfFlat"
)

// heatingMap maps the form's German heating labels to the model vocabulary.
var heatingMap = map[string]string{
	"Zentralheizung":    "central_heating",
	"Fernwaerme":        "district_heating",
	"Gas-Heizung":       "gas_heating",
	"Etagenheizung":     "self_contained_central_heating",
	"Fussbodenheizung":  "floor_heating",
	"Oelheizung":        "oil_heating",
	"Waermepumpe":       "heat_pump",
	"Holzpelletheizung": "wood_pellet_heating",
	"Andere":            "central_heating",
}

var conditionMap = map[string]string{
	"Gepflegt":                 "well_kept",
	"Erstbezug":                "first_time_use",
	"Saniert":                  "refurbished",
	"Vollstaendig renoviert":   "fully_renovated",
	"Neuwertig":                "mint_condition",
	"Modernisiert":             "modernized",
	"Erstbezug nach Sanierung": "first_time_use_after_refurbishment",
	"Andere":                   "negotiable",
}

var qualMap = map[string]string{
	"Normal":  "normal",
	"Gehoben": "sophisticated",
	"Luxus":   "luxury",
	"Einfach": "simple",
}

var typeMap = map[string]string{
	"Etagenwohnung": "apartment",
	"Dachgeschoss":  "roof_storey",
	"Erdgeschoss":   "ground_floor",
	"Maisonette":    "maisonette",
	"Hochparterre":  "raised_ground_floor",
	"Penthouse":     "penthouse",
	"Souterrain":    "half_basement",
	"Andere":        "apartment",
}

// defaultToken holds the fallback token per field, used for any label outside
// the closed vocabulary. These match the training-time "Andere" buckets.
var defaultToken = map[string]string{
	FieldHeatingType:  "central_heating",
	FieldCondition:    "negotiable",
	FieldInteriorQual: "normal",
	FieldTypeOfFlat:   "apartment",
}

var vocabularies = map[string]map[string]string{
	FieldHeatingType:  heatingMap,
	FieldCondition:    conditionMap,
	FieldInteriorQual: qualMap,
	FieldTypeOfFlat:   typeMap,
}

// Normalize maps a human-facing label to the model's category token for the
// given field. Unknown labels collapse to the field's default token; Normalize
// never fails, so arbitrary form input cannot reach the feature vector
// unencoded.
func Normalize(field, rawLabel string) string {
	vocab, ok := vocabularies[field]
	if !ok {
		return rawLabel
	}
	if token, ok := vocab[rawLabel]; ok {
		return token
	}
	return defaultToken[field]
}

// NormalizeCategories returns a copy of the input with all four categorical
// fields replaced by their model vocabulary tokens.
func NormalizeCategories(in domain.ListingInput) domain.ListingInput {
	in.HeatingType = Normalize(FieldHeatingType, in.HeatingType)
	in.Condition = Normalize(FieldCondition, in.Condition)
	in.InteriorQual = Normalize(FieldInteriorQual, in.InteriorQual)
	in.TypeOfFlat = Normalize(FieldTypeOfFlat, in.TypeOfFlat)
	return in
}
