package service

import (
	"testing"
	"time"

	"github.com/mietwert/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

func plausibleInput() domain.ListingInput {
	return domain.ListingInput{
		LivingSpace:     75,
		NoRooms:         3,
		YearConstructed: 1995,
	}
}

func TestValidateInputPlausibleListingHasNoWarnings(t *testing.T) {
	assert.Empty(t, ValidateInput(plausibleInput(), testNow))
}

func TestValidateInputTinyAreaFiresTwoRules(t *testing.T) {
	in := plausibleInput()
	in.LivingSpace = 5

	warnings := ValidateInput(in, testNow)
	assert.Len(t, warnings, 2)
	assert.Contains(t, warnings, "Wohnflaeche liegt ausserhalb des typischen Bereichs (15-350 m2).")
	assert.Contains(t, warnings, "Wohnflaeche pro Zimmer wirkt unplausibel.")
}

func TestValidateInputRoomCountRange(t *testing.T) {
	in := plausibleInput()
	in.NoRooms = 13
	in.LivingSpace = 350

	warnings := ValidateInput(in, testNow)
	assert.Contains(t, warnings, "Zimmeranzahl liegt ausserhalb des typischen Bereichs (1-12).")
}

func TestValidateInputConstructionYearRange(t *testing.T) {
	old := plausibleInput()
	old.YearConstructed = 1800
	assert.Contains(t, ValidateInput(old, testNow), "Baujahr liegt ausserhalb des typischen Bereichs.")

	future := plausibleInput()
	future.YearConstructed = float64(testNow.Year() + 2)
	assert.Contains(t, ValidateInput(future, testNow), "Baujahr liegt ausserhalb des typischen Bereichs.")

	// Next year is allowed: new constructions are listed ahead of completion.
	nextYear := plausibleInput()
	nextYear.YearConstructed = float64(testNow.Year() + 1)
	assert.Empty(t, ValidateInput(nextYear, testNow))
}

func TestValidateInputAllRulesFireTogether(t *testing.T) {
	in := domain.ListingInput{
		LivingSpace:     400,
		NoRooms:         0.5,
		YearConstructed: 1700,
	}

	warnings := ValidateInput(in, testNow)
	assert.Len(t, warnings, 4)
}

func TestValidateInputBoundariesAreInclusive(t *testing.T) {
	in := domain.ListingInput{
		LivingSpace:     15,
		NoRooms:         1,
		YearConstructed: 1850,
	}
	assert.Empty(t, ValidateInput(in, testNow))

	in = domain.ListingInput{
		LivingSpace:     350,
		NoRooms:         12,
		YearConstructed: float64(testNow.Year()),
	}
	assert.Empty(t, ValidateInput(in, testNow))
}
