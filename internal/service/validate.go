package service

import (
	"time"

	"github.com/mietwert/backend/internal/domain"
)

// Plausibility bounds for advisory input validation. Values outside these
// ranges are flagged, never rejected: the model still produces an estimate.
const (
	minLivingSpace = 15.0
	maxLivingSpace = 350.0
	minRooms       = 1.0
	maxRooms       = 12.0
	minYearBuilt   = 1850.0
	minSqmPerRoom  = 8.0
	maxSqmPerRoom  = 80.0
)

// ValidateInput checks a raw listing for obviously implausible values and
// returns advisory warnings. All rules are independent and can fire together;
// the function is pure and never fails.
func ValidateInput(in domain.ListingInput, now time.Time) []string {
	var warnings []string
	if in.LivingSpace < minLivingSpace || in.LivingSpace > maxLivingSpace {
		warnings = append(warnings, "Wohnflaeche liegt ausserhalb des typischen Bereichs (15-350 m2).")
	}
	if in.NoRooms < minRooms || in.NoRooms > maxRooms {
		warnings = append(warnings, "Zimmeranzahl liegt ausserhalb des typischen Bereichs (1-12).")
	}
	if in.YearConstructed < minYearBuilt || in.YearConstructed > float64(now.Year()+1) {
		warnings = append(warnings, "Baujahr liegt ausserhalb des typischen Bereichs.")
	}
	if in.LivingSpace > 0 && in.NoRooms > 0 {
		sqmPerRoom := in.LivingSpace / in.NoRooms
		if sqmPerRoom < minSqmPerRoom || sqmPerRoom > maxSqmPerRoom {
			warnings = append(warnings, "Wohnflaeche pro Zimmer wirkt unplausibel.")
		}
	}
	return warnings
}
