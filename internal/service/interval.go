package service

// DefaultMargin is the heuristic half-width of the confidence band.
const DefaultMargin = 0.10

// ConfidenceNote tells callers the band is a fixed-percentage heuristic, not
// a calibrated prediction interval.
const ConfidenceNote = "Intervall basiert auf +/-10% Heuristik."

// Interval returns the symmetric heuristic band around a point estimate.
func Interval(point, margin float64) (lower, upper float64) {
	lower = point * (1 - margin)
	upper = point * (1 + margin)
	return lower, upper
}

// PricePerSqm derives the price per square meter. Undefined (nil) when the
// living area is not positive.
func PricePerSqm(prediction, livingSpace float64) *float64 {
	if livingSpace <= 0 {
		return nil
	}
	v := prediction / livingSpace
	return &v
}
