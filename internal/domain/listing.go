package domain

// ListingInput represents the raw attributes of a residential unit as entered
// in the web form. Categorical fields carry the human-facing German labels;
// they are normalized to the model vocabulary before vector assembly.
type ListingInput struct {
	LivingSpace     float64 `json:"livingSpace"`
	NoRooms         float64 `json:"noRooms"`
	Floor           float64 `json:"floor"`
	YearConstructed float64 `json:"yearConstructed"`
	Regio1          string  `json:"regio1"`
	Regio2          string  `json:"regio2"`
	// GeoPLZ stays a string end to end. Saxon postal codes start with 0 and
	// a numeric round trip would drop the leading zero.
	GeoPLZ       string `json:"geo_plz"`
	HeatingType  string `json:"heatingType"`
	Condition    string `json:"condition"`
	InteriorQual string `json:"interiorQual"`
	TypeOfFlat   string `json:"typeOfFlat"`
	Balcony      bool   `json:"balcony"`
	Lift         bool   `json:"lift"`
	HasKitchen   bool   `json:"hasKitchen"`
	Garden       bool   `json:"garden"`
	Cellar       bool   `json:"cellar"`
	// Date is the listing date in YYYY-MM-DD or RFC 3339 form. Empty means
	// "posted now".
	Date string `json:"date,omitempty"`
}

// FeatureWeight is one entry of the feature importance ranking. Weight is a
// percentage share of the model's total importance mass.
type FeatureWeight struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// EstimateResult is the full response for one rent estimation.
type EstimateResult struct {
	Prediction        float64         `json:"prediction"`
	IntervalLower     float64         `json:"interval_lower"`
	IntervalUpper     float64         `json:"interval_upper"`
	EurPerSqm         *float64        `json:"eur_per_sqm"`
	Warnings          []string        `json:"warnings"`
	FeatureImportance []FeatureWeight `json:"feature_importance"`
	ConfidenceNote    string          `json:"confidence_note"`
}
