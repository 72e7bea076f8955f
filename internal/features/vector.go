package features

import (
	"math"
	"time"

	"github.com/mietwert/backend/internal/domain"
)

// ValueKind discriminates the cell types the model consumes.
type ValueKind int

const (
	Numeric ValueKind = iota
	Categorical
	Boolean
)

// Value is a single cell of the feature record.
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
}

// Float returns the cell as a number; booleans map to 1/0. Categorical cells
// have no numeric form and return false.
func (v Value) Float() (float64, bool) {
	if v.Kind == Categorical {
		return 0, false
	}
	return v.Num, true
}

func num(f float64) Value { return Value{Kind: Numeric, Num: f} }
func cat(s string) Value { return Value{Kind: Categorical, Str: s} }

func boolean(b bool) Value {
	v := Value{Kind: Boolean}
	if b {
		v.Num = 1
	}
	return v
}

// FeatureVector is one single-row feature record in training column order.
type FeatureVector struct {
	Names  []string
	Values []Value
}

// Lookup returns the cell for the named column.
func (v FeatureVector) Lookup(name string) (Value, bool) {
	for i, n := range v.Names {
		if n == name {
			return v.Values[i], true
		}
	}
	return Value{}, false
}

// columnOrder is the exact column set and ordering of the training frame.
// Do not reorder or rename: the model has no schema check and would silently
// misinterpret a drifted frame.
var columnOrder = []string{
	"post_year",
	"post_month",
	"livingSpace",
	"noRooms",
	"floor",
	"regio1",
	"regio2",
	"heatingType",
	"condition",
	"interiorQual",
	"typeOfFlat",
	"geo_plz",
	"balcony",
	"lift",
	"hasKitchen",
	"garden",
	"cellar",
	"yearConstructed",
	"condition_was_missing",
	"interiorQual_was_missing",
	"heatingType_was_missing",
	"yearConstructed_was_missing",
}

// ColumnNames returns a copy of the training column order.
func ColumnNames() []string {
	out := make([]string, len(columnOrder))
	copy(out, columnOrder)
	return out
}

// VectorBuilder assembles feature vectors. The clock is injectable because an
// absent listing date defaults to "now", feeding the post_year/post_month
// features.
type VectorBuilder struct {
	now func() time.Time
}

// NewVectorBuilder creates a builder using the system clock.
func NewVectorBuilder() *VectorBuilder {
	return &VectorBuilder{now: time.Now}
}

// NewVectorBuilderWithClock creates a builder with a fixed clock for tests.
func NewVectorBuilderWithClock(now func() time.Time) *VectorBuilder {
	return &VectorBuilder{now: now}
}

// Build assembles the single-row feature record for a normalized input.
// Returns *domain.SchemaError when a required field is absent or malformed;
// it performs no range checking, which is the plausibility validator's job.
func (b *VectorBuilder) Build(in domain.ListingInput) (FeatureVector, error) {
	if err := checkSchema(in); err != nil {
		return FeatureVector{}, err
	}

	date, err := b.listingDate(in.Date)
	if err != nil {
		return FeatureVector{}, err
	}

	values := []Value{
		num(float64(date.Year())),
		num(float64(date.Month())),
		num(in.LivingSpace),
		num(in.NoRooms),
		num(in.Floor),
		cat(in.Regio1),
		cat(in.Regio2),
		cat(in.HeatingType),
		cat(in.Condition),
		cat(in.InteriorQual),
		cat(in.TypeOfFlat),
		cat(in.GeoPLZ),
		boolean(in.Balcony),
		boolean(in.Lift),
		boolean(in.HasKitchen),
		boolean(in.Garden),
		boolean(in.Cellar),
		num(in.YearConstructed),
		// The form requires every field, so the missing-value indicators the
		// model was trained with are always 0 on this path. If optional
		// fields are ever introduced this is the one place that must become
		// real missing-value detection.
		num(0),
		num(0),
		num(0),
		num(0),
	}

	return FeatureVector{Names: ColumnNames(), Values: values}, nil
}

// listingDate parses the optional listing date, defaulting to the builder's
// clock. Un-dated listings are therefore treated as freshly posted, which
// skews the time features for stale inputs.
func (b *VectorBuilder) listingDate(raw string) (time.Time, error) {
	if raw == "" {
		return b.now(), nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &domain.SchemaError{Field: "date", Reason: "is not a valid date"}
}

func checkSchema(in domain.ListingInput) error {
	numerics := []struct {
		field string
		value float64
	}{
		{"livingSpace", in.LivingSpace},
		{"noRooms", in.NoRooms},
		{"floor", in.Floor},
		{"yearConstructed", in.YearConstructed},
	}
	for _, n := range numerics {
		if math.IsNaN(n.value) || math.IsInf(n.value, 0) {
			return &domain.SchemaError{Field: n.field, Reason: "is not a finite number"}
		}
	}
	if in.LivingSpace <= 0 {
		return &domain.SchemaError{Field: "livingSpace", Reason: "must be positive"}
	}
	if in.NoRooms <= 0 {
		return &domain.SchemaError{Field: "noRooms", Reason: "must be positive"}
	}
	if in.Floor < 0 {
		return &domain.SchemaError{Field: "floor", Reason: "must not be negative"}
	}
	if in.YearConstructed <= 0 {
		return &domain.SchemaError{Field: "yearConstructed", Reason: "is required"}
	}

	strings := []struct {
		field string
		value string
	}{
		{"regio1", in.Regio1},
		{"regio2", in.Regio2},
		{"geo_plz", in.GeoPLZ},
		{"heatingType", in.HeatingType},
		{"condition", in.Condition},
		{"interiorQual", in.InteriorQual},
		{"typeOfFlat", in.TypeOfFlat},
	}
	for _, s := range strings {
		if s.value == "" {
			return &domain.SchemaError{Field: s.field, Reason: "is required"}
		}
	}
	return nil
}
