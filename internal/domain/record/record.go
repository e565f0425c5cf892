// Package record defines the nine-field input record collected by the form
// and handed to the classifier.
package record

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/schema"
)

// Column names in the order the model expects them.
const (
	Points                = "points"
	Laps                  = "laps"
	Grid                  = "grid"
	DriverAvgPoints       = "driver_avg_points"
	DriverMedianGrid      = "driver_median_grid"
	ConstructorAvgPoints  = "constructor_avg_points"
	ConstructorMedianGrid = "constructor_median_grid"
	ConstructorRefEnc     = "constructorRef_enc"
	CircuitRefEnc         = "circuitRef_enc"
)

// Record is one interaction's worth of racing statistics. Values are not
// range-checked: negative laps or grid positions pass through unchanged.
type Record struct {
	Points                float64 `schema:"points" json:"points" yaml:"points"`
	Laps                  float64 `schema:"laps" json:"laps" yaml:"laps"`
	Grid                  float64 `schema:"grid" json:"grid" yaml:"grid"`
	DriverAvgPoints       float64 `schema:"driver_avg_points" json:"driver_avg_points" yaml:"driver_avg_points"`
	DriverMedianGrid      float64 `schema:"driver_median_grid" json:"driver_median_grid" yaml:"driver_median_grid"`
	ConstructorAvgPoints  float64 `schema:"constructor_avg_points" json:"constructor_avg_points" yaml:"constructor_avg_points"`
	ConstructorMedianGrid float64 `schema:"constructor_median_grid" json:"constructor_median_grid" yaml:"constructor_median_grid"`
	ConstructorRefEnc     float64 `schema:"constructorRef_enc" json:"constructorRef_enc" yaml:"constructorRef_enc"`
	CircuitRefEnc         float64 `schema:"circuitRef_enc" json:"circuitRef_enc" yaml:"circuitRef_enc"`
}

// Column is a single named value of a record, used for the input summary.
type Column struct {
	Name  string
	Label string
	Value float64
}

// decoder is safe for concurrent use; it caches struct metadata.
var decoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.ZeroEmpty(true)
	return d
}()

// Decode builds a Record from submitted form values. Missing or empty fields
// default to zero. Unparseable and non-finite values are rejected.
func Decode(form url.Values) (Record, error) {
	var r Record
	if err := decoder.Decode(&r, form); err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r, nil
}

// InvalidLabels lists, in column order, the labels of the fields a decode
// error refers to.
func InvalidLabels(err error) []string {
	var me schema.MultiError
	if !errors.As(err, &me) {
		return nil
	}
	var out []string
	for _, f := range Fields() {
		if _, ok := me[f.Column]; ok {
			out = append(out, f.Label)
		}
	}
	return out
}

// Validate checks that every field holds a finite number.
func (r Record) Validate() error {
	for _, c := range r.Columns() {
		if math.IsNaN(c.Value) || math.IsInf(c.Value, 0) {
			return fmt.Errorf("%w: %s", ErrNonFinite, c.Label)
		}
	}
	return nil
}

// Value returns the value stored under a model column name.
func (r Record) Value(column string) (float64, bool) {
	switch column {
	case Points:
		return r.Points, true
	case Laps:
		return r.Laps, true
	case Grid:
		return r.Grid, true
	case DriverAvgPoints:
		return r.DriverAvgPoints, true
	case DriverMedianGrid:
		return r.DriverMedianGrid, true
	case ConstructorAvgPoints:
		return r.ConstructorAvgPoints, true
	case ConstructorMedianGrid:
		return r.ConstructorMedianGrid, true
	case ConstructorRefEnc:
		return r.ConstructorRefEnc, true
	case CircuitRefEnc:
		return r.CircuitRefEnc, true
	}
	return 0, false
}

// Values returns the record as a feature vector in ColumnNames order.
func (r Record) Values() []float64 {
	names := ColumnNames()
	out := make([]float64, len(names))
	for i, name := range names {
		out[i], _ = r.Value(name)
	}
	return out
}

// VectorFor returns the record's values ordered by the given column names.
func (r Record) VectorFor(columns []string) ([]float64, error) {
	out := make([]float64, len(columns))
	for i, name := range columns {
		v, ok := r.Value(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
		out[i] = v
	}
	return out, nil
}

// Columns returns every column with its display label and value.
func (r Record) Columns() []Column {
	fields := Fields()
	out := make([]Column, len(fields))
	for i, f := range fields {
		v, _ := r.Value(f.Column)
		out[i] = Column{Name: f.Column, Label: f.Label, Value: v}
	}
	return out
}

// FormValues renders the record back into form values.
func (r Record) FormValues() url.Values {
	form := url.Values{}
	for _, c := range r.Columns() {
		form.Set(c.Name, FormatValue(c.Value))
	}
	return form
}

// FormatValue renders a float the way the form inputs display it.
func FormatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
