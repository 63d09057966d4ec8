package catalog

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/mitchellh/mapstructure"

	"github.com/matzehuels/stepviz/pkg/errors"
)

// ParamType is the kind of control a parameter renders as.
type ParamType string

// Parameter types.
const (
	ParamNumber ParamType = "number"
	ParamSelect ParamType = "select"
)

// Dependency makes a parameter visible only while another parameter holds
// one of Values.
type Dependency struct {
	ParamID string   `json:"param_id" yaml:"param_id"`
	Values  []string `json:"values" yaml:"values"`
}

// Param is one entry of a descriptor's parameter schema.
type Param struct {
	ID      string      `json:"id" yaml:"id"`
	Type    ParamType   `json:"type" yaml:"type"`
	Label   string      `json:"label" yaml:"label"`
	Default any         `json:"default" yaml:"default"`
	Min     *int        `json:"min,omitempty" yaml:"min,omitempty"`
	Max     *int        `json:"max,omitempty" yaml:"max,omitempty"`
	Options []string    `json:"options,omitempty" yaml:"options,omitempty"`
	Depends *Dependency `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
}

// Number declares a bounded numeric parameter.
func Number(id, label string, def, lo, hi int) Param {
	return Param{ID: id, Type: ParamNumber, Label: label, Default: def, Min: &lo, Max: &hi}
}

// Select declares a parameter restricted to options.
func Select(id, label, def string, options ...string) Param {
	return Param{ID: id, Type: ParamSelect, Label: label, Default: def, Options: options}
}

// When returns a copy of p that is only visible while param holds one of
// values.
func (p Param) When(param string, values ...string) Param {
	p.Depends = &Dependency{ParamID: param, Values: values}
	return p
}

// Visible evaluates the dependsOn predicate against the current record.
// Missing keys fall back to the controlling parameter's default, which the
// caller passes through defaults.
func (p Param) Visible(current Params, defaults Params) bool {
	if p.Depends == nil {
		return true
	}
	v, ok := current[p.Depends.ParamID]
	if !ok {
		v = defaults[p.Depends.ParamID]
	}
	return slices.Contains(p.Depends.Values, fmt.Sprint(v))
}

// Check validates the value p holds in record.
func (p Param) Check(record Params) error {
	switch p.Type {
	case ParamNumber:
		n, err := record.intValue(p.ID)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidParam, "%s must be a whole number", p.Label)
		}
		if p.Min != nil && n < *p.Min {
			return errors.New(errors.ErrCodeInvalidParam, "%s must be at least %d", p.Label, *p.Min)
		}
		if p.Max != nil && n > *p.Max {
			return errors.New(errors.ErrCodeInvalidParam, "%s must be at most %d", p.Label, *p.Max)
		}
	case ParamSelect:
		s := record.String(p.ID, "")
		if !slices.Contains(p.Options, s) {
			return errors.New(errors.ErrCodeInvalidParam, "%s must be one of %v", p.Label, p.Options)
		}
	}
	return nil
}

// Params is the parameter record passed to a producer. Values come from
// JSON (float64), flags (string) or Go code (int); accessors normalize them.
type Params map[string]any

// Clone returns a shallow copy.
func (p Params) Clone() Params {
	if p == nil {
		return Params{}
	}
	return maps.Clone(p)
}

// Int returns key as an int, or def when the key is missing or malformed.
func (p Params) Int(key string, def int) int {
	if _, ok := p[key]; !ok {
		return def
	}
	n, err := p.intValue(key)
	if err != nil {
		return def
	}
	return n
}

// String returns key formatted as a string, or def when missing.
func (p Params) String(key, def string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func (p Params) intValue(key string) (int, error) {
	switch v := p[key].(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case int32:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%v is not whole", v)
		}
		return int(v), nil
	case string:
		return strconv.Atoi(v)
	}
	return 0, fmt.Errorf("unsupported type %T", p[key])
}

// Decode fills out (a pointer to a struct tagged with `param:"..."`) from
// the record using weak typing, so "8" and 8.0 both decode into an int
// field. Fields whose keys are missing keep their current value, which lets
// callers pre-populate defaults.
func (p Params) Decode(out any) error {
	if len(p) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "param",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "build parameter decoder")
	}
	if err := dec.Decode(map[string]any(p)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParam, err, "decode parameters")
	}
	return nil
}
