package catalog

import (
	"unicode/utf8"

	"github.com/matzehuels/stepviz/pkg/errors"
)

// Limits are presentation caps, chosen for legibility of the rendered
// structure rather than for correctness. They are configurable.
type Limits struct {
	MaxArray int `json:"max_array" toml:"max_array" validate:"gte=1,lte=64"`
	MaxTree  int `json:"max_tree" toml:"max_tree" validate:"gte=1,lte=127"`
	MaxText  int `json:"max_text" toml:"max_text" validate:"gte=1,lte=256"`
	MaxNodes int `json:"max_nodes" toml:"max_nodes" validate:"gte=1,lte=32"`
	MinValue int `json:"min_value" toml:"min_value"`
	MaxValue int `json:"max_value" toml:"max_value" validate:"gtfield=MinValue"`
}

// DefaultLimits returns the stock caps: 20 array values, 31 tree slots
// (five full levels), 40 characters, 12 graph nodes, values in [-999, 999].
func DefaultLimits() Limits {
	return Limits{
		MaxArray: 20,
		MaxTree:  31,
		MaxText:  40,
		MaxNodes: 12,
		MinValue: -999,
		MaxValue: 999,
	}
}

func (l Limits) orDefault() Limits {
	if l == (Limits{}) {
		return DefaultLimits()
	}
	return l
}

// Chain runs validators in order and returns the first failure.
func Chain(vs ...Validator) Validator {
	return func(in Input, lim Limits) error {
		for _, v := range vs {
			if err := v(in, lim); err != nil {
				return err
			}
		}
		return nil
	}
}

// ArrayInput accepts between min values and the configured array cap, each
// within the configured value range.
func ArrayInput(min int) Validator {
	return Chain(requireValues(min, func(l Limits) int { return l.MaxArray }), valueRange(false))
}

// TreeInput accepts a level-order array of up to the tree cap. Sentinels
// (-1) are allowed; an empty tree is valid and handled by the producer.
func TreeInput() Validator {
	return Chain(requireValues(0, func(l Limits) int { return l.MaxTree }), valueRange(true))
}

// BSTInput accepts values inserted one by one into a BST.
func BSTInput(min int) Validator {
	return Chain(requireValues(min, func(l Limits) int { return l.MaxTree - 1 }), valueRange(false))
}

// TextInput accepts non-empty text up to the text cap. Events index runes,
// so values and edges are rejected rather than ignored.
func TextInput() Validator {
	return func(in Input, lim Limits) error {
		if len(in.Values) > 0 || len(in.Edges) > 0 {
			return errors.New(errors.ErrCodeInvalidInput, "this algorithm takes text only, not values or edges")
		}
		if in.Text == "" {
			return errors.New(errors.ErrCodeInvalidInput, "text cannot be empty")
		}
		if n := utf8.RuneCountInString(in.Text); n > lim.MaxText {
			return errors.New(errors.ErrCodeInvalidInput, "text must have at most %d characters (got %d)", lim.MaxText, n)
		}
		return nil
	}
}

// GraphInput accepts node labels in Values and an edge list over node
// indices.
func GraphInput() Validator {
	return Chain(
		requireValues(1, func(l Limits) int { return l.MaxNodes }),
		valueRange(false),
		func(in Input, lim Limits) error {
			n := len(in.Values)
			for _, e := range in.Edges {
				if e[0] < 0 || e[0] >= n || e[1] < 0 || e[1] >= n {
					return errors.New(errors.ErrCodeInvalidInput, "edge %d-%d references a node outside 0..%d", e[0], e[1], n-1)
				}
				if e[0] == e[1] {
					return errors.New(errors.ErrCodeInvalidInput, "edge %d-%d is a self loop", e[0], e[1])
				}
			}
			return nil
		},
	)
}

// Sorted rejects arrays that are not in non-decreasing order.
func Sorted() Validator {
	return func(in Input, _ Limits) error {
		for i := 1; i < len(in.Values); i++ {
			if in.Values[i-1] > in.Values[i] {
				return errors.New(errors.ErrCodeInvalidInput, "values must be sorted in ascending order")
			}
		}
		return nil
	}
}

// Distinct rejects arrays with repeated values.
func Distinct() Validator {
	return func(in Input, _ Limits) error {
		seen := make(map[int]bool, len(in.Values))
		for _, v := range in.Values {
			if seen[v] {
				return errors.New(errors.ErrCodeInvalidInput, "values must be distinct (%d repeats)", v)
			}
			seen[v] = true
		}
		return nil
	}
}

// Reserved rejects arrays containing v, which the producer uses as a marker
// in its output. meaning completes "-1 is reserved: it ...".
func Reserved(v int, meaning string) Validator {
	return func(in Input, _ Limits) error {
		for i, x := range in.Values {
			if x == v {
				return errors.New(errors.ErrCodeInvalidInput, "value %d at position %d is reserved: it %s", v, i, meaning)
			}
		}
		return nil
	}
}

// NoInput accepts anything; used by algorithms driven only by parameters.
func NoInput() Validator {
	return func(Input, Limits) error { return nil }
}

func requireValues(min int, maxOf func(Limits) int) Validator {
	return func(in Input, lim Limits) error {
		n := len(in.Values)
		if n < min {
			if min == 1 {
				return errors.New(errors.ErrCodeInvalidInput, "enter at least one value")
			}
			return errors.New(errors.ErrCodeInvalidInput, "enter at least %d values", min)
		}
		if hi := maxOf(lim); n > hi {
			return errors.New(errors.ErrCodeInvalidInput, "array must have at most %d values (got %d)", hi, n)
		}
		return nil
	}
}

func valueRange(allowSentinel bool) Validator {
	return func(in Input, lim Limits) error {
		for _, v := range in.Values {
			if allowSentinel && v == errors.Sentinel {
				continue
			}
			if v < lim.MinValue || v > lim.MaxValue {
				return errors.New(errors.ErrCodeInvalidInput, "values must be between %d and %d (got %d)", lim.MinValue, lim.MaxValue, v)
			}
		}
		return nil
	}
}
