package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/stepviz/pkg/errors"
)

// Registry indexes descriptors by ID. It is built once at startup and is
// read-only afterwards, so concurrent lookups need no locking.
type Registry struct {
	byID  map[string]*Descriptor
	order []*Descriptor
}

// New builds a registry. Descriptors are static program data, so a duplicate
// or incomplete entry is a programming error and panics.
func New(descs ...*Descriptor) *Registry {
	r := &Registry{byID: make(map[string]*Descriptor, len(descs))}
	for _, d := range descs {
		if d.ID == "" || d.Run == nil {
			panic(fmt.Sprintf("catalog: descriptor %q has no ID or producer", d.Name))
		}
		if _, dup := r.byID[d.ID]; dup {
			panic(fmt.Sprintf("catalog: duplicate descriptor %q", d.ID))
		}
		r.byID[d.ID] = d
		r.order = append(r.order, d)
	}
	return r
}

// Get returns the descriptor with the given ID. Lookup is case-insensitive
// so "isbst" finds "isBST".
func (r *Registry) Get(id string) (*Descriptor, error) {
	if d, ok := r.byID[id]; ok {
		return d, nil
	}
	for _, d := range r.order {
		if strings.EqualFold(d.ID, id) {
			return d, nil
		}
	}
	return nil, errors.New(errors.ErrCodeAlgorithmNotFound, "unknown algorithm %q", id)
}

// List returns descriptors in category order, then by ID.
func (r *Registry) List() []*Descriptor {
	out := slices.Clone(r.order)
	slices.SortStableFunc(out, func(a, b *Descriptor) int {
		if c := categoryRank(a.Category) - categoryRank(b.Category); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// ByCategory returns the descriptors in c, sorted by ID.
func (r *Registry) ByCategory(c Category) []*Descriptor {
	var out []*Descriptor
	for _, d := range r.List() {
		if d.Category == c {
			out = append(out, d)
		}
	}
	return out
}

// IDs returns every registered ID in List order.
func (r *Registry) IDs() []string {
	list := r.List()
	ids := make([]string, len(list))
	for i, d := range list {
		ids[i] = d.ID
	}
	return ids
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int { return len(r.order) }

func categoryRank(c Category) int {
	if i := slices.Index(Categories, c); i >= 0 {
		return i
	}
	return len(Categories)
}

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(s))
	if slices.Contains(Categories, c) {
		return c, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown category %q", s)
}
