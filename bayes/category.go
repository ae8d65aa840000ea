package bayes

import (
	"fmt"
	"math"

	"github.com/hickeroar/wordbayes/bayes/store"
)

// DefaultWeight is the weight of a category referenced by name only.
const DefaultWeight = 1.0

// CategoryRef is a training label: either a bare Name or a Weighted category.
type CategoryRef interface {
	category() store.Category
}

// Name references a category with the default weight.
type Name string

func (n Name) category() store.Category {
	return store.Category{Name: string(n), Weight: DefaultWeight}
}

// Weighted references a category with an explicit weight.
type Weighted struct {
	Name   string
	Weight float64
}

func (w Weighted) category() store.Category {
	return store.Category{Name: w.Name, Weight: w.Weight}
}

// Names wraps plain category names into refs.
func Names(names ...string) []CategoryRef {
	refs := make([]CategoryRef, 0, len(names))
	for _, name := range names {
		refs = append(refs, Name(name))
	}
	return refs
}

func normalize(refs []CategoryRef) ([]store.Category, error) {
	cats := make([]store.Category, 0, len(refs))
	for _, ref := range refs {
		if isNilRef(ref) {
			return nil, fmt.Errorf("%w: nil category", ErrInvalidCategory)
		}
		cat := ref.category()
		if cat.Name == "" {
			return nil, fmt.Errorf("%w: empty name", ErrInvalidCategory)
		}
		if math.IsNaN(cat.Weight) || math.IsInf(cat.Weight, 0) || cat.Weight <= 0 {
			return nil, fmt.Errorf("%w for %q: %v", ErrInvalidWeight, cat.Name, cat.Weight)
		}
		cats = append(cats, cat)
	}
	return cats, nil
}

// isNilRef also catches typed nil pointers, whose promoted value methods would panic.
func isNilRef(ref CategoryRef) bool {
	switch r := ref.(type) {
	case nil:
		return true
	case *Weighted:
		return r == nil
	case *Name:
		return r == nil
	}
	return false
}
