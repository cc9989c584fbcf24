// Package dataset defines the indexed-sample interface shared by the
// concrete datasets under it, plus index views over any Dataset.
package dataset

import (
	"context"
	"fmt"
	"math/rand/v2"
)

// Dataset serves samples by index in [0, Len()).
type Dataset[S any] interface {
	Len() int
	Get(ctx context.Context, idx int) (S, error)
}

// Subset exposes selected indices of a parent dataset.
type Subset[S any] struct {
	parent  Dataset[S]
	indices []int
}

func NewSubset[S any](parent Dataset[S], indices []int) (*Subset[S], error) {
	n := parent.Len()
	for _, idx := range indices {
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("dataset: subset index %d out of range [0, %d)", idx, n)
		}
	}
	return &Subset[S]{parent: parent, indices: append([]int(nil), indices...)}, nil
}

func (s *Subset[S]) Len() int {
	return len(s.indices)
}

func (s *Subset[S]) Get(ctx context.Context, idx int) (S, error) {
	if idx < 0 || idx >= len(s.indices) {
		var zero S
		return zero, fmt.Errorf("dataset: index %d out of range [0, %d)", idx, len(s.indices))
	}
	return s.parent.Get(ctx, s.indices[idx])
}

// Indices returns the parent indices in subset order.
func (s *Subset[S]) Indices() []int {
	return append([]int(nil), s.indices...)
}

// RandomSplit shuffles the parent's indices with rng and cuts them into
// a first part of round(fraction*Len()) samples and the remainder.
func RandomSplit[S any](parent Dataset[S], fraction float64, rng *rand.Rand) (*Subset[S], *Subset[S], error) {
	if fraction < 0 || fraction > 1 {
		return nil, nil, fmt.Errorf("dataset: split fraction %v outside [0, 1]", fraction)
	}
	perm := rng.Perm(parent.Len())
	cut := int(fraction*float64(len(perm)) + 0.5)
	return &Subset[S]{parent: parent, indices: perm[:cut]},
		&Subset[S]{parent: parent, indices: perm[cut:]},
		nil
}
