// Package sampler produces an epoch ordering of corpus indices in which
// documents of similar length end up in the same mini-batch, without
// collapsing into a strict length sort. Batches drawn from length-local
// windows keep padding waste low while a randomized anchor preserves
// intra-epoch diversity.
package sampler

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	roaring "github.com/RoaringBitmap/roaring"

	"github.com/ZanzyTHEbar/corpusbatch/cbatch/common"
)

// LengthLocalBatchSampler draws batches from a window of the length-sorted
// index order. The window spans diversity*batchSize positions on each side
// of a uniformly random anchor, so diversity=1 gives near-strict grouping
// by sorted position and wider values trade homogeneity for randomness.
//
// The sorted order is computed once at construction; every Order call is an
// independent randomized pass holding no cross-epoch state.
type LengthLocalBatchSampler struct {
	sortedIndices []int
	batchSize     int
	diversity     int
	rng           *rand.Rand
}

// New builds a sampler over per-index document lengths. rng is the random
// source for every draw; pass a fixed-seed source for reproducible epochs.
func New(lengths []int, batchSize, diversity int, rng *rand.Rand) (*LengthLocalBatchSampler, error) {
	if batchSize < 1 {
		return nil, fmt.Errorf("%w: batchSize %d must be >= 1", common.ErrInvalidArgument, batchSize)
	}
	if diversity < 1 {
		return nil, fmt.Errorf("%w: diversity %d must be >= 1", common.ErrInvalidArgument, diversity)
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	sorted := make([]int, len(lengths))
	for i := range sorted {
		sorted[i] = i
	}
	sort.SliceStable(sorted, func(a, b int) bool {
		return lengths[sorted[a]] < lengths[sorted[b]]
	})

	return &LengthLocalBatchSampler{
		sortedIndices: sorted,
		batchSize:     batchSize,
		diversity:     diversity,
		rng:           rng,
	}, nil
}

// Order runs one randomized pass and returns every corpus index exactly
// once, batch by batch. The pool of not-yet-batched positions is a roaring
// bitmap over sorted ranks, so anchor selection, windowed draws, and
// removals all work in rank space in logarithmic time while keeping the
// reference draw distribution: uniform anchor over the remaining pool,
// uniform without-replacement draw inside the window.
func (s *LengthLocalBatchSampler) Order() []int {
	n := len(s.sortedIndices)
	out := make([]int, 0, n)

	pool := roaring.New()
	pool.AddRange(0, uint64(n))

	window := s.diversity * s.batchSize
	for !pool.IsEmpty() {
		size := int(pool.GetCardinality())
		anchor := s.rng.Intn(size)

		lb := anchor - window
		if lb < 0 {
			lb = 0
		}
		rb := anchor + window
		if rb > size {
			rb = size
		}

		take := s.batchSize
		if w := rb - lb; w < take {
			take = w
		}

		// Select all drawn ranks before removing any: removal shifts the
		// ranks of everything to its right.
		positions := make([]uint32, take)
		for i, r := range s.rng.Perm(rb - lb)[:take] {
			pos, err := pool.Select(uint32(lb + r))
			if err != nil {
				// Rank is bounded by the pool cardinality above.
				panic(fmt.Sprintf("sampler pool select rank %d of %d: %v", lb+r, size, err))
			}
			positions[i] = pos
		}

		for _, pos := range positions {
			out = append(out, s.sortedIndices[pos])
			pool.Remove(pos)
		}
	}

	return out
}

// NumBatches reports ceil(corpusSize / batchSize), the expected number of
// batches per epoch. The final batch may be smaller.
func (s *LengthLocalBatchSampler) NumBatches() int {
	return (len(s.sortedIndices) + s.batchSize - 1) / s.batchSize
}

// BatchSize returns the configured batch size.
func (s *LengthLocalBatchSampler) BatchSize() int {
	return s.batchSize
}
