// Package collate assembles variable-shaped corpus items into fixed-shape,
// zero-padded dense tensors ready for batched numeric computation.
package collate

import (
	"fmt"

	"github.com/gomlx/gomlx/pkg/core/tensors"

	"github.com/ZanzyTHEbar/corpusbatch/cbatch/common"
	"github.com/ZanzyTHEbar/corpusbatch/cbatch/corpus"
)

// Batch holds the dense tensors for one mini-batch.
//
//   - Features: (int64)[N, maxTxt, maxSnt] word ids, zero-padded. Zero doubles
//     as both padding and the reserved vocabulary id 0.
//   - Targets: (float32)[N, 1] labels in {0, 1}.
//
// maxTxt and maxSnt are the batch's own maxima, so every item fits without
// further clipping.
type Batch struct {
	Features *tensors.Tensor
	Targets  *tensors.Tensor
}

// Size returns the number of documents in the batch.
func (b Batch) Size() int {
	return b.Targets.Shape().Dimensions[0]
}

// Collate packs the given items into a Batch. It is a pure function of its
// input: no shared mutable state, safe to run concurrently across batches.
func Collate(items []corpus.Item) (Batch, error) {
	if len(items) == 0 {
		return Batch{}, fmt.Errorf("%w: cannot collate an empty batch", common.ErrInvalidArgument)
	}

	maxTxt, maxSnt := 0, 0
	for _, item := range items {
		if item.TxtLen > maxTxt {
			maxTxt = item.TxtLen
		}
		if item.SntLen > maxSnt {
			maxSnt = item.SntLen
		}
	}

	n := len(items)
	features := tensors.FromScalarAndDimensions(int64(0), n, maxTxt, maxSnt)
	targets := tensors.FromScalarAndDimensions(float32(0), n, 1)

	tensors.MustMutableFlatData(features, func(data []int64) {
		for i, item := range items {
			doc := data[i*maxTxt*maxSnt:]
			for j, snt := range item.Text {
				row := doc[j*maxSnt:]
				for k, id := range snt {
					row[k] = int64(id)
				}
			}
		}
	})

	tensors.MustMutableFlatData(targets, func(data []float32) {
		for i, item := range items {
			data[i] = float32(item.Label)
		}
	})

	return Batch{Features: features, Targets: targets}, nil
}
