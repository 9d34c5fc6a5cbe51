// Package stats provides small running statistics used when summarizing a
// corpus load.
package stats

import (
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// OnlineAvg keeps an incremental mean without storing the samples.
type OnlineAvg struct {
	avg float64
	n   int
}

// Update folds a new sample into the running mean.
func (a *OnlineAvg) Update(x float64) {
	a.n++
	a.avg = (a.avg*float64(a.n-1) + x) / float64(a.n)
}

// Avg returns the current mean. Zero before any update.
func (a *OnlineAvg) Avg() float64 { return a.avg }

// N returns the number of samples folded in so far.
func (a *OnlineAvg) N() int { return a.n }

func (a *OnlineAvg) String() string {
	return strconv.FormatFloat(a.avg, 'f', -1, 64)
}

// Quantile returns the empirical p-quantile of xs. The input is not
// modified; an empty input yields 0.
func Quantile(p float64, xs []int) float64 {
	if len(xs) == 0 {
		return 0
	}
	fs := make([]float64, len(xs))
	for i, x := range xs {
		fs[i] = float64(x)
	}
	sort.Float64s(fs)
	return stat.Quantile(p, stat.Empirical, fs, nil)
}
