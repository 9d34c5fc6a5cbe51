package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnlineAvg(t *testing.T) {
	var avg OnlineAvg

	assert.Equal(t, 0, avg.N())
	assert.Equal(t, 0.0, avg.Avg())

	for _, x := range []float64{2, 4, 6} {
		avg.Update(x)
	}

	assert.Equal(t, 3, avg.N())
	assert.InDelta(t, 4.0, avg.Avg(), 1e-9)
	assert.Equal(t, "4", avg.String())
}

func TestQuantile(t *testing.T) {
	xs := make([]int, 100)
	for i := range xs {
		xs[i] = i + 1
	}

	assert.InDelta(t, 98.0, Quantile(0.98, xs), 1.0)
	assert.InDelta(t, 50.0, Quantile(0.5, xs), 1.0)

	// Input must not be reordered.
	unordered := []int{5, 1, 3}
	Quantile(0.5, unordered)
	assert.Equal(t, []int{5, 1, 3}, unordered)

	assert.Equal(t, 0.0, Quantile(0.5, nil))
}
