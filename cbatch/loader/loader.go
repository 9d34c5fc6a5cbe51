// Package loader wires a corpus, a length-local sampler, and the batch
// collator into an epoch of ready-to-train batches.
package loader

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/sourcegraph/conc/stream"

	internal "github.com/ZanzyTHEbar/corpusbatch/cbatch"
	"github.com/ZanzyTHEbar/corpusbatch/cbatch/collate"
	"github.com/ZanzyTHEbar/corpusbatch/cbatch/common"
	"github.com/ZanzyTHEbar/corpusbatch/cbatch/config"
	"github.com/ZanzyTHEbar/corpusbatch/cbatch/corpus"
	"github.com/ZanzyTHEbar/corpusbatch/cbatch/sampler"
	"github.com/ZanzyTHEbar/corpusbatch/cbatch/tokenize"
	"github.com/ZanzyTHEbar/corpusbatch/cbatch/vocab"
)

// Loader yields one epoch of collated batches per Batches call. Workers
// only read corpus items and the shared vocabulary, so collation is
// parallelized without locking.
type Loader struct {
	corpus     *corpus.ReviewCorpus
	sampler    *sampler.LengthLocalBatchSampler
	numWorkers int
}

// New builds a Loader over an already loaded corpus and its sampler.
func New(c *corpus.ReviewCorpus, s *sampler.LengthLocalBatchSampler, numWorkers int) (*Loader, error) {
	if numWorkers < 1 {
		return nil, fmt.Errorf("%w: numWorkers %d must be >= 1", common.ErrInvalidArgument, numWorkers)
	}
	return &Loader{corpus: c, sampler: s, numWorkers: numWorkers}, nil
}

// NumBatches reports the expected number of batches per epoch.
func (l *Loader) NumBatches() int {
	return l.sampler.NumBatches()
}

// Batches runs one epoch: a fresh sampler pass chunked into batches,
// collated by up to numWorkers goroutines, delivered in epoch order. The
// channel closes after the last batch. A caller abandoning the epoch early
// must cancel ctx so the producer and its workers unblock and exit; once
// cancelled the channel still closes, possibly after a few already-collated
// batches. Errors during item retrieval or collation signal caller-side
// misuse or a corrupted corpus and therefore panic rather than silently
// truncating the epoch.
func (l *Loader) Batches(ctx context.Context) <-chan collate.Batch {
	order := l.sampler.Order()
	batchSize := l.sampler.BatchSize()

	out := make(chan collate.Batch, l.numWorkers)
	go func() {
		defer close(out)

		workers := stream.New().WithMaxGoroutines(l.numWorkers)
		for start := 0; start < len(order) && ctx.Err() == nil; start += batchSize {
			end := start + batchSize
			if end > len(order) {
				end = len(order)
			}
			indices := order[start:end]

			workers.Go(func() stream.Callback {
				if ctx.Err() != nil {
					return func() {}
				}
				items := make([]corpus.Item, len(indices))
				for i, idx := range indices {
					item, err := l.corpus.Get(idx)
					if err != nil {
						panic(fmt.Sprintf("loader epoch: %v", err))
					}
					items[i] = item
				}
				batch, err := collate.Collate(items)
				if err != nil {
					panic(fmt.Sprintf("loader epoch: %v", err))
				}
				return func() {
					select {
					case out <- batch:
					case <-ctx.Done():
					}
				}
			})
		}
		workers.Wait()
	}()

	return out
}

// FromConfig loads the shared vocabulary and both labeled splits under
// cfg.Corpus.Root (root/train and root/test), then builds a loader per
// split. rng seeds the samplers; pass a fixed-seed source for reproducible
// epochs. Each split's sampler gets its own source derived from rng, so the
// two loaders may run epochs concurrently.
func FromConfig(cfg *config.Config, rng *rand.Rand) (train, test *Loader, v vocab.Vocabulary, err error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	v, err = vocab.Load(filepath.Join(cfg.Corpus.Root, cfg.Corpus.VocabFile))
	if err != nil {
		return nil, nil, nil, err
	}

	tok, err := tokenize.New(v, cfg.Corpus.SntClip, cfg.Corpus.TxtClip)
	if err != nil {
		return nil, nil, nil, err
	}

	train, err = forSplit(filepath.Join(cfg.Corpus.Root, "train"), tok, cfg, rand.New(rand.NewSource(rng.Int63())))
	if err != nil {
		return nil, nil, nil, err
	}
	test, err = forSplit(filepath.Join(cfg.Corpus.Root, "test"), tok, cfg, rand.New(rand.NewSource(rng.Int63())))
	if err != nil {
		return nil, nil, nil, err
	}

	logger := internal.GetLogger()
	logger.Info().
		Int("train_documents", train.corpus.Len()).
		Int("test_documents", test.corpus.Len()).
		Int("vocab_size", v.Size()).
		Msg("Loaders ready")

	return train, test, v, nil
}

func forSplit(root string, tok *tokenize.Tokenizer, cfg *config.Config, rng *rand.Rand) (*Loader, error) {
	c, err := corpus.Load(root, tok, corpus.WithCacheCapacity(cfg.Corpus.CacheCapacity))
	if err != nil {
		return nil, err
	}
	s, err := sampler.New(c.Lengths(), cfg.Loader.BatchSize, cfg.Loader.Diversity, rng)
	if err != nil {
		return nil, err
	}
	return New(c, s, cfg.Loader.NumWorkers)
}
