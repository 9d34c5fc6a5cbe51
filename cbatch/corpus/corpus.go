// Package corpus owns the full set of tokenized documents for one labeled
// split of a review dataset (train or test). Documents live under
// root/neg and root/pos, one UTF-8 text file per review, named <id>_<rating>.txt.
package corpus

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	internal "github.com/ZanzyTHEbar/corpusbatch/cbatch"
	"github.com/ZanzyTHEbar/corpusbatch/cbatch/common"
	"github.com/ZanzyTHEbar/corpusbatch/cbatch/stats"
	"github.com/ZanzyTHEbar/corpusbatch/cbatch/tokenize"
)

// filePattern selects review files under the class subdirectories.
const filePattern = "*_*.txt"

// classDirs are traversed in this order; load order is the concatenation of
// their filesystem enumeration orders.
var classDirs = []struct {
	name  string
	label int
}{
	{"neg", 0},
	{"pos", 1},
}

// Item is the immutable tokenized representation of one labeled document.
type Item struct {
	// Text holds the clipped sentences of word ids.
	Text tokenize.Document
	// Label is 0 for a negative review, 1 for a positive one.
	Label int
	// TxtLen is the sentence count, always len(Text).
	TxtLen int
	// SntLen is the maximum sentence length within the document.
	SntLen int
}

// ReviewCorpus is an ordered, read-only collection of tokenized reviews.
// Items are assembled lazily by Get and memoized in a bounded LRU cache;
// repeated reads of the same index are structurally identical.
type ReviewCorpus struct {
	id   uuid.UUID
	root string

	paths   []string
	texts   []tokenize.Document
	labels  []int
	txtLens []int
	sntLens []int

	cache *lru.Cache[int, Item]
}

type options struct {
	cacheCapacity int
}

// Option customizes corpus loading.
type Option func(*options)

// WithCacheCapacity bounds the per-index memoization cache. The default
// comfortably exceeds the 50k reviews of the reference corpus.
func WithCacheCapacity(n int) Option {
	return func(o *options) { o.cacheCapacity = n }
}

// Load reads and tokenizes every review under root/neg and root/pos.
// Loading is synchronous and single-threaded; a file read failure aborts
// the whole load. Documents that tokenize to zero sentences are skipped
// with a warning, so every loaded item has a defined maximum sentence
// length.
func Load(root string, tok *tokenize.Tokenizer, opts ...Option) (*ReviewCorpus, error) {
	o := options{cacheCapacity: internal.DefaultCacheCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cacheCapacity < 1 {
		return nil, fmt.Errorf("%w: cache capacity %d must be >= 1", common.ErrInvalidArgument, o.cacheCapacity)
	}

	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: corpus root %s", common.ErrMissingResource, root)
	}

	cache, err := lru.New[int, Item](o.cacheCapacity)
	if err != nil {
		return nil, fmt.Errorf("%w: cache capacity %d: %v", common.ErrInvalidArgument, o.cacheCapacity, err)
	}

	c := &ReviewCorpus{
		id:    uuid.New(),
		root:  root,
		cache: cache,
	}

	slog.Info("Corpus loading", "corpus_id", c.id, "root", root)

	var avgTxtLen stats.OnlineAvg
	skipped := 0
	for _, class := range classDirs {
		dir := filepath.Join(root, class.name)
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("%w: class directory %s", common.ErrMissingResource, dir)
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if ok, _ := filepath.Match(filePattern, entry.Name()); !ok {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			raw, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read document %s: %w", path, err)
			}

			doc, sntLen, txtLen, err := tok.Tokenize(string(raw))
			if err != nil {
				if errors.Is(err, common.ErrEmptyDocument) {
					slog.Warn("Skipping unrepresentable document", "corpus_id", c.id, "path", path)
					skipped++
					continue
				}
				return nil, fmt.Errorf("failed to tokenize document %s: %w", path, err)
			}

			c.paths = append(c.paths, path)
			c.texts = append(c.texts, doc)
			c.labels = append(c.labels, class.label)
			c.txtLens = append(c.txtLens, txtLen)
			c.sntLens = append(c.sntLens, sntLen)
			avgTxtLen.Update(float64(txtLen))
		}
	}

	slog.Info("Corpus loaded",
		"corpus_id", c.id,
		"root", root,
		"documents", len(c.texts),
		"skipped", skipped,
		"avg_txt_len", avgTxtLen.Avg(),
		"q98_txt_len", stats.Quantile(0.98, c.txtLens),
		"q98_snt_len", stats.Quantile(0.98, c.sntLens))

	return c, nil
}

// Len returns the total number of loaded documents.
func (c *ReviewCorpus) Len() int {
	return len(c.texts)
}

// Get returns the corpus item at index i. Results are memoized: repeated
// calls with the same index serve the cached item without reassembly.
func (c *ReviewCorpus) Get(i int) (Item, error) {
	if i < 0 || i >= len(c.texts) {
		return Item{}, fmt.Errorf("%w: index %d not in [0, %d)", common.ErrIndexOutOfRange, i, len(c.texts))
	}

	if item, ok := c.cache.Get(i); ok {
		return item, nil
	}

	item := Item{
		Text:   c.texts[i],
		Label:  c.labels[i],
		TxtLen: c.txtLens[i],
		SntLen: c.sntLens[i],
	}
	c.cache.Add(i, item)
	return item, nil
}

// Lengths returns each document's sentence count, indexed identically to
// the corpus. It is consumed by the batch sampler to group documents by
// size without re-tokenizing.
func (c *ReviewCorpus) Lengths() []int {
	out := make([]int, len(c.txtLens))
	copy(out, c.txtLens)
	return out
}

// SentenceLengths returns each document's maximum sentence length, indexed
// identically to the corpus.
func (c *ReviewCorpus) SentenceLengths() []int {
	out := make([]int, len(c.sntLens))
	copy(out, c.sntLens)
	return out
}

// Path returns the source file of document i, mainly for diagnostics.
func (c *ReviewCorpus) Path(i int) (string, error) {
	if i < 0 || i >= len(c.paths) {
		return "", fmt.Errorf("%w: index %d not in [0, %d)", common.ErrIndexOutOfRange, i, len(c.paths))
	}
	return c.paths[i], nil
}

// ID identifies this load for log correlation.
func (c *ReviewCorpus) ID() uuid.UUID {
	return c.id
}
