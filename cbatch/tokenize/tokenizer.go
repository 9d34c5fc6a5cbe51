// Package tokenize turns raw review text into a clipped, nested sequence of
// vocabulary ids: sentences of words. Sentence boundaries come from an
// unsupervised Punkt model, word boundaries from the word-punct token
// classes (runs of word characters, runs of punctuation).
package tokenize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"github.com/ZanzyTHEbar/corpusbatch/cbatch/common"
	"github.com/ZanzyTHEbar/corpusbatch/cbatch/vocab"
)

// Document is one tokenized text: Document[i][j] is the vocabulary id of
// word j in sentence i. Empty sentences (all words out-of-vocabulary) are
// legal and have length 0.
type Document [][]int

var (
	// htmlRe strips HTML-like markup with a non-greedy <...> substitution.
	// This is a heuristic, not an HTML parser; nested or malformed tags are
	// not handled specially.
	htmlRe = regexp.MustCompile(`<.*?>`)

	// wordRe matches the two word-punct token classes.
	wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+|[^\p{L}\p{N}_\s]+`)
)

// Tokenizer converts raw document text into a Document. It is a pure
// function of the text, the shared vocabulary, and the clip limits, so
// results are safe to memoize and to read concurrently.
type Tokenizer struct {
	vocab     vocab.Vocabulary
	sntClip   int
	txtClip   int
	sentences *sentences.DefaultSentenceTokenizer
}

// New builds a Tokenizer over the given vocabulary. sntClip bounds the ids
// kept per sentence, txtClip the sentences kept per document (prefix kept
// in both cases).
func New(v vocab.Vocabulary, sntClip, txtClip int) (*Tokenizer, error) {
	if sntClip < 1 || txtClip < 1 {
		return nil, fmt.Errorf("%w: sntClip %d and txtClip %d must be >= 1", common.ErrInvalidArgument, sntClip, txtClip)
	}

	st, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build sentence tokenizer: %w", err)
	}

	return &Tokenizer{
		vocab:     v,
		sntClip:   sntClip,
		txtClip:   txtClip,
		sentences: st,
	}, nil
}

// Tokenize lowercases the text, strips markup, splits it into sentences of
// word ids, clips both levels, and returns the document together with its
// maximum sentence length and sentence count. Out-of-vocabulary words are
// silently dropped. A document that clips to zero sentences has no defined
// maximum sentence length and yields ErrEmptyDocument.
func (t *Tokenizer) Tokenize(text string) (doc Document, maxSnt int, txtLen int, err error) {
	text = strings.ToLower(text)
	text = htmlRe.ReplaceAllString(text, " ")

	for _, snt := range t.sentences.Tokenize(text) {
		// The splitter emits a single whitespace-only segment for
		// whitespace-only input. Drop segments with no content so an
		// all-markup document clips to zero sentences instead of one
		// phantom empty sentence.
		if strings.TrimSpace(snt.Text) == "" {
			continue
		}

		ids := make([]int, 0, t.sntClip)
		for _, w := range wordRe.FindAllString(snt.Text, -1) {
			id, ok := t.vocab[w]
			if !ok {
				continue
			}
			ids = append(ids, id)
			if len(ids) == t.sntClip {
				break
			}
		}
		doc = append(doc, ids)
		if len(doc) == t.txtClip {
			break
		}
	}

	if len(doc) == 0 {
		return nil, 0, 0, common.ErrEmptyDocument
	}

	for _, snt := range doc {
		if len(snt) > maxSnt {
			maxSnt = len(snt)
		}
	}

	return doc, maxSnt, len(doc), nil
}

// SntClip returns the per-sentence id limit.
func (t *Tokenizer) SntClip() int { return t.sntClip }

// TxtClip returns the per-document sentence limit.
func (t *Tokenizer) TxtClip() int { return t.txtClip }
