package tokenize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZanzyTHEbar/corpusbatch/cbatch/common"
	"github.com/ZanzyTHEbar/corpusbatch/cbatch/vocab"
)

func TestTokenizer(t *testing.T) {
	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{"PositiveNegativeScenario", testTokenizePositiveNegativeScenario},
		{"Determinism", testTokenizeDeterminism},
		{"ClipInvariants", testTokenizeClipInvariants},
		{"TagStripping", testTokenizeTagStripping},
		{"EmptyDocument", testTokenizeEmptyDocument},
		{"EmptySentencesAreLegal", testTokenizeEmptySentencesAreLegal},
		{"InvalidClips", testTokenizeInvalidClips},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.test)
	}
}

func newTestTokenizer(t *testing.T, v vocab.Vocabulary, sntClip, txtClip int) *Tokenizer {
	t.Helper()
	tok, err := New(v, sntClip, txtClip)
	require.NoError(t, err)
	return tok
}

func testTokenizePositiveNegativeScenario(t *testing.T) {
	tok := newTestTokenizer(t, vocab.Vocabulary{"good": 1, "bad": 2}, 100, 40)

	doc, maxSnt, txtLen, err := tok.Tokenize("Good! Bad.")
	require.NoError(t, err)

	// Punctuation tokens are dropped for being out-of-vocabulary.
	assert.Equal(t, Document{{1}, {2}}, doc)
	assert.Equal(t, 2, txtLen)
	assert.Equal(t, 1, maxSnt)
}

func testTokenizeDeterminism(t *testing.T) {
	v := vocab.Vocabulary{"the": 1, "movie": 2, "was": 3, "great": 4, "awful": 5}
	tok := newTestTokenizer(t, v, 100, 40)

	text := "The movie was great. The <b>acting</b> was awful! Truly awful."
	first, maxSnt1, txtLen1, err := tok.Tokenize(text)
	require.NoError(t, err)
	second, maxSnt2, txtLen2, err := tok.Tokenize(text)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, maxSnt1, maxSnt2)
	assert.Equal(t, txtLen1, txtLen2)
}

func testTokenizeClipInvariants(t *testing.T) {
	v := vocab.Vocabulary{"word": 1}
	tok := newTestTokenizer(t, v, 3, 2)

	// Five sentences of six in-vocabulary words each.
	sentence := strings.Repeat("word ", 6)
	text := strings.Repeat(sentence+". ", 5)

	doc, maxSnt, txtLen, err := tok.Tokenize(text)
	require.NoError(t, err)

	assert.LessOrEqual(t, txtLen, 2, "document length must respect txtClip")
	assert.Equal(t, len(doc), txtLen)
	for _, snt := range doc {
		assert.LessOrEqual(t, len(snt), 3, "sentence length must respect sntClip")
	}
	assert.Equal(t, 3, maxSnt)
}

func testTokenizeTagStripping(t *testing.T) {
	tok := newTestTokenizer(t, vocab.Vocabulary{"good": 1, "br": 2}, 100, 40)

	doc, _, _, err := tok.Tokenize("good<br /><br />good.")
	require.NoError(t, err)

	// Tags are replaced by a space, so "br" never reaches the vocabulary lookup.
	require.Len(t, doc, 1)
	assert.Equal(t, []int{1, 1}, doc[0])
}

func testTokenizeEmptyDocument(t *testing.T) {
	tok := newTestTokenizer(t, vocab.Vocabulary{"good": 1}, 100, 40)

	// Inputs that are nothing but markup or whitespace must come out with
	// zero sentences, not a single empty one.
	for _, text := range []string{"<br /><br />", "   ", "<i></i>", "", "\n\t\n"} {
		doc, maxSnt, txtLen, err := tok.Tokenize(text)
		require.Error(t, err, "input %q must be unrepresentable", text)
		assert.ErrorIs(t, err, common.ErrEmptyDocument, "input %q", text)
		assert.Nil(t, doc, "input %q", text)
		assert.Zero(t, maxSnt, "input %q", text)
		assert.Zero(t, txtLen, "input %q", text)
	}
}

func testTokenizeEmptySentencesAreLegal(t *testing.T) {
	tok := newTestTokenizer(t, vocab.Vocabulary{"fine": 1}, 100, 40)

	// Second sentence is entirely out-of-vocabulary: kept, with length 0.
	doc, maxSnt, txtLen, err := tok.Tokenize("Fine. Unknown words only.")
	require.NoError(t, err)

	require.Equal(t, 2, txtLen)
	assert.Equal(t, []int{1}, doc[0])
	assert.Empty(t, doc[1])
	assert.Equal(t, 1, maxSnt)
}

func testTokenizeInvalidClips(t *testing.T) {
	v := vocab.Vocabulary{"good": 1}

	_, err := New(v, 0, 40)
	assert.ErrorIs(t, err, common.ErrInvalidArgument)

	_, err = New(v, 100, 0)
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
}
