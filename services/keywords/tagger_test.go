package keywords

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestTagger(t *testing.T) *Tagger {
	tagger, err := NewTagger()
	require.NoError(t, err)
	return tagger
}

func TestTagSingleWordKeyword(t *testing.T) {
	tagger := newTestTagger(t)

	brand := map[string][]string{
		"Sizing & Fit": {"small"},
	}
	categories, matched := tagger.Tag("runs small", brand, nil)
	require.Equal(t, []string{"Sizing & Fit"}, categories)
	require.Equal(t, []string{"small"}, matched)
}

func TestTagLemmatizedKeyword(t *testing.T) {
	tagger := newTestTagger(t)

	global := map[string][]string{
		"Packaging": {"box"},
		"Delivery":  {"deliver"},
	}
	categories, matched := tagger.Tag("The boxes arrived crushed, delivered two weeks late.", nil, global)
	require.Equal(t, []string{"Delivery", "Packaging"}, categories)
	require.Equal(t, []string{"box", "deliver"}, matched)
}

func TestTagPhraseRequiresLemmasAndSubstring(t *testing.T) {
	tagger := newTestTagger(t)

	brand := map[string][]string{
		"Sizing & Fit": {"runs small"},
	}

	// all lemmas present but the literal phrase is absent: no match
	categories, matched := tagger.Tag("it is small and it runs well", brand, nil)
	require.Empty(t, categories)
	require.Empty(t, matched)

	// literal phrase present and all lemmas present: match
	categories, matched = tagger.Tag("This shoe runs small in my opinion", brand, nil)
	require.Equal(t, []string{"Sizing & Fit"}, categories)
	require.Equal(t, []string{"runs small"}, matched)
}

func TestTagMergesBrandAndGlobalScopes(t *testing.T) {
	tagger := newTestTagger(t)

	brand := map[string][]string{"Fit": {"tight"}}
	global := map[string][]string{"Quality": {"tight", "stitching"}}

	categories, matched := tagger.Tag("the stitching is tight", brand, global)
	require.Equal(t, []string{"Fit", "Quality"}, categories)
	require.Equal(t, []string{"stitching", "tight"}, matched)
}

func TestMatchingKeywords(t *testing.T) {
	tagger := newTestTagger(t)

	matched := tagger.MatchingKeywords(
		"refund took forever, sizes run large",
		[]string{"refund", "run large", "quality"},
	)
	require.Equal(t, []string{"refund", "run large"}, matched)
}

func TestCodecRoundTrip(t *testing.T) {
	require.Equal(t, "[]", EncodeList(nil))
	require.Equal(t, `["a","b"]`, EncodeList([]string{"a", "b"}))
	require.Equal(t, []string{"a", "b"}, DecodeList(`["a","b"]`))
	require.Nil(t, DecodeList(""))
	require.Nil(t, DecodeList("not json"))
}
