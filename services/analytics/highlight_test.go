package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHighlight(t *testing.T) {
	require.Equal(t,
		"The courier was <mark>late</mark> again.",
		Highlight("The courier was late again.", []string{"late"}))

	// matching ignores case but preserves the original text
	require.Equal(t,
		"<mark>Late</mark> delivery.",
		Highlight("Late delivery.", []string{"late"}))

	require.Equal(t,
		"It <mark>runs small</mark> for sure.",
		Highlight("It runs small for sure.", []string{"small", "runs small"}))

	require.Equal(t,
		"<mark>late</mark> and <mark>later</mark>.",
		Highlight("late and later.", []string{"later", "late"}))

	require.Equal(t, "no change here", Highlight("no change here", []string{"absent"}))
	require.Equal(t, "", Highlight("", []string{"late"}))
	require.Equal(t, "text", Highlight("text", nil))
}

func TestHighlightNonASCII(t *testing.T) {
	// lowering U+212A (kelvin sign) shrinks it from three bytes to one,
	// which must not shift or break matches later in the text
	require.Equal(t,
		"temp KKK scale is <mark>sign</mark> of quality",
		Highlight("temp KKK scale is sign of quality", []string{"sign"}))

	// matching is case-insensitive across non-ASCII letters too
	require.Equal(t,
		"Die <mark>GRÖẞE</mark> passt.",
		Highlight("Die GRÖẞE passt.", []string{"größe"}))

	require.Equal(t,
		"İyi <mark>kargo</mark>, tavsiye ederim.",
		Highlight("İyi kargo, tavsiye ederim.", []string{"kargo"}))
}

func TestHighlightLongestWinsInsidePhrase(t *testing.T) {
	// the phrase is marked whole; its constituent word is not re-marked
	// inside the existing mark but still matches elsewhere
	got := Highlight("runs small, just small.", []string{"runs small", "small"})
	require.Equal(t, "<mark>runs small</mark>, just <mark>small</mark>.", got)
}
