package sentiment

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategorize(t *testing.T) {
	cases := []struct {
		polarity float64
		want     string
	}{
		{0.31, CategoryPositive},
		{1, CategoryPositive},
		{0.3, CategoryNeutral},
		{0.0, CategoryNeutral},
		{-0.09, CategoryNeutral},
		{-0.1, CategoryNegative},
		{-1, CategoryNegative},
	}
	for _, c := range cases {
		require.Equal(t, c.want, Categorize(c.polarity), "polarity %v", c.polarity)
	}
}

func TestVADERScorer(t *testing.T) {
	scorer := NewVADER()

	positive, err := scorer.Score("I absolutely love these boots, they are fantastic!")
	require.NoError(t, err)
	negative, err := scorer.Score("Terrible quality, awful service, I hate this.")
	require.NoError(t, err)

	require.Greater(t, positive, negative)
	require.Greater(t, positive, 0.0)
	require.Less(t, negative, 0.0)

	empty, err := scorer.Score("")
	require.NoError(t, err)
	require.Equal(t, 0.0, empty)
}
