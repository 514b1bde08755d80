package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Boundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		onHand int
		want   Category
	}{
		{onHand: 0, want: Empty},
		{onHand: 1, want: Low},
		{onHand: 9, want: Low},
		{onHand: 10, want: Normal},
		{onHand: 50, want: Normal},
		{onHand: 51, want: Abundant},
		{onHand: 100, want: Abundant},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.onHand), "onHand=%d", tt.onHand)
	}
}

func TestCategory_Label(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Habis", Empty.Label())
	assert.Equal(t, "Sedikit", Low.Label())
	assert.Equal(t, "Normal", Normal.Label())
	assert.Equal(t, "Banyak", Abundant.Label())
}

func TestCountByCategory(t *testing.T) {
	t.Parallel()

	s := CountByCategory([]int{20, 15, 0, 100, 50, 30})
	assert.Equal(t, 6, s.Total)
	assert.Equal(t, 1, s.Empty)
	assert.Equal(t, 0, s.Low)
	assert.Equal(t, 4, s.Normal)
	assert.Equal(t, 1, s.Abundant)
}
