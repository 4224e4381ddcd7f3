package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerationScore(t *testing.T) {
	tests := []struct {
		name       string
		difficulty int
		audio      float64
		want       float64
		wantRound  int
	}{
		{name: "full marks at difficulty 1", difficulty: 1, audio: 10, want: 100, wantRound: 100},
		{name: "full marks at difficulty 10", difficulty: 10, audio: 10, want: 95.05, wantRound: 95},
		{name: "lowest audio at difficulty 1", difficulty: 1, audio: 1, want: 55, wantRound: 55},
		{name: "mid audio at difficulty 5", difficulty: 5, audio: 6, want: 77.8, wantRound: 78},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerationScore(tt.difficulty, tt.audio)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.Equal(t, tt.wantRound, Round(got))
		})
	}
}

func TestGenerationScore_MonotonicInAudio(t *testing.T) {
	for d := 1; d <= 10; d++ {
		prev := GenerationScore(d, 1)
		for a := 2; a <= 10; a++ {
			cur := GenerationScore(d, float64(a))
			assert.GreaterOrEqual(t, cur, prev, "difficulty=%d audio=%d", d, a)
			prev = cur
		}
		assert.GreaterOrEqual(t, GenerationScore(d, 10), GenerationScore(d, 1))
	}
}

func TestGenerationScoreWithLLM(t *testing.T) {
	assert.InDelta(t, 5.05, GenerationScoreWithLLM(10, 1, 1), 1e-9)
	assert.InDelta(t, 50.0, GenerationScoreWithLLM(1, 5, 5), 1e-9)
	assert.Equal(t, 0.0, GenerationScoreWithLLM(10, 0, 0), "never negative")
}

func TestRoundingHelpers(t *testing.T) {
	assert.Equal(t, 7.33, RoundTo(22.0/3.0, 2))
	assert.Equal(t, 66.67, RoundTo(200.0/3.0, 2))
	assert.Equal(t, 67, CeilInt(66.01))
	assert.Equal(t, 66, CeilInt(66))
	assert.Equal(t, 7.4, CeilTenth(22.0/3.0))
	assert.Equal(t, 7.5, CeilTenth(7.5))
}

func TestClampBucket(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{in: 0, want: 1},
		{in: -3, want: 1},
		{in: 1, want: 1},
		{in: 6.4, want: 6},
		{in: 6.6, want: 7},
		{in: 10, want: 10},
		{in: 14, want: 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampBucket(tt.in), "in=%v", tt.in)
	}
}
