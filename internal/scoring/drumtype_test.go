package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDrumType(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "spaced title case", in: "Kick Drum", want: "kickdrum"},
		{name: "hyphenated", in: "kick-drum", want: "kickdrum"},
		{name: "upper case", in: "KICKDRUM", want: "kickdrum"},
		{name: "underscores and padding", in: "  kick__drum ", want: "kickdrum"},
		{name: "quotes", in: `"Snare"`, want: "snare"},
		{name: "backticks and apostrophes", in: "`hi'hat`", want: "hihat"},
		{name: "punctuation", in: "Tom (floor) #2", want: "tomfloor2"},
		{name: "empty", in: "", want: ""},
		{name: "only separators", in: " -_- ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDrumType(tt.in))
		})
	}
}

func TestNormalizeDrumType_Idempotent(t *testing.T) {
	inputs := []string{"Kick Drum", "kick-drum", "KICKDRUM", "Hi-Hat (open)", "Ride_Cymbal", "Ünïcode Snäre", ""}
	for _, in := range inputs {
		once := NormalizeDrumType(in)
		assert.Equal(t, once, NormalizeDrumType(once), "input=%q", in)
	}
	assert.Equal(t, NormalizeDrumType("Kick Drum"), NormalizeDrumType("kick-drum"))
	assert.Equal(t, NormalizeDrumType("kick-drum"), NormalizeDrumType("KICKDRUM"))
}

func TestDrumTypeKey(t *testing.T) {
	label := "Kick Drum"
	assert.Equal(t, "kickdrum", DrumTypeKey(&label))
	assert.Equal(t, "", DrumTypeKey(nil))
}
