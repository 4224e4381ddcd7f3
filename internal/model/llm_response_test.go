package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindFromResponse(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{name: "title case key", raw: `{"controls":{"Kind":" Snare "}}`, want: "Snare", wantOK: true},
		{name: "lower case key", raw: `{"controls":{"kind":"kick"}}`, want: "kick", wantOK: true},
		{name: "upper case key", raw: `{"controls":{"KIND":"HAT"}}`, want: "HAT", wantOK: true},
		{name: "title case wins", raw: `{"controls":{"kind":"b","Kind":"a"}}`, want: "a", wantOK: true},
		{name: "null falls through", raw: `{"controls":{"Kind":null,"kind":"tom"}}`, want: "tom", wantOK: true},
		{name: "numeric value", raw: `{"controls":{"Kind":808}}`, want: "808", wantOK: true},
		{name: "object value skipped", raw: `{"controls":{"Kind":{"x":1}}}`, wantOK: false},
		{name: "no controls", raw: `{"other":1}`, wantOK: false},
		{name: "controls not an object", raw: `{"controls":[1,2]}`, wantOK: false},
		{name: "malformed json", raw: `{"controls":`, wantOK: false},
		{name: "empty", raw: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KindFromResponse(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
