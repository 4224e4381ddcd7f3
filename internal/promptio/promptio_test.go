package promptio

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drumgen_testbench/internal/model"
)

func TestParsePromptFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		data    string
		want    []string
		wantErr bool
	}{
		{name: "JSON object", file: "loops.json", data: `{"prompts": ["kick one", "snare two"]}`, want: []string{"kick one", "snare two"}},
		{name: "JSON without prompts", file: "loops.json", data: `{}`, want: nil},
		{name: "YAML sequence", file: "loops.yaml", data: "- kick one\n- snare two\n", want: []string{"kick one", "snare two"}},
		{name: "YAML mapping", file: "loops.YML", data: "prompts:\n  - ride bell\n", want: []string{"ride bell"}},
		{name: "Broken JSON", file: "loops.json", data: `{"prompts": [`, wantErr: true},
		{name: "YAML scalar", file: "loops.yaml", data: "just text", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParsePromptFile(tc.file, []byte(tc.data))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReadSeedCSV(t *testing.T) {
	t.Run("Text column anywhere", func(t *testing.T) {
		in := "\ufeffid,Text,notes\n1, warm kick ,x\n2,,y\n3,crisp snare\n"
		got, err := ReadSeedCSV(strings.NewReader(in))
		require.NoError(t, err)
		assert.Equal(t, []string{"warm kick", "crisp snare"}, got)
	})

	t.Run("No text column", func(t *testing.T) {
		_, err := ReadSeedCSV(strings.NewReader("id,prompt\n1,a\n"))
		assert.ErrorIs(t, err, ErrNoTextColumn)
	})

	t.Run("Empty input", func(t *testing.T) {
		_, err := ReadSeedCSV(strings.NewReader(""))
		assert.Error(t, err)
	})
}

func TestWriteNotesCSVAndCountPhrase(t *testing.T) {
	promptID := uuid.New()
	notes := []model.NoteRecord{
		{ID: uuid.New(), Source: "test_results", PromptID: &promptID, PromptText: "short", Notes: "Heavy Pitch Drift on tail", RecordedAt: "2026-01-01T00:00:00Z"},
		{ID: uuid.New(), Source: "llm_failures", PromptText: strings.Repeat("é", 100), Notes: "no pitch, drift only", RecordedAt: "2026-01-02T00:00:00Z"},
		{ID: uuid.New(), Source: "llm_failures", Notes: "pitch drift, again", RecordedAt: "2026-01-03T00:00:00Z"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteNotesCSV(&buf, notes))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, NotesHeader, records[0])
	assert.Equal(t, promptID.String(), records[1][4])
	assert.Equal(t, "", records[2][4])
	assert.Equal(t, strings.Repeat("é", maxPromptTextInCSV), records[2][5])

	assert.Equal(t, 2, CountPhrase(notes, "pitch drift"))
	assert.Equal(t, 0, CountPhrase(notes, ""))
}
