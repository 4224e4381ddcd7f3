// Package promptio reads prompt lists for bulk loading and writes the notes
// export used by the operator CLI.
package promptio

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"drumgen_testbench/internal/model"

	"gopkg.in/yaml.v3"
)

// maxPromptTextInCSV caps the prompt text column of the notes export.
const maxPromptTextInCSV = 80

// NotesHeader is the column order of the notes export.
var NotesHeader = []string{"id", "source", "notes", "recorded_at", "prompt_id", "prompt_text"}

var ErrNoTextColumn = errors.New("csv has no text column")

type promptList struct {
	Prompts []string `json:"prompts" yaml:"prompts"`
}

// ParsePromptFile decodes a prompt list. Files ending in .yaml or .yml may be
// either a bare YAML sequence or a mapping with a prompts key; anything else
// is read as JSON of the form {"prompts": [...]}.
func ParsePromptFile(name string, data []byte) ([]string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		var seq []string
		if err := yaml.Unmarshal(data, &seq); err == nil {
			return seq, nil
		}
		var list promptList
		if err := yaml.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("promptio.ParsePromptFile: %s: %w", name, err)
		}
		return list.Prompts, nil
	default:
		var list promptList
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("promptio.ParsePromptFile: %s: %w", name, err)
		}
		return list.Prompts, nil
	}
}

// ReadSeedCSV returns the trimmed, non-empty values of the text column.
func ReadSeedCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("promptio.ReadSeedCSV: read header: %w", err)
	}
	col := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), "text") {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, ErrNoTextColumn
	}

	var texts []string
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("promptio.ReadSeedCSV: %w", err)
		}
		if col >= len(rec) {
			continue
		}
		if text := strings.TrimSpace(rec[col]); text != "" {
			texts = append(texts, text)
		}
	}
	return texts, nil
}

// WriteNotesCSV writes notes under NotesHeader.
func WriteNotesCSV(w io.Writer, notes []model.NoteRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(NotesHeader); err != nil {
		return fmt.Errorf("promptio.WriteNotesCSV: %w", err)
	}
	for _, n := range notes {
		promptID := ""
		if n.PromptID != nil {
			promptID = n.PromptID.String()
		}
		rec := []string{n.ID.String(), n.Source, n.Notes, n.RecordedAt, promptID, truncateRunes(n.PromptText, maxPromptTextInCSV)}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("promptio.WriteNotesCSV: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// CountPhrase counts notes containing phrase, ignoring case.
func CountPhrase(notes []model.NoteRecord, phrase string) int {
	phrase = strings.ToLower(phrase)
	if phrase == "" {
		return 0
	}
	count := 0
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Notes), phrase) {
			count++
		}
	}
	return count
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
