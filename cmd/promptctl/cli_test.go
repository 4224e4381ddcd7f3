package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drumgen_testbench/internal/config"
	"drumgen_testbench/internal/model"
)

// useTempDatabase points the CLI at a fresh sqlite file.
func useTempDatabase(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	configDir, driver, databaseURL = dir, config.DriverSQLite, filepath.Join(dir, "drumgen.db")
	t.Cleanup(func() {
		configDir, driver, databaseURL = "configs", "", ""
		seedConfirm = false
	})
	return dir
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCmd(t *testing.T, run func(*cobra.Command, []string) error, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	err := run(cmd, args)
	return out.String(), err
}

func TestSeedRequiresConfirmation(t *testing.T) {
	dir := useTempDatabase(t)
	csvPath := writeFile(t, filepath.Join(dir, "seed.csv"), "text\nkick\n")

	_, err := runCmd(t, runSeed, csvPath)
	assert.ErrorContains(t, err, "--yes")
}

func TestSeedImportAndExportNotes(t *testing.T) {
	dir := useTempDatabase(t)

	seedConfirm = true
	csvPath := writeFile(t, filepath.Join(dir, "seed.csv"), "text\nwarm kick\ncrisp snare\n\nopen hat\n")
	out, err := runCmd(t, runSeed, csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 3 prompts")

	jsonPath := writeFile(t, filepath.Join(dir, "more.json"), `{"prompts": ["WARM KICK", "ride bell", "  "]}`)
	out, err = runCmd(t, runImport, jsonPath)
	require.NoError(t, err)
	assert.Contains(t, out, "1 prompts added, 2 skipped")

	yamlPath := writeFile(t, filepath.Join(dir, "more.yaml"), "- clap stack\n")
	out, err = runCmd(t, runImport, yamlPath)
	require.NoError(t, err)
	assert.Contains(t, out, "1 prompts added, 0 skipped")

	a, closeFn, err := newApp()
	require.NoError(t, err)
	var prompt model.Prompt
	require.NoError(t, a.db.Where("text = ?", "ride bell").First(&prompt).Error)
	assert.Equal(t, model.DefaultImportCategory, *prompt.Category)
	for _, note := range []string{"slight PITCH DRIFT at the end", "great transient", ""} {
		n := note
		require.NoError(t, a.db.Create(&model.TestResult{
			ResultID:          uuid.New(),
			PromptID:          prompt.PromptID,
			AudioQualityScore: 7,
			LLMAccuracyScore:  7,
			Notes:             &n,
			TestedAt:          time.Now(),
		}).Error)
	}
	closeFn()

	notesOut = filepath.Join(dir, "notes.csv")
	t.Cleanup(func() { notesOut = "exported_notes.csv" })
	out, err = runCmd(t, runExportNotes)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 notes")
	assert.Contains(t, out, `Notes containing "pitch drift": 1`)

	f, err := os.Open(notesOut)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestImportRejectsBadDifficulty(t *testing.T) {
	useTempDatabase(t)
	importDifficulty = 0
	t.Cleanup(func() { importDifficulty = model.DefaultImportDifficulty })

	_, err := runCmd(t, runImport, "unused.json")
	assert.ErrorContains(t, err, "--difficulty")
}
