package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"drumgen_testbench/internal/promptio"
)

var (
	notesOut    string
	notesPhrase string
)

var exportNotesCmd = &cobra.Command{
	Use:   "export-notes",
	Short: "Export every tester note to CSV",
	Long: `Write all non-empty notes from test results and LLM failures to a CSV
file and report how many of them mention the given phrase.`,
	Args: cobra.NoArgs,
	RunE: runExportNotes,
}

func init() {
	exportNotesCmd.Flags().StringVarP(&notesOut, "out", "o", "exported_notes.csv", "Output CSV path")
	exportNotesCmd.Flags().StringVar(&notesPhrase, "phrase", "pitch drift", "Phrase to count (case-insensitive)")
}

func runExportNotes(cmd *cobra.Command, args []string) error {
	a, closeFn, err := newApp()
	if err != nil {
		return err
	}
	defer closeFn()
	ctx, cancel := a.commandContext(cmd)
	defer cancel()

	notes, err := a.analytics.CollectNotes(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(notesOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", notesOut, err)
	}
	if err := promptio.WriteNotesCSV(f, notes); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Exported %d notes to %s\n", len(notes), notesOut)
	fmt.Fprintf(out, "Notes containing %q: %d\n", notesPhrase, promptio.CountPhrase(notes, notesPhrase))
	return nil
}
