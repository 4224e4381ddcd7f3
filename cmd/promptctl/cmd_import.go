package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"drumgen_testbench/internal/model"
	"drumgen_testbench/internal/promptio"
)

var (
	importDifficulty int
	importCategory   string
	importDrumType   string
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import curated prompts from a JSON or YAML file",
	Long: `Import prompts from a JSON file of the form {"prompts": [...]} or a YAML
list. Blank entries and texts already present (ignoring case) are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().IntVar(&importDifficulty, "difficulty", model.DefaultImportDifficulty, "Difficulty for imported prompts (1-10)")
	importCmd.Flags().StringVar(&importCategory, "category", model.DefaultImportCategory, "Category for imported prompts")
	importCmd.Flags().StringVar(&importDrumType, "drum-type", "", "Drum type for imported prompts")
}

func runImport(cmd *cobra.Command, args []string) error {
	if importDifficulty < model.MinDifficulty || importDifficulty > model.MaxDifficulty {
		return fmt.Errorf("--difficulty must be between %d and %d", model.MinDifficulty, model.MaxDifficulty)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	texts, err := promptio.ParsePromptFile(args[0], data)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(texts) == 0 {
		fmt.Fprintln(out, "No prompts found in file.")
		return nil
	}

	a, closeFn, err := newApp()
	if err != nil {
		return err
	}
	defer closeFn()
	ctx, cancel := a.commandContext(cmd)
	defer cancel()

	req := &model.ImportPromptsRequest{
		Prompts:    texts,
		Difficulty: importDifficulty,
		Category:   &importCategory,
	}
	if importDrumType != "" {
		req.DrumType = &importDrumType
	}
	summary, err := a.prompts.ImportPrompts(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Done. %d prompts added, %d skipped (duplicates/empty).\n", summary.Added, summary.Skipped)
	return nil
}
