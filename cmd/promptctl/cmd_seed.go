package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"drumgen_testbench/internal/promptio"
)

var seedConfirm bool

var seedCmd = &cobra.Command{
	Use:   "seed <csv>",
	Short: "Replace every prompt with the texts of a CSV file",
	Long: `Delete all results, LLM failures and prompts, then insert one curated
prompt per non-empty row of the CSV's text column at difficulty 5.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&seedConfirm, "yes", false, "Confirm that existing data may be deleted")
}

func runSeed(cmd *cobra.Command, args []string) error {
	if !seedConfirm {
		return errors.New("seed deletes all prompts, results and failures; pass --yes to continue")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}
	defer f.Close()
	texts, err := promptio.ReadSeedCSV(f)
	if err != nil {
		return err
	}

	a, closeFn, err := newApp()
	if err != nil {
		return err
	}
	defer closeFn()
	ctx, cancel := a.commandContext(cmd)
	defer cancel()

	summary, err := a.prompts.SeedPrompts(ctx, texts)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Cleared: %d results, %d prompts, %d LLM failures\n", summary.ClearedResults, summary.ClearedPrompts, summary.ClearedFailures)
	fmt.Fprintf(out, "Done! Seeded %d prompts.\n", summary.Seeded)
	return nil
}
