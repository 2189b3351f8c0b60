package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"markxs/internal/driver"
	"markxs/internal/project"
	"markxs/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [fixtures-dir]",
	Short: "Verify fixtures against expected snapshots",
	Long: `Check parses every fixture, renders its snapshot, and compares the result
against the expected JSON. Without a directory argument the fixtures location
comes from the nearest markxs.toml manifest`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("update", false, "rewrite expected snapshots instead of comparing")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().Bool("no-cache", false, "bypass the snapshot disk cache")
	checkCmd.Flags().String("ui", "auto", "progress display (auto|on|off)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	update, err := cmd.Flags().GetBool("update")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	opts := driver.CheckOptions{
		Update:         update,
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
	}
	if len(args) == 1 {
		opts.FixturesDir = args[0]
	} else {
		cfg, err := project.Load(".")
		if err != nil {
			return err
		}
		opts.FixturesDir = cfg.FixturesDir()
		opts.ExpectedDir = cfg.ExpectedDir()
		if cfg.Parser.MaxDiagnostics > 0 && !cmd.Root().PersistentFlags().Changed("max-diagnostics") {
			opts.MaxDiagnostics = cfg.Parser.MaxDiagnostics
		}
	}

	if !noCache {
		cache, err := driver.OpenDiskCache("markxs")
		if err == nil {
			opts.Cache = cache
		}
		// A broken cache dir degrades to uncached rendering.
	}

	var results []driver.SnapshotResult
	if shouldUseTUI(mode) && !quiet {
		results, err = runCheckWithUI(cmd, opts)
	} else {
		results, err = driver.CheckSnapshots(cmd.Context(), opts)
	}
	if err != nil {
		return err
	}

	return reportCheckResults(cmd, results, quiet)
}

func runCheckWithUI(cmd *cobra.Command, opts driver.CheckOptions) ([]driver.SnapshotResult, error) {
	fixtures, err := driver.ListFixtures(opts.FixturesDir)
	if err != nil {
		return nil, err
	}
	if len(fixtures) == 0 {
		return nil, nil
	}

	events := make(chan driver.SnapshotEvent, len(fixtures))
	opts.Events = events

	type outcome struct {
		results []driver.SnapshotResult
		err     error
	}
	outcomeCh := make(chan outcome, 1)
	go func() {
		results, err := driver.CheckSnapshots(cmd.Context(), opts)
		outcomeCh <- outcome{results: results, err: err}
	}()

	model := ui.NewProgressModel("checking snapshots", fixtures, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	result := <-outcomeCh
	if uiErr != nil {
		return result.results, uiErr
	}
	return result.results, result.err
}

func reportCheckResults(cmd *cobra.Command, results []driver.SnapshotResult, quiet bool) error {
	out := cmd.OutOrStdout()
	failed := 0
	for _, r := range results {
		ok := r.Status == driver.SnapshotMatch || r.Status == driver.SnapshotUpdated
		if !ok {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %s\n", r.Fixture, r.Status)
			if r.Detail != "" {
				fmt.Fprintf(os.Stderr, "  %s\n", r.Detail)
			}
			continue
		}
		if !quiet {
			fmt.Fprintf(out, "%s: %s\n", r.Fixture, r.Status)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d snapshots failed", failed, len(results))
	}
	if !quiet {
		fmt.Fprintf(out, "All %d snapshots match.\n", len(results))
	}
	return nil
}
