package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"markxs/internal/diagfmt"
	"markxs/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.xs|directory>",
	Short: "Parse a document or directory and output the tree",
	Long:  `Parse reads a .xs document (or every .xs file in a directory) and prints the resulting document tree`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	colorOut, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}
	colorErr, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	prettyOpts := diagfmt.PrettyOpts{Color: colorErr, Max: maxDiagnostics}

	st, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	if !st.IsDir() {
		result, err := driver.Parse(filePath, maxDiagnostics)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}

		if result.Bag.Len() > 0 {
			result.Bag.Sort()
			diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, prettyOpts)
		}

		if format == "json" {
			if err := diagfmt.JSON(os.Stdout, result.Doc, result.File); err != nil {
				return err
			}
		} else {
			diagfmt.Outline(os.Stdout, result.Doc, colorOut)
		}

		if result.Bag.HasErrors() {
			return fmt.Errorf("%s: parsed with errors", filePath)
		}
		return nil
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	fs, results, err := driver.ParseDir(cmd.Context(), filePath, maxDiagnostics, jobs)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	hadErrors := false
	for idx, r := range results {
		if r.Bag.Len() > 0 {
			r.Bag.Sort()
			diagfmt.Pretty(os.Stderr, r.Bag, fs, prettyOpts)
		}
		if r.Bag.HasErrors() {
			hadErrors = true
		}
		if r.Doc == nil {
			continue
		}

		displayPath := r.Path
		if file := fs.Get(r.FileID); file != nil {
			displayPath = file.FormatPath("auto", fs.BaseDir())
		}
		if !quiet {
			fmt.Fprintf(os.Stdout, "== %s ==\n", displayPath)
		}

		if format == "json" {
			if err := diagfmt.JSON(os.Stdout, r.Doc, fs.Get(r.FileID)); err != nil {
				return err
			}
		} else {
			diagfmt.Outline(os.Stdout, r.Doc, colorOut)
		}
		if !quiet && idx < len(results)-1 {
			fmt.Fprintln(os.Stdout)
		}
	}

	if hadErrors {
		return fmt.Errorf("%s: parsed with errors", filePath)
	}
	return nil
}
