package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"markxs/internal/diagfmt"
	"markxs/internal/line"
	"markxs/internal/source"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [flags] <file.xs>",
	Short: "Show the classification of every line",
	Long:  `Classify prints the line kind assigned to each physical line of a .xs document, without assembling blocks`,
	Args:  cobra.ExactArgs(1),
	RunE:  runClassify,
}

func init() {
	classifyCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runClassify(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	fs := source.NewFileSet()
	fileID, err := fs.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load file: %w", err)
	}

	lines := line.Scan(fs.Get(fileID))
	kinds := line.ClassifyAll(lines)

	switch format {
	case "json":
		return diagfmt.LinesJSON(os.Stdout, lines, kinds)
	case "pretty":
		colored, err := useColor(cmd, os.Stdout)
		if err != nil {
			return err
		}
		diagfmt.LinesPretty(os.Stdout, lines, kinds, colored)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
