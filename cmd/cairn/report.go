// Report command renders progress metrics from the state document.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cairn/internal/report"
)

var (
	reportFormat string
	reportOutput string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a progress report",
	Long: `Report reads the state document and renders progress metrics:
per-status counts, completion percentage, timeline, blockers, and a
remaining-work estimate.

Example:
  cairn report
  cairn report --format text
  cairn report --format markdown --output report.md`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "markdown", "output format: markdown, text, or json")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "write report to file instead of stdout")
}

func runReport(cmd *cobra.Command, args []string) error {
	files, err := openFiles()
	if err != nil {
		return err
	}

	doc, err := files.LoadState()
	if err != nil {
		return err
	}

	r := report.Build(doc, time.Now())

	if flagJSON || reportFormat == "json" {
		return printJSON(r)
	}

	var rendered string
	switch reportFormat {
	case "markdown":
		rendered = r.Markdown()
	case "text":
		rendered = r.Text()
	default:
		return fmt.Errorf("unknown format %q (want markdown, text, or json)", reportFormat)
	}

	if reportOutput != "" {
		if err := os.WriteFile(reportOutput, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Printf("Report written to %s\n", reportOutput)
		return nil
	}

	fmt.Print(rendered)
	return nil
}
