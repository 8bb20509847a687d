// Validate command checks the state document and optionally repairs it.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cairn/internal/validate"
)

var validateFix bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the state document",
	Long: `Validate runs schema, referential, and dependency-graph checks
against the state document. Errors make the exit status non-zero;
warnings do not.

With --fix, mechanical defects (missing lifecycle timestamps) are
repaired and the document is saved.

Example:
  cairn validate
  cairn validate --fix
  cairn validate --json`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVarP(&validateFix, "fix", "f", false, "attempt to auto-repair issues")
}

func runValidate(cmd *cobra.Command, args []string) error {
	files, err := openFiles()
	if err != nil {
		return err
	}

	doc, err := files.LoadState()
	if err != nil {
		return err
	}

	res := validate.State(doc)

	var repairs []string
	if validateFix && (len(res.Errors) > 0 || len(res.Warnings) > 0) {
		repairs = validate.Repair(doc, time.Now())
		if len(repairs) > 0 {
			if err := files.SaveState(doc); err != nil {
				return err
			}
		}
	}

	if flagJSON {
		out := struct {
			Valid    bool     `json:"valid"`
			Errors   []string `json:"errors"`
			Warnings []string `json:"warnings"`
			Repairs  []string `json:"repairs,omitempty"`
		}{res.Valid(), nonNil(res.Errors), nonNil(res.Warnings), repairs}
		if err := printJSON(out); err != nil {
			return err
		}
	} else {
		printValidation(files.StatePath(), res, repairs)
	}

	if !res.Valid() {
		return fmt.Errorf("validation failed: %w", errReported)
	}
	return nil
}

// printValidation writes the human-readable report: grouped errors,
// then warnings, then a final status line, then any repairs applied.
func printValidation(path string, res validate.Result, repairs []string) {
	fmt.Printf("Validating: %s\n\n", path)

	if len(res.Errors) > 0 {
		fmt.Println("ERRORS:")
		for _, e := range res.Errors {
			fmt.Printf("  ✗ %s\n", e)
		}
		fmt.Println()
	}

	if len(res.Warnings) > 0 {
		fmt.Println("WARNINGS:")
		for _, w := range res.Warnings {
			fmt.Printf("  ⚠ %s\n", w)
		}
		fmt.Println()
	}

	switch {
	case res.Valid() && len(res.Warnings) == 0:
		fmt.Println("✓ State document is valid with no issues")
	case res.Valid():
		fmt.Printf("✓ State document is valid with %d warning(s)\n", len(res.Warnings))
	default:
		fmt.Printf("✗ State document has %d error(s)\n", len(res.Errors))
	}

	if len(repairs) > 0 {
		fmt.Println("\nRepairs applied:")
		for _, r := range repairs {
			fmt.Printf("  ✓ %s\n", r)
		}
	}
}
