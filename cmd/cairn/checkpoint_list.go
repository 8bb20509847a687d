// Checkpoint list command shows the manifest entries.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cairn/pkg/types"
)

var checkpointListCmd = &cobra.Command{
	Use:   "list",
	Short: "List checkpoints",
	Long: `List shows every checkpoint recorded in the manifest, most recent
first. JSON output keeps the manifest's insertion order.

Example:
  cairn checkpoint list
  cairn checkpoint list --json`,
	RunE: runCheckpointList,
}

func runCheckpointList(cmd *cobra.Command, args []string) error {
	mgr, err := openManager()
	if err != nil {
		return err
	}

	summaries, err := mgr.List()
	if err != nil {
		return err
	}

	if flagJSON {
		if summaries == nil {
			summaries = []types.CheckpointSummary{}
		}
		return printJSON(summaries)
	}

	if len(summaries) == 0 {
		fmt.Println("No checkpoints found")
		return nil
	}

	fmt.Printf("Checkpoints (%d):\n\n", len(summaries))
	for i := len(summaries) - 1; i >= 0; i-- {
		cp := summaries[i]
		fmt.Printf("  %s\n", cp.ID)
		fmt.Printf("    Created: %s\n", cp.Created.Format("2006-01-02 15:04:05"))
		fmt.Printf("    Trigger: %s\n", cp.Trigger)
		if cp.Task != "" {
			fmt.Printf("    Task:    %s\n", cp.Task)
		}
		fmt.Println()
	}
	return nil
}
