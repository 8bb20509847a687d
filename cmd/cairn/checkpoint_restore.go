// Checkpoint restore command overwrites the live state document with a
// snapshot.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	restoreID     string
	restoreLatest bool
)

var checkpointRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore state from a checkpoint",
	Long: `Restore replaces the state document with a checkpoint's snapshot.
The current document is first copied to a timestamped backup under
backups/.

Example:
  cairn checkpoint restore --latest
  cairn checkpoint restore --id cp_20240101_120000`,
	RunE: runCheckpointRestore,
}

func init() {
	checkpointRestoreCmd.Flags().StringVarP(&restoreID, "id", "i", "", "checkpoint ID to restore")
	checkpointRestoreCmd.Flags().BoolVarP(&restoreLatest, "latest", "l", false, "restore from latest checkpoint")
}

func runCheckpointRestore(cmd *cobra.Command, args []string) error {
	mgr, err := openManager()
	if err != nil {
		return err
	}

	result, err := mgr.Restore(restoreID, restoreLatest)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(result)
	}

	for _, w := range result.Warnings {
		fmt.Println("Warning:", w)
	}
	fmt.Printf("Restored from checkpoint: %s\n", result.RestoredFrom)
	fmt.Printf("  Original created: %s\n", result.Created.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Phase:    %s\n", result.Phase)
	fmt.Printf("  Progress: %.0f%%\n", result.Progress*100)
	return nil
}
