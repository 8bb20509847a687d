// Checkpoint command group.
package main

import "github.com/spf13/cobra"

var checkpointCmd = &cobra.Command{
	Use:   "checkpoint",
	Short: "Create, list, and restore state checkpoints",
}

func init() {
	checkpointCmd.AddCommand(checkpointCreateCmd)
	checkpointCmd.AddCommand(checkpointListCmd)
	checkpointCmd.AddCommand(checkpointRestoreCmd)
}
