// Init command scaffolds a new project directory.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cairn/internal/state"
	"github.com/mesh-intelligence/cairn/internal/store"
	"github.com/mesh-intelligence/cairn/pkg/types"
)

var (
	initGoal        string
	initConstraints []string
)

var initCmd = &cobra.Command{
	Use:   "init <project-name>",
	Short: "Initialize a new project",
	Long: `Init creates the project directory structure and the initial state
document: phase "planning", no tasks, and a fresh session.

Example:
  cairn init "My App" --goal "Build a todo app with auth"
  cairn init "My App" --goal "..." --constraint "Mobile-first"`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initGoal, "goal", "", "project goal description")
	initCmd.Flags().StringArrayVar(&initConstraints, "constraint", nil, "project constraint (repeatable)")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := resolveDir()
	if err != nil {
		return fmt.Errorf("resolve project dir: %w", err)
	}

	codec, err := store.ForEncoding(cfgEncoding)
	if err != nil {
		return err
	}
	files := state.NewFiles(store.NewFS(dir), codec)

	if files.StateExists() {
		return fmt.Errorf("project already initialized: %s exists in %s", files.StatePath(), dir)
	}

	for _, sub := range []string{"", state.CheckpointsDir, state.BackupsDir, "knowledge"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return fmt.Errorf("create project dir: %w", err)
		}
	}
	if err := writeDefaultConfig(dir); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}

	now := time.Now()
	doc := &types.StateDocument{
		Project: types.Project{
			ID:          uuid.NewString(),
			Name:        args[0],
			Goal:        initGoal,
			Created:     now,
			Constraints: initConstraints,
		},
		Phase:         types.PhasePlanning,
		PhaseStarted:  &now,
		PhaseProgress: 0,
		Tasks:         []types.Task{},
		Session: types.Session{
			ID:          uuid.NewString(),
			Started:     now,
			LastUpdated: now,
			Notes:       "Project initialized. Ready for task decomposition.",
		},
	}

	if err := files.SaveState(doc); err != nil {
		return err
	}

	if flagJSON {
		return printJSON(doc)
	}
	fmt.Printf("Initialized project %q in %s\n", doc.Project.Name, dir)
	fmt.Printf("  Project ID: %s\n", doc.Project.ID)
	fmt.Printf("  State:      %s\n", files.StatePath())
	return nil
}
