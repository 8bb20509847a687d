// Shared helpers for cairn CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mesh-intelligence/cairn/internal/checkpoint"
	"github.com/mesh-intelligence/cairn/internal/state"
	"github.com/mesh-intelligence/cairn/internal/store"
)

// openFiles resolves the project directory and returns the typed
// document layer for it. Every command except init requires the
// directory to exist.
func openFiles() (*state.Files, error) {
	dir, err := resolveDir()
	if err != nil {
		return nil, fmt.Errorf("resolve project dir: %w", err)
	}

	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("project directory not found: %s (run 'cairn init' first)", dir)
		}
		return nil, fmt.Errorf("stat project dir: %w", err)
	}

	codec, err := store.ForEncoding(cfgEncoding)
	if err != nil {
		return nil, err
	}

	return state.NewFiles(store.NewFS(dir), codec), nil
}

// openManager returns a checkpoint manager over the project directory,
// seeded with the configured retention policy.
func openManager() (*checkpoint.Manager, error) {
	files, err := openFiles()
	if err != nil {
		return nil, err
	}
	mgr := checkpoint.NewManager(files, nil)
	mgr.SetRetention(cfgRetention)
	return mgr, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// nonNil returns s, or an empty slice when s is nil, so JSON output
// renders an array instead of null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
