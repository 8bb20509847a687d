package types

import "errors"

// Not-found errors. Callers match with errors.Is; the CLI maps them to a
// non-zero exit status.
var (
	ErrStateNotFound      = errors.New("state document not found")
	ErrManifestNotFound   = errors.New("checkpoint manifest not found")
	ErrCheckpointNotFound = errors.New("checkpoint not found")

	// ErrNoCheckpointTarget is returned by restore when neither an explicit
	// checkpoint id nor the latest flag was given.
	ErrNoCheckpointTarget = errors.New("must specify a checkpoint id or latest")
)

// Model errors.
var (
	ErrInvalidPhase    = errors.New("invalid phase")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrUnknownEncoding = errors.New("unknown encoding")
)
