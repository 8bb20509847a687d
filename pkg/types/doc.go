// Package types defines the state document model, checkpoint records,
// and standard error types shared by the cairn core packages.
package types
