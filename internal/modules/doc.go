// Package modules contains all self-contained application features.
//
// Each subdirectory is a module that implements the `module.Module` interface.
// Modules are assembled in `internal/app/modules.go` and each is mounted by the
// server under "/<name>".
package modules
