// Package discovery finds the versionable projects under the project root
// and resolves operator-supplied project identifiers against them.
//
// A project is an immediate subdirectory of the root. Directories whose
// name matches the configured exclude pattern (by default "test",
// case-insensitive) are skipped; this is a naming convention for test
// harness projects, so unusual names can be misclassified either way.
package discovery
