// Package preflight provides readiness checks for the filesystem paths
// retitle depends on.
//
// The rename command checks its target directory before planning, and
// "retitle config validate" reports RunAll for the configured history and log
// locations.
package preflight
