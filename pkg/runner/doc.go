// Package runner executes the external tools deskset drives: the package
// managers, chsh, the locale tools, the theme tools and ps.
//
// Calls are synchronous and issued one at a time. A Result always carries
// the exit code; the error return of Run and Stream is reserved for the
// case where the process could not be started at all, which lets callers
// tell "the tool answered no" apart from "the tool is not there".
package runner
