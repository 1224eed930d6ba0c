// Package probe inspects the running system without changing it.
//
// Every input is injected: the environment lookup, the command runner, the
// filesystem and the parent process id. Each detector reports whether it
// found a value; Snapshot folds them into a fresh descriptor and never fails.
package probe
