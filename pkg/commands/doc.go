// Package commands holds deskset's operator workflows, one subpackage per
// CLI command. Each workflow takes an options struct naming the descriptor
// path explicitly and returns a result the ui package renders.
package commands
