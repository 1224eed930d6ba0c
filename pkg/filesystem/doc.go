// Package filesystem provides filesystem implementations for deskset.
//
// All descriptor and system-file I/O goes through the FS interface so that
// the reconciler and the descriptor store can be exercised against an
// in-memory filesystem in tests.
package filesystem
