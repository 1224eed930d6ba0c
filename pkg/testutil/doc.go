// Package testutil provides fakes shared by deskset's package tests.
//
// Key components:
//   - FakeRunner: scripted runner.Runner that records every invocation
//   - Environment: in-memory filesystem, fake runner and environment map
//     wired together for reconciler and command tests
//
// All test data should be defined inline, not in external files.
package testutil
