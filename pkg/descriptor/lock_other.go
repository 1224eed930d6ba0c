//go:build !unix

package descriptor

// FileLocker is a no-op where flock(2) is unavailable. Concurrent
// invocations against the same descriptor are last-write-wins there.
type FileLocker struct{}

func (FileLocker) Lock(path string) (func() error, error) {
	return NopLocker{}.Lock(path)
}
