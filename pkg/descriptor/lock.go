package descriptor

// Locker serializes load-mutate-save cycles on a descriptor path.
type Locker interface {
	// Lock acquires the lock for path and returns the function releasing it.
	Lock(path string) (unlock func() error, err error)
}

// NopLocker performs no locking. Used with in-memory filesystems.
type NopLocker struct{}

func (NopLocker) Lock(string) (func() error, error) {
	return func() error { return nil }, nil
}

// lockPath is the sidecar file holding the advisory lock for path.
func lockPath(path string) string {
	return path + ".lock"
}
