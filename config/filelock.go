package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const lockFileName = "state.lock"

// FileLock serializes access to the state file across processes. It locks a
// sibling lock file rather than the data file itself.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock creates a FileLock guarding the file at path.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		path: filepath.Join(filepath.Dir(path), lockFileName),
	}
}

// Lock acquires an exclusive lock, blocking until it is available.
func (l *FileLock) Lock() error {
	return l.acquire(os.O_CREATE|os.O_RDWR, true)
}

// RLock acquires a shared lock, blocking until it is available.
func (l *FileLock) RLock() error {
	return l.acquire(os.O_CREATE|os.O_RDONLY, false)
}

func (l *FileLock) acquire(flag int, exclusive bool) error {
	if l.file != nil {
		return fmt.Errorf("lock already held")
	}

	f, err := os.OpenFile(l.path, flag, 0644)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}
	if err := lockFile(f, exclusive); err != nil {
		f.Close()
		return err
	}

	l.file = f
	return nil
}

// Unlock releases the lock. It is a no-op when no lock is held.
func (l *FileLock) Unlock() error {
	if l.file == nil {
		return nil
	}
	if err := unlockFile(l.file); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("failed to close lock file: %w", err)
	}
	l.file = nil
	return nil
}
