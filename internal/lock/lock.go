// Package lock keeps two bots from publishing to the same channel. Each running bot
// holds a lock directory keyed by channel ID; a second bot on the same machine refuses
// to start instead of deleting the first one's status message every tick.
package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rileyhilliard/panelwatch/internal/errors"
)

// StaleAfter is how old an unreadable lock must be before it is considered abandoned.
// A lock whose info.json is readable is stale only once its holder process is gone.
const StaleAfter = time.Minute

// Lock is a held instance lock.
type Lock struct {
	Dir  string    // The lock directory
	Info *LockInfo // Info about the lock holder (us)
}

// DefaultDir is where run keeps its locks.
func DefaultDir() string {
	return os.TempDir()
}

// Acquire takes the lock for key under baseDir. mkdir is the atomic primitive: it fails
// when the directory already exists. A stale lock is removed and acquisition retried once.
func Acquire(baseDir, key string) (*Lock, error) {
	lockDir := filepath.Join(baseDir, fmt.Sprintf("panelwatch-%s.lock", sanitize(key)))
	infoFile := filepath.Join(lockDir, "info.json")

	info, err := NewLockInfo(key)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrLock,
			"Failed to create lock info",
			"Check hostname and user environment")
	}

	for attempt := 0; attempt < 2; attempt++ {
		err := os.Mkdir(lockDir, 0o700)
		if err == nil {
			if err := writeInfo(infoFile, info); err != nil {
				_ = os.RemoveAll(lockDir)
				return nil, errors.WrapWithCode(err, errors.ErrLock,
					"Failed to write lock info file",
					"Check disk space and permissions on "+baseDir)
			}
			return &Lock{Dir: lockDir, Info: info}, nil
		}
		if !os.IsExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrLock,
				fmt.Sprintf("Failed to create lock directory: %s", lockDir),
				"Check permissions on "+baseDir)
		}

		if !isLockStale(lockDir, infoFile) {
			break
		}
		if err := os.RemoveAll(lockDir); err != nil {
			break
		}
	}

	return nil, errors.WrapWithCode(ErrLocked, errors.ErrLock,
		fmt.Sprintf("Another panelwatch is already publishing to %s", key),
		fmt.Sprintf("Lock held by: %s. Stop that bot first, or remove %s if it is gone.",
			Holder(lockDir), lockDir))
}

// Release removes the lock, allowing others to acquire it.
func (l *Lock) Release() error {
	if l == nil {
		return nil // Nothing to release
	}
	return os.RemoveAll(l.Dir)
}

// Holder returns information about who holds the lock (if readable).
func Holder(lockDir string) string {
	data, err := os.ReadFile(filepath.Join(lockDir, "info.json"))
	if err != nil {
		return "unknown"
	}
	info, err := ParseLockInfo(data)
	if err != nil {
		return strings.TrimSpace(string(data))
	}
	return info.String()
}

// isLockStale reports whether the lock can be taken over: its holder on this host has
// exited, or it never got an info file and is older than StaleAfter.
func isLockStale(lockDir, infoFile string) bool {
	data, err := os.ReadFile(infoFile)
	if err != nil {
		st, statErr := os.Stat(lockDir)
		return statErr == nil && time.Since(st.ModTime()) > StaleAfter
	}

	info, err := ParseLockInfo(data)
	if err != nil {
		return time.Since(fileTime(infoFile)) > StaleAfter
	}

	hostname, _ := os.Hostname()
	if info.Hostname != hostname {
		return false
	}
	return !processAlive(info.PID)
}

func writeInfo(path string, info *LockInfo) error {
	data, err := info.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func fileTime(path string) time.Time {
	st, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return st.ModTime()
}

// sanitize keeps key usable as a file name.
func sanitize(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, key)
}
