//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !windows

package diag

// IsTerminal reports false; terminals are not detected on this system.
func IsTerminal(fd uintptr) bool {
	return false
}
