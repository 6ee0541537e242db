//go:build darwin || freebsd || netbsd || openbsd

package platform

import "golang.org/x/sys/unix"

// BSD and Darwin share the same termios ioctl requests, named TIOCGETA/
// TIOCSETA rather than Linux's TCGETS/TCSETS, per the teacher's own
// termios_darwin.go split.
const (
	ioctlGetTermios = unix.TIOCGETA
	ioctlSetTermios = unix.TIOCSETA
)
