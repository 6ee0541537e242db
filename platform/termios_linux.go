//go:build linux

package platform

import "golang.org/x/sys/unix"

// Linux's termios ioctl requests are named TCGETS/TCSETS rather than the
// BSD/Darwin TIOCGETA/TIOCSETA; see termios_bsd.go for that side.
const (
	ioctlGetTermios = unix.TCGETS
	ioctlSetTermios = unix.TCSETS
)
