//go:build freebsd

package tunLayer

import "golang.org/x/sys/unix"

const (
	tunSIFMODE = unix.TUNSIFMODE
	tunSIFHEAD = unix.TUNSIFHEAD
)
