//go:build linux || freebsd

package sharedtex

import "golang.org/x/sys/unix"

// releaseDMABUFFd closes the DMA-BUF file descriptor with close(2), the
// release step documented for the DmaBuf variant.
func releaseDMABUFFd(fd int32) error {
	if fd < 0 {
		return nil
	}
	return unix.Close(int(fd))
}

func releaseNTHandle(uintptr) error {
	return nil
}

func releaseIOSurface(uintptr) error {
	return nil
}
