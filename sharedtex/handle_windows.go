//go:build windows

package sharedtex

import "golang.org/x/sys/windows"

// releaseNTHandle closes a Windows NT HANDLE with CloseHandle, the release
// step the shared-texture handle documents for D3D11NTHandle.
func releaseNTHandle(h uintptr) error {
	if h == 0 {
		return nil
	}
	return windows.CloseHandle(windows.Handle(h))
}

func releaseIOSurface(uintptr) error {
	return nil
}

func releaseDMABUFFd(int32) error {
	return nil
}
