//go:build !windows

package tray

// there is no notification area implementation outside windows; New returns
// ErrUnsupported unless a Platform is supplied

func systemPlatform() Platform {
	return nil
}

func fallbackProc(HWND, uint32, uintptr, uintptr) uintptr {
	return 0
}
