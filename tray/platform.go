package tray

// Platform is every call the tray makes into the windowing subsystem. The
// windows build provides the real implementation; tests provide a double.
//
// All methods except PostMessage and CurrentThreadID are only ever called
// from the thread that created the host window.
type Platform interface {
	ModuleHandle() (HINSTANCE, error)
	// RegisterClass registers a window class whose procedure routes to the
	// Tray bound to the target window. Registering an existing class is
	// not an error.
	RegisterClass(name string, inst HINSTANCE) error
	CreateWindow(class string, inst HINSTANCE) (HWND, error)
	DestroyWindow(hwnd HWND) error
	DefWindowProc(hwnd HWND, msg uint32, wparam, lparam uintptr) uintptr
	RegisterWindowMessage(name string) (uint32, error)

	LoadIcon(inst HINSTANCE, name string) (HICON, error)
	LoadSystemIcon(id uintptr) (HICON, error)
	CreateIcon(icon *WinIcon) (HICON, error)
	DestroyIcon(icon HICON) error

	NotifyIcon(op uint32, nid *NOTIFYICONDATA) error
	CursorPos() (POINT, error)
	SetForegroundWindow(hwnd HWND) error

	GetMessage(msg *MSG) (int32, error)
	TranslateMessage(msg *MSG)
	DispatchMessage(msg *MSG) uintptr
	PostMessage(hwnd HWND, msg uint32, wparam, lparam uintptr) error
	PostQuitMessage(code int32)
	CurrentThreadID() uint32
}
