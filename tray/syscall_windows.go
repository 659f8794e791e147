//go:build windows

// those are the calls from various windows system libs backing Platform

package tray

import (
	"errors"
	"unsafe"

	"golang.org/x/sys/windows"
)

type WNDCLASSEX struct {
	CbSize        uint32
	Style         uint32
	LpfnWndProc   uintptr
	CbClsExtra    int32
	CbWndExtra    int32
	HInstance     HINSTANCE
	HIcon         HICON
	HCursor       HANDLE
	HbrBackground HANDLE
	LpszMenuName  *uint16
	LpszClassName *uint16
	HIconSm       HICON
}

const (
	WS_OVERLAPPEDWINDOW = 0x00000000 | 0x00C00000 | 0x00080000 | 0x00040000 | 0x00020000 | 0x00010000
	CW_USEDEFAULT       = 0x80000000
)

var (
	kernel32         = windows.NewLazySystemDLL("kernel32.dll")
	pGetModuleHandle = kernel32.NewProc("GetModuleHandleW")

	shell32          = windows.NewLazySystemDLL("shell32.dll")
	pShellNotifyIcon = shell32.NewProc("Shell_NotifyIconW")

	user32 = windows.NewLazySystemDLL("user32.dll")

	pGetMessage       = user32.NewProc("GetMessageW")
	pTranslateMessage = user32.NewProc("TranslateMessage")
	pDispatchMessage  = user32.NewProc("DispatchMessageW")
	pPostMessage      = user32.NewProc("PostMessageW")
	pPostQuitMessage  = user32.NewProc("PostQuitMessage")

	pDefWindowProc         = user32.NewProc("DefWindowProcW")
	pRegisterClassEx       = user32.NewProc("RegisterClassExW")
	pRegisterWindowMessage = user32.NewProc("RegisterWindowMessageW")
	pCreateWindowEx        = user32.NewProc("CreateWindowExW")
	pDestroyWindow         = user32.NewProc("DestroyWindow")
	pSetForegroundWindow   = user32.NewProc("SetForegroundWindow")
	pGetCursorPos          = user32.NewProc("GetCursorPos")

	pCreateIcon  = user32.NewProc("CreateIcon")
	pDestroyIcon = user32.NewProc("DestroyIcon")
	pLoadIcon    = user32.NewProc("LoadIconW")
)

// wndProc is shared by every host window class.
var wndProc = windows.NewCallback(dispatch)

type winPlatform struct{}

func systemPlatform() Platform {
	return winPlatform{}
}

func fallbackProc(hwnd HWND, msg uint32, wparam, lparam uintptr) uintptr {
	return winPlatform{}.DefWindowProc(hwnd, msg, wparam, lparam)
}

func (winPlatform) ModuleHandle() (HINSTANCE, error) {
	hinst, _, err := pGetModuleHandle.Call(0)
	if hinst == 0 {
		return 0, err
	}
	return HINSTANCE(hinst), nil
}

func (winPlatform) RegisterClass(name string, inst HINSTANCE) error {
	className, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return err
	}
	var wc WNDCLASSEX
	wc.CbSize = uint32(unsafe.Sizeof(wc))
	wc.LpfnWndProc = wndProc
	wc.HInstance = inst
	wc.LpszClassName = className

	atom, _, err := pRegisterClassEx.Call(uintptr(unsafe.Pointer(&wc)))
	if atom == 0 {
		if errors.Is(err, windows.ERROR_CLASS_ALREADY_EXISTS) {
			return nil
		}
		return err
	}
	return nil
}

// CreateWindow creates a hidden top level window. A message-only window
// would not receive the taskbar created broadcast.
func (winPlatform) CreateWindow(class string, inst HINSTANCE) (HWND, error) {
	className, err := windows.UTF16PtrFromString(class)
	if err != nil {
		return 0, err
	}
	hwnd, _, err := pCreateWindowEx.Call(
		0,
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(className)),
		WS_OVERLAPPEDWINDOW,
		CW_USEDEFAULT,
		0,
		CW_USEDEFAULT,
		0,
		0,
		0,
		uintptr(inst),
		0)
	if hwnd == 0 {
		return 0, err
	}
	return HWND(hwnd), nil
}

func (winPlatform) DestroyWindow(hwnd HWND) error {
	ret, _, err := pDestroyWindow.Call(uintptr(hwnd))
	if ret == 0 {
		return err
	}
	return nil
}

func (winPlatform) DefWindowProc(hwnd HWND, msg uint32, wparam, lparam uintptr) uintptr {
	result, _, _ := pDefWindowProc.Call(uintptr(hwnd), uintptr(msg), wparam, lparam)
	return result
}

func (winPlatform) RegisterWindowMessage(name string) (uint32, error) {
	str, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return 0, err
	}
	id, _, err := pRegisterWindowMessage.Call(uintptr(unsafe.Pointer(str)))
	if id == 0 {
		return 0, err
	}
	return uint32(id), nil
}

func (winPlatform) LoadIcon(inst HINSTANCE, name string) (HICON, error) {
	str, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return 0, err
	}
	hicon, _, err := pLoadIcon.Call(uintptr(inst), uintptr(unsafe.Pointer(str)))
	if hicon == 0 {
		return 0, err
	}
	return HICON(hicon), nil
}

func (winPlatform) LoadSystemIcon(id uintptr) (HICON, error) {
	hicon, _, err := pLoadIcon.Call(0, id)
	if hicon == 0 {
		return 0, err
	}
	return HICON(hicon), nil
}

func (winPlatform) CreateIcon(i *WinIcon) (HICON, error) {
	if len(i.AndT) == 0 || len(i.XorT) == 0 {
		return 0, errors.New("empty icon masks")
	}
	hicon, _, err := pCreateIcon.Call(
		0,
		uintptr(i.W), uintptr(i.H),
		uintptr(i.Planes), uintptr(i.Bpp),
		uintptr(unsafe.Pointer(&i.AndT[0])),
		uintptr(unsafe.Pointer(&i.XorT[0])),
	)
	if hicon == 0 {
		return 0, err
	}
	return HICON(hicon), nil
}

func (winPlatform) DestroyIcon(icon HICON) error {
	ret, _, err := pDestroyIcon.Call(uintptr(icon))
	if ret == 0 {
		return err
	}
	return nil
}

func (winPlatform) NotifyIcon(op uint32, nid *NOTIFYICONDATA) error {
	ret, _, err := pShellNotifyIcon.Call(uintptr(op), uintptr(unsafe.Pointer(nid)))
	if ret == 0 {
		return err
	}
	return nil
}

func (winPlatform) CursorPos() (POINT, error) {
	var pt POINT
	ret, _, err := pGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if ret == 0 {
		return POINT{}, err
	}
	return pt, nil
}

func (winPlatform) SetForegroundWindow(hwnd HWND) error {
	ret, _, err := pSetForegroundWindow.Call(uintptr(hwnd))
	if ret == 0 {
		return err
	}
	return nil
}

func (winPlatform) GetMessage(msg *MSG) (int32, error) {
	rt, _, err := pGetMessage.Call(uintptr(unsafe.Pointer(msg)), 0, 0, 0)
	return int32(rt), err
}

func (winPlatform) TranslateMessage(msg *MSG) {
	pTranslateMessage.Call(uintptr(unsafe.Pointer(msg)))
}

func (winPlatform) DispatchMessage(msg *MSG) uintptr {
	ret, _, _ := pDispatchMessage.Call(uintptr(unsafe.Pointer(msg)))
	return ret
}

func (winPlatform) PostMessage(hwnd HWND, msg uint32, wparam, lparam uintptr) error {
	ret, _, err := pPostMessage.Call(uintptr(hwnd), uintptr(msg), wparam, lparam)
	if ret == 0 {
		return err
	}
	return nil
}

func (winPlatform) PostQuitMessage(code int32) {
	pPostQuitMessage.Call(uintptr(code))
}

func (winPlatform) CurrentThreadID() uint32 {
	return windows.GetCurrentThreadId()
}
