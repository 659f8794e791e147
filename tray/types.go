// types & constants mirrored from the windows system headers. They carry no
// syscall dependency so the message handling can be exercised on any OS.

package tray

type (
	HANDLE    uintptr
	HINSTANCE HANDLE
	HICON     HANDLE
	HWND      HANDLE
)

type NOTIFYICONDATA struct {
	CbSize            uint32
	HWnd              HWND
	UID               uint32
	UFlags            uint32
	UCallbackMessage  uint32
	HIcon             HICON
	SzTip             [128]uint16
	DwState           uint32
	DwStateMask       uint32
	SzInfo            [256]uint16
	UVersionOrTimeout uint32
	SzInfoTitle       [64]uint16
	DwInfoFlags       uint32
	GuidItem          GUID
	HBalloonICon      HICON
}

type GUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

type MSG struct {
	HWnd    HWND
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      POINT
}

type POINT struct {
	X, Y int32
}

const (
	WM_CREATE      = 0x0001
	WM_DESTROY     = 0x0002
	WM_QUIT        = 0x0012
	WM_MENUCOMMAND = 0x0126

	WM_LBUTTONUP     = 0x0202
	WM_LBUTTONDBLCLK = 0x0203
	WM_RBUTTONUP     = 0x0205
	WM_RBUTTONDBLCLK = 0x0206
	WM_MBUTTONUP     = 0x0208
	WM_MBUTTONDBLCLK = 0x0209
	WM_XBUTTONUP     = 0x020C
	WM_XBUTTONDBLCLK = 0x020D

	WM_USER = 0x0400

	NIM_ADD    = 0x00000000
	NIM_MODIFY = 0x00000001
	NIM_DELETE = 0x00000002

	NIF_MESSAGE = 0x00000001
	NIF_ICON    = 0x00000002
	NIF_TIP     = 0x00000004

	IDI_APPLICATION = 32512

	// CallbackMessage is the message the shell sends to the host window
	// for mouse activity over the icon; the sub-code rides in lParam.
	CallbackMessage = WM_USER + 1

	// msgInvoke wakes the loop to run closures queued by Do.
	msgInvoke = WM_USER + 2

	// IconID is the uID of the single icon owned by a host window.
	IconID = 1

	// TaskbarCreatedMessage is registered to learn which message number
	// explorer broadcasts after it (re)starts.
	TaskbarCreatedMessage = "TaskbarCreated"

	// DefaultIconResource is the executable resource tried before falling
	// back to the stock application icon.
	DefaultIconResource = "tray-default"

	// DefaultClassName is the window class of the hidden host window.
	DefaultClassName = "TrayHostWindow"
)
