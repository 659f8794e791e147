package tray

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

var errQueueDrained = errors.New("fake: message queue drained")

const fakeRestartID = 0xC0DE

var lastHWND atomic.Uintptr

type iconKey struct {
	hwnd HWND
	id   uint32
}

// fakePlatform records every call and keeps the shell's icon table in a
// map, so repeated adds of the same (hwnd, id) leave one entry.
type fakePlatform struct {
	mu    sync.Mutex
	calls map[string]int

	thread atomic.Uint32

	icons     map[iconKey]NOTIFYICONDATA
	destroyed map[HICON]bool
	nextIcon  HICON
	queue     []MSG

	cursor    POINT
	cursorErr error

	createWindowErr error
	resourceIcon    bool
	systemIconErr   error
	createIconErr   error
	addFailures     int
	modifyErr       error
}

func newFakePlatform() *fakePlatform {
	f := &fakePlatform{
		calls:     make(map[string]int),
		icons:     make(map[iconKey]NOTIFYICONDATA),
		destroyed: make(map[HICON]bool),
		nextIcon:  0x100,
	}
	f.thread.Store(1)
	return f
}

func (f *fakePlatform) count(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakePlatform) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakePlatform) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakePlatform) registration(hwnd HWND) (NOTIFYICONDATA, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	nid, ok := f.icons[iconKey{hwnd, IconID}]
	return nid, ok
}

func (f *fakePlatform) registrations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.icons)
}

func (f *fakePlatform) post(hwnd HWND, msg uint32, wparam, lparam uintptr) {
	f.mu.Lock()
	f.queue = append(f.queue, MSG{HWnd: hwnd, Message: msg, WParam: wparam, LParam: lparam})
	f.mu.Unlock()
}

func (f *fakePlatform) queued() []MSG {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]MSG(nil), f.queue...)
}

func (f *fakePlatform) ModuleHandle() (HINSTANCE, error) {
	f.count("ModuleHandle")
	return 0x400000, nil
}

func (f *fakePlatform) RegisterClass(string, HINSTANCE) error {
	f.count("RegisterClass")
	return nil
}

// CreateWindow delivers WM_CREATE from inside the call, like CreateWindowEx.
func (f *fakePlatform) CreateWindow(string, HINSTANCE) (HWND, error) {
	f.count("CreateWindow")
	if f.createWindowErr != nil {
		return 0, f.createWindowErr
	}
	hwnd := HWND(lastHWND.Add(1))
	dispatch(hwnd, WM_CREATE, 0, 0)
	return hwnd, nil
}

func (f *fakePlatform) DestroyWindow(hwnd HWND) error {
	f.count("DestroyWindow")
	dispatch(hwnd, WM_DESTROY, 0, 0)
	f.mu.Lock()
	delete(f.icons, iconKey{hwnd, IconID})
	f.mu.Unlock()
	return nil
}

func (f *fakePlatform) DefWindowProc(HWND, uint32, uintptr, uintptr) uintptr {
	f.count("DefWindowProc")
	return 0
}

func (f *fakePlatform) RegisterWindowMessage(name string) (uint32, error) {
	f.count("RegisterWindowMessage")
	if name != TaskbarCreatedMessage {
		return 0, errors.New("fake: unexpected message name")
	}
	return fakeRestartID, nil
}

func (f *fakePlatform) LoadIcon(_ HINSTANCE, name string) (HICON, error) {
	f.count("LoadIcon")
	if f.resourceIcon && name == DefaultIconResource {
		return 0x10, nil
	}
	return 0, errors.New("fake: resource not found")
}

func (f *fakePlatform) LoadSystemIcon(uintptr) (HICON, error) {
	f.count("LoadSystemIcon")
	if f.systemIconErr != nil {
		return 0, f.systemIconErr
	}
	return 0x20, nil
}

func (f *fakePlatform) CreateIcon(icon *WinIcon) (HICON, error) {
	f.count("CreateIcon")
	if f.createIconErr != nil {
		return 0, f.createIconErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextIcon++
	return f.nextIcon, nil
}

func (f *fakePlatform) DestroyIcon(icon HICON) error {
	f.count("DestroyIcon")
	f.mu.Lock()
	f.destroyed[icon] = true
	f.mu.Unlock()
	return nil
}

func (f *fakePlatform) NotifyIcon(op uint32, nid *NOTIFYICONDATA) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := iconKey{nid.HWnd, nid.UID}
	switch op {
	case NIM_ADD:
		f.calls["NotifyIcon.Add"]++
		if f.addFailures > 0 {
			f.addFailures--
			return errors.New("fake: add rejected")
		}
		f.icons[key] = *nid
	case NIM_MODIFY:
		f.calls["NotifyIcon.Modify"]++
		if f.modifyErr != nil {
			return f.modifyErr
		}
		cur, ok := f.icons[key]
		if !ok {
			return errors.New("fake: no such icon")
		}
		if nid.UFlags&NIF_ICON != 0 {
			cur.HIcon = nid.HIcon
		}
		if nid.UFlags&NIF_TIP != 0 {
			cur.SzTip = nid.SzTip
		}
		f.icons[key] = cur
	case NIM_DELETE:
		f.calls["NotifyIcon.Delete"]++
		if _, ok := f.icons[key]; !ok {
			return errors.New("fake: no such icon")
		}
		delete(f.icons, key)
	}
	return nil
}

func (f *fakePlatform) CursorPos() (POINT, error) {
	f.count("CursorPos")
	return f.cursor, f.cursorErr
}

func (f *fakePlatform) SetForegroundWindow(HWND) error {
	f.count("SetForegroundWindow")
	return nil
}

func (f *fakePlatform) GetMessage(msg *MSG) (int32, error) {
	f.count("GetMessage")
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queue) == 0 {
		return -1, errQueueDrained
	}
	*msg = f.queue[0]
	f.queue = f.queue[1:]
	if msg.Message == WM_QUIT {
		return 0, nil
	}
	return 1, nil
}

func (f *fakePlatform) TranslateMessage(*MSG) {
	f.count("TranslateMessage")
}

func (f *fakePlatform) DispatchMessage(msg *MSG) uintptr {
	f.count("DispatchMessage")
	return dispatch(msg.HWnd, msg.Message, msg.WParam, msg.LParam)
}

func (f *fakePlatform) PostMessage(hwnd HWND, msg uint32, wparam, lparam uintptr) error {
	f.count("PostMessage")
	f.post(hwnd, msg, wparam, lparam)
	return nil
}

func (f *fakePlatform) PostQuitMessage(int32) {
	f.count("PostQuitMessage")
	f.post(0, WM_QUIT, 0, 0)
}

func (f *fakePlatform) CurrentThreadID() uint32 {
	return f.thread.Load()
}

func withRestartCell(c *restartCell) Option {
	return func(t *Tray) { t.restart = c }
}

// newTestTray registers a tray on a fresh fake with its own restart cell.
func newTestTray(t *testing.T, f *fakePlatform, opts ...Option) *Tray {
	t.Helper()
	opts = append([]Option{WithPlatform(f), withRestartCell(&restartCell{})}, opts...)
	tr, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { hosts.remove(tr.hwnd) })
	return tr
}
