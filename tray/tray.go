package tray

import (
	"fmt"
	"sync"
	"unicode/utf16"
	"unsafe"

	"github.com/rs/zerolog"
)

// Tray owns one notification area icon and the hidden window receiving its
// messages. All of its methods must run on the thread that called New,
// except SetIcon, SetTooltip, Close and Do which marshal themselves onto it.
type Tray struct {
	platform  Platform
	className string
	inst      HINSTANCE
	hwnd      HWND
	threadID  uint32

	icon    HICON
	ownIcon bool
	tooltip string

	handler Handler
	policy  RestartPolicy
	restart *restartCell
	log     zerolog.Logger

	initTooltip string
	initIcon    IconImage

	mut    sync.Mutex
	queue  []func()
	closed bool

	done     chan struct{}
	doneOnce sync.Once
	err      error
}

type Option func(*Tray)

// WithHandler sets the function receiving click events.
func WithHandler(h Handler) Option {
	return func(t *Tray) { t.handler = h }
}

func WithTooltip(tooltip string) Option {
	return func(t *Tray) { t.initTooltip = tooltip }
}

func WithIcon(img IconImage) Option {
	return func(t *Tray) { t.initIcon = img }
}

func WithLogger(log zerolog.Logger) Option {
	return func(t *Tray) { t.log = log }
}

func WithRestartPolicy(p RestartPolicy) Option {
	return func(t *Tray) { t.policy = p }
}

// WithPlatform replaces the system windowing calls.
func WithPlatform(p Platform) Option {
	return func(t *Tray) { t.platform = p }
}

func WithClassName(name string) Option {
	return func(t *Tray) { t.className = name }
}

// New creates the host window and adds the default icon to the
// notification area. It must be called from the thread that will run the
// message loop (see Start). On error nothing is left registered.
func New(opts ...Option) (*Tray, error) {
	t := &Tray{
		className: DefaultClassName,
		policy:    FailFast,
		restart:   &taskbarCreated,
		log:       zerolog.Nop(),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.platform == nil {
		t.platform = systemPlatform()
	}
	if t.platform == nil {
		return nil, ErrUnsupported
	}
	t.threadID = t.platform.CurrentThreadID()

	if err := t.createWindow(); err != nil {
		return nil, err
	}
	if err := t.attach(); err != nil {
		t.abort()
		return nil, err
	}
	if t.initTooltip != "" {
		if err := t.SetTooltip(t.initTooltip); err != nil {
			t.abort()
			return nil, err
		}
	}
	if !t.initIcon.IsZero() {
		if err := t.SetIcon(t.initIcon); err != nil {
			t.abort()
			return nil, err
		}
	}
	t.log.Debug().Uint64("hwnd", uint64(t.hwnd)).Msg("tray: icon registered")
	return t, nil
}

func (t *Tray) createWindow() error {
	inst, err := t.platform.ModuleHandle()
	if err != nil {
		return fmt.Errorf("%w: get module handle: %w", ErrSetupFailed, err)
	}
	t.inst = inst
	if err := t.platform.RegisterClass(t.className, inst); err != nil {
		return fmt.Errorf("%w: register class: %w", ErrSetupFailed, err)
	}

	hosts.begin(t)
	hwnd, err := t.platform.CreateWindow(t.className, inst)
	hosts.end()
	if err != nil {
		return fmt.Errorf("%w: create window: %w", ErrSetupFailed, err)
	}
	hosts.bind(hwnd, t)
	return nil
}

// abort tears down a half built tray. The window is unbound first so its
// WM_DESTROY does not post a quit message to the thread.
func (t *Tray) abort() {
	hosts.remove(t.hwnd)
	if t.ownIcon {
		t.platform.DestroyIcon(t.icon)
		t.ownIcon = false
	}
	if err := t.platform.DestroyWindow(t.hwnd); err != nil {
		t.log.Debug().Err(err).Msg("tray: destroy window failed")
	}
}

// attach loads the default icon and adds it to the notification area. It
// runs on creation and again whenever the taskbar was recreated.
func (t *Tray) attach() error {
	icon, err := loadDefaultIcon(t.platform, t.inst)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSetupFailed, err)
	}
	nid := t.notifyData(NIF_MESSAGE | NIF_ICON)
	nid.UCallbackMessage = CallbackMessage
	nid.HIcon = icon
	if err := t.platform.NotifyIcon(NIM_ADD, nid); err != nil {
		return fmt.Errorf("%w: shell notify add: %w", ErrSetupFailed, err)
	}
	return nil
}

func (t *Tray) notifyData(flags uint32) *NOTIFYICONDATA {
	nid := &NOTIFYICONDATA{
		HWnd:   t.hwnd,
		UID:    IconID,
		UFlags: flags,
	}
	nid.CbSize = uint32(unsafe.Sizeof(*nid))
	return nid
}

// SetIcon replaces the icon with img. The previous icon stays in place if
// the shell rejects the new one.
func (t *Tray) SetIcon(img IconImage) error {
	if !t.onLoopThread() {
		return t.Do(func() error { return t.SetIcon(img) })
	}
	hicon, err := createIcon(t.platform, img)
	if err != nil {
		return err
	}
	nid := t.notifyData(NIF_ICON)
	nid.HIcon = hicon
	if err := t.platform.NotifyIcon(NIM_MODIFY, nid); err != nil {
		t.platform.DestroyIcon(hicon)
		return fmt.Errorf("%w: icon: %w", ErrUpdateFailed, err)
	}
	if t.ownIcon {
		t.platform.DestroyIcon(t.icon)
	}
	t.icon, t.ownIcon = hicon, true
	return nil
}

// SetTooltip sets the text shown when hovering the icon. Text longer than
// 127 UTF-16 code units is rejected without contacting the shell.
func (t *Tray) SetTooltip(tooltip string) error {
	tip, err := encodeTooltip(tooltip)
	if err != nil {
		return err
	}
	if !t.onLoopThread() {
		return t.Do(func() error { return t.SetTooltip(tooltip) })
	}
	nid := t.notifyData(NIF_TIP)
	nid.SzTip = tip
	if err := t.platform.NotifyIcon(NIM_MODIFY, nid); err != nil {
		return fmt.Errorf("%w: tooltip: %w", ErrUpdateFailed, err)
	}
	t.tooltip = tooltip
	return nil
}

func encodeTooltip(s string) (tip [128]uint16, err error) {
	wide := append(utf16.Encode([]rune(s)), 0)
	if len(wide) > len(tip) {
		return tip, fmt.Errorf("%w: %d units", ErrTooltipTooLong, len(wide)-1)
	}
	copy(tip[:], wide)
	return tip, nil
}

// Tooltip returns the last tooltip accepted by the shell.
func (t *Tray) Tooltip() string {
	return t.tooltip
}

func (t *Tray) Handle() HWND {
	return t.hwnd
}

// reapply pushes the custom icon and tooltip again after the default icon
// was re-added. Failures are logged: the icon is visible either way.
func (t *Tray) reapply() {
	if t.ownIcon {
		nid := t.notifyData(NIF_ICON)
		nid.HIcon = t.icon
		if err := t.platform.NotifyIcon(NIM_MODIFY, nid); err != nil {
			t.log.Warn().Err(err).Msg("tray: failed to restore icon")
		}
	}
	if t.tooltip != "" {
		if err := t.SetTooltip(t.tooltip); err != nil {
			t.log.Warn().Err(err).Msg("tray: failed to restore tooltip")
		}
	}
}

// Close removes the icon and destroys the host window, which ends the
// message loop.
func (t *Tray) Close() error {
	return t.Do(func() error {
		t.mut.Lock()
		if t.closed {
			t.mut.Unlock()
			return ErrClosed
		}
		t.closed = true
		t.mut.Unlock()

		var res error
		if err := t.platform.NotifyIcon(NIM_DELETE, t.notifyData(0)); err != nil {
			t.log.Warn().Err(err).Msg("tray: shell notify delete failed")
			res = fmt.Errorf("shell notify delete: %w", err)
		}
		if t.ownIcon {
			t.platform.DestroyIcon(t.icon)
			t.icon, t.ownIcon = 0, false
		}
		if err := t.platform.DestroyWindow(t.hwnd); err != nil && res == nil {
			res = fmt.Errorf("destroy window: %w", err)
		}
		return res
	})
}

func (t *Tray) onLoopThread() bool {
	return t.platform.CurrentThreadID() == t.threadID
}

// Do runs fn on the thread owning the window and returns its error. Called
// from that thread, fn runs immediately.
func (t *Tray) Do(fn func() error) error {
	if t.onLoopThread() {
		return fn()
	}

	res := make(chan error, 1)
	t.mut.Lock()
	if t.closed {
		t.mut.Unlock()
		return ErrClosed
	}
	t.queue = append(t.queue, func() { res <- fn() })
	t.mut.Unlock()

	if err := t.platform.PostMessage(t.hwnd, msgInvoke, 0, 0); err != nil {
		return fmt.Errorf("post to tray thread: %w", err)
	}
	select {
	case err := <-res:
		return err
	case <-t.done:
		select {
		case err := <-res:
			return err
		default:
			return ErrClosed
		}
	}
}

func (t *Tray) drain() {
	t.mut.Lock()
	queue := t.queue
	t.queue = nil
	t.mut.Unlock()

	for _, fn := range queue {
		fn()
	}
}
