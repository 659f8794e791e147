package tray

import (
	"fmt"

	"github.com/codeGROOVE-dev/retry"
)

// WinProc handles every message sent to the host window. Messages it does
// not consume end up in DefWindowProc.
func (t *Tray) WinProc(hwnd HWND, msg uint32, wparam, lparam uintptr) uintptr {
	switch {
	case msg == WM_MENUCOMMAND:
		// menu items are not dispatched
	case msg == CallbackMessage:
		if click, ok := classify(uint32(lparam)); ok {
			if !t.click(hwnd, click) {
				return 1
			}
		}
	case msg == WM_CREATE:
		t.restart.resolve(t.platform, t.log)
	case t.restart.matches(msg):
		t.recreate()
	case msg == WM_DESTROY:
		t.platform.PostQuitMessage(0)
		hosts.remove(hwnd)
	case msg == msgInvoke:
		t.drain()
		return 0
	}
	return t.platform.DefWindowProc(hwnd, msg, wparam, lparam)
}

// click emits the event for a recognised mouse sub-code. It reports false
// when the cursor position is unavailable, in which case nothing is sent.
func (t *Tray) click(hwnd HWND, c Click) bool {
	pt, err := t.platform.CursorPos()
	if err != nil {
		t.log.Debug().Err(fmt.Errorf("%w: %w", ErrCursorQueryFailed, err)).Msg("tray: click dropped")
		return false
	}

	ev := TrayEvent{Mouse: c, Position: pt}
	t.log.Debug().Stringer("event", ev).Msg("tray: click")
	if t.handler != nil {
		t.handler(ev)
	}

	// a popup shown by the handler only dismisses on focus loss if the
	// host window is in the foreground
	if err := t.platform.SetForegroundWindow(hwnd); err != nil {
		t.log.Debug().Err(err).Msg("tray: failed to bring window to foreground")
	}
	return true
}

// recreate adds the icon again after explorer restarted. Without an icon
// there is no way to interact with the process, so it quits when every
// attempt failed.
func (t *Tray) recreate() {
	t.log.Info().Msg("tray: taskbar restarted, re-adding icon")
	err := retry.Do(t.attach,
		retry.Attempts(t.policy.attempts()),
		retry.DelayType(retry.BackOffDelay),
		retry.MaxDelay(t.policy.maxDelay()),
		retry.OnRetry(func(n uint, err error) {
			t.log.Warn().Err(err).Uint("attempt", n+1).Msg("tray: re-adding icon failed")
		}),
	)
	if err != nil {
		t.log.Error().Err(err).Msg("tray: could not restore icon, quitting")
		t.platform.PostQuitMessage(0)
		return
	}
	t.reapply()
}
