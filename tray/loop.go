package tray

import (
	"fmt"
	"runtime"
)

// Run pumps the message queue of the calling thread until WM_QUIT. It must
// run on the thread that called New.
func (t *Tray) Run() (err error) {
	defer func() { t.finish(err) }()

	var msg MSG
	for {
		rt, gerr := t.platform.GetMessage(&msg)
		switch rt {
		case 0:
			return nil
		case -1:
			return fmt.Errorf("tray: get message: %w", gerr)
		}
		t.platform.TranslateMessage(&msg)
		t.platform.DispatchMessage(&msg)
	}
}

func (t *Tray) finish(err error) {
	t.doneOnce.Do(func() {
		t.err = err
		close(t.done)
	})
}

// Done is closed once the message loop has returned.
func (t *Tray) Done() <-chan struct{} {
	return t.done
}

// Err returns the message loop error. Only meaningful after Done.
func (t *Tray) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Start creates the tray on a dedicated OS thread and runs its loop there.
// It returns once the icon is registered, or with the setup error.
func Start(opts ...Option) (*Tray, error) {
	var res *Tray
	proc := make(chan error)

	go func() {
		// windows delivers messages to the thread which created the window
		runtime.LockOSThread()

		t, err := New(opts...)
		if err != nil {
			proc <- err
			close(proc)
			return
		}
		res = t
		close(proc)

		if err := t.Run(); err != nil {
			t.log.Error().Err(err).Msg("tray: message loop failed")
		}
	}()

	err, hasError := <-proc
	if hasError {
		return nil, err
	}
	return res, nil
}
