package tray

import "sync"

// registry maps host windows to their Tray, so the single window procedure
// handed to the OS can find the state belonging to a message.
type registry struct {
	mu    sync.Mutex
	trays map[HWND]*Tray

	// creating serialises window creation: the first messages of a window
	// are delivered from inside CreateWindowEx, before its handle is known.
	creating sync.Mutex
	pending  *Tray
}

var hosts = &registry{trays: make(map[HWND]*Tray)}

func (r *registry) begin(t *Tray) {
	r.creating.Lock()
	r.mu.Lock()
	r.pending = t
	r.mu.Unlock()
}

func (r *registry) end() {
	r.mu.Lock()
	r.pending = nil
	r.mu.Unlock()
	r.creating.Unlock()
}

func (r *registry) bind(hwnd HWND, t *Tray) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.hwnd = hwnd
	r.trays[hwnd] = t
}

// lookup returns the Tray for hwnd, binding the Tray under construction to
// a window seen for the first time.
func (r *registry) lookup(hwnd HWND) *Tray {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.trays[hwnd]; ok {
		return t
	}
	if t := r.pending; t != nil {
		t.hwnd = hwnd
		r.trays[hwnd] = t
		r.pending = nil
		return t
	}
	return nil
}

func (r *registry) remove(hwnd HWND) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.trays, hwnd)
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.trays)
}

// dispatch is the window procedure of every host window.
func dispatch(hwnd HWND, msg uint32, wparam, lparam uintptr) uintptr {
	if t := hosts.lookup(hwnd); t != nil {
		return t.WinProc(hwnd, msg, wparam, lparam)
	}
	return fallbackProc(hwnd, msg, wparam, lparam)
}
