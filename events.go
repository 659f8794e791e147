package main

import "github.com/AtOnline/trayhost/tray"

// eventRouter turns tray clicks into actions. It runs on the tray thread,
// anything slow is started in its own goroutine.
type eventRouter struct {
	quit     func()
	snapshot func()
}

func (r eventRouter) handle(ev tray.TrayEvent) {
	logger.Info().
		Stringer("click", ev.Mouse).
		Int32("x", ev.Position.X).
		Int32("y", ev.Position.Y).
		Msg("tray event")

	switch ev.Mouse {
	case tray.Click{Kind: tray.Double, Button: tray.Right}:
		if r.quit != nil {
			r.quit()
		}
	case tray.Click{Kind: tray.Double, Button: tray.Left}:
		if r.snapshot != nil {
			go r.snapshot()
		}
	}
}
