package tray

import "fmt"

type Button int

const (
	Left Button = iota
	Right
	Middle
	Forward
)

func (b Button) String() string {
	switch b {
	case Left:
		return "left"
	case Right:
		return "right"
	case Middle:
		return "middle"
	case Forward:
		return "forward"
	}
	return fmt.Sprintf("Button(%d)", int(b))
}

type ClickKind int

const (
	Single ClickKind = iota
	Double
)

func (k ClickKind) String() string {
	if k == Double {
		return "double"
	}
	return "single"
}

type Click struct {
	Kind   ClickKind
	Button Button
}

func (c Click) String() string {
	return c.Kind.String() + "(" + c.Button.String() + ")"
}

// TrayEvent is handed to the embedder once per click on the icon. Position
// is the global cursor position when the message was handled.
type TrayEvent struct {
	Mouse    Click
	Position POINT
}

func (e TrayEvent) String() string {
	return fmt.Sprintf("%s at (%d,%d)", e.Mouse, e.Position.X, e.Position.Y)
}

// Handler receives tray events on the thread running the message loop.
type Handler func(TrayEvent)

// classify maps the mouse sub-code of a CallbackMessage to a click. Only
// button releases and double clicks are recognised.
func classify(subcode uint32) (Click, bool) {
	switch subcode {
	case WM_LBUTTONUP:
		return Click{Single, Left}, true
	case WM_RBUTTONUP:
		return Click{Single, Right}, true
	case WM_MBUTTONUP:
		return Click{Single, Middle}, true
	case WM_XBUTTONUP:
		return Click{Single, Forward}, true
	case WM_LBUTTONDBLCLK:
		return Click{Double, Left}, true
	case WM_RBUTTONDBLCLK:
		return Click{Double, Right}, true
	case WM_MBUTTONDBLCLK:
		return Click{Double, Middle}, true
	case WM_XBUTTONDBLCLK:
		return Click{Double, Forward}, true
	}
	return Click{}, false
}
