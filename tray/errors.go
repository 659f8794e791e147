package tray

import "errors"

var (
	// ErrSetupFailed is returned when the host window, its class, the
	// default icon or the initial shell registration could not be set up.
	ErrSetupFailed = errors.New("tray setup failed")

	// ErrIconCreationFailed is returned when the platform refuses to build
	// an icon from the converted masks. Retrying with other input may work.
	ErrIconCreationFailed = errors.New("icon creation failed")

	// ErrUpdateFailed is returned when the shell rejects a modification.
	// The registration keeps its previous icon and tooltip.
	ErrUpdateFailed = errors.New("tray update failed")

	// ErrTooltipTooLong is returned before any platform call for tooltips
	// that do not fit the shell's 128 unit buffer.
	ErrTooltipTooLong = errors.New("tooltip may not exceed 127 UTF-16 code units")

	// ErrCursorQueryFailed is only logged: the click is swallowed.
	ErrCursorQueryFailed = errors.New("cursor position query failed")

	ErrInvalidImage = errors.New("invalid icon image")
	ErrUnsupported  = errors.New("notification area icons are only supported on windows")
	ErrClosed       = errors.New("tray closed")
)
