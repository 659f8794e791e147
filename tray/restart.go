package tray

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// restartCell holds the message number explorer uses to announce it was
// (re)started. It is assigned at runtime by RegisterWindowMessage, so it is
// resolved on WM_CREATE and compared against every later message.
type restartCell struct {
	mu sync.Mutex
	id uint32
}

// taskbarCreated is shared by every host window of the process.
var taskbarCreated restartCell

func (c *restartCell) resolve(p Platform, log zerolog.Logger) {
	id, err := p.RegisterWindowMessage(TaskbarCreatedMessage)
	if err != nil {
		log.Warn().Err(err).Msg("tray: failed to register taskbar restart message")
		return
	}
	c.mu.Lock()
	c.id = id
	c.mu.Unlock()
}

// matches never reports true before the id was resolved.
func (c *restartCell) matches(msg uint32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id != 0 && msg == c.id
}

// RestartPolicy controls how often re-adding the icon is attempted after
// the taskbar restarted. When all attempts fail the loop is told to quit.
type RestartPolicy struct {
	// Attempts is the total number of tries; 0 is treated as 1.
	Attempts uint
	// MaxDelay caps the exponential backoff between tries.
	MaxDelay time.Duration
}

// FailFast gives up, and quits, after the first failed attempt.
var FailFast = RestartPolicy{Attempts: 1}

func (p RestartPolicy) attempts() uint {
	if p.Attempts == 0 {
		return 1
	}
	return p.Attempts
}

func (p RestartPolicy) maxDelay() time.Duration {
	if p.MaxDelay <= 0 {
		return 2 * time.Second
	}
	return p.MaxDelay
}
