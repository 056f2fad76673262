package news

import "github.com/verte-zerg/reflex/internal/model"

// State is the panel's fetch state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Controller tracks one panel. Items survive a failed refresh.
type Controller struct {
	state State
	items []model.NewsItem
	err   error
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Loading reports whether a fetch is outstanding.
func (c *Controller) Loading() bool { return c.state == StateLoading }

// Begin enters Loading. It returns false when a fetch is already running.
func (c *Controller) Begin() bool {
	if c.state == StateLoading {
		return false
	}
	c.state = StateLoading
	c.err = nil
	return true
}

// Finish records the outcome of the outstanding fetch.
func (c *Controller) Finish(items []model.NewsItem, err error) {
	if c.state != StateLoading {
		return
	}
	if err != nil {
		c.state = StateFailed
		c.err = err
		return
	}
	c.state = StateLoaded
	c.items = append([]model.NewsItem(nil), items...)
}

// Items returns the most recently loaded headlines.
func (c *Controller) Items() []model.NewsItem {
	return append([]model.NewsItem(nil), c.items...)
}

// Err returns the last failure while in StateFailed.
func (c *Controller) Err() error { return c.err }
