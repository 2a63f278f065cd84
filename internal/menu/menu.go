// Package menu holds the open/closed state of the export and share option lists.
package menu

import "sync"

// Group names one toggle group.
type Group string

// Groups
const (
	GroupExport Group = "export"
	GroupShare  Group = "share"
)

// State is which group, if any, is open. At most one is open at a time.
type State struct {
	ExportOpen bool `json:"export_open"`
	ShareOpen  bool `json:"share_open"`
}

// Action is the item chosen from a group, handed back to the caller for dispatch.
type Action struct {
	Group Group  `json:"group"`
	Item  string `json:"item"`
}

// Controller owns both groups.
type Controller struct {
	mu   sync.Mutex
	open Group
}

// New returns a controller with both groups closed.
func New() *Controller {
	return &Controller{}
}

// Toggle opens g, closing the other group, or closes g when it is already open.
func (c *Controller) Toggle(g Group) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.open == g {
		c.open = ""
	} else {
		c.open = g
	}
	return c.stateLocked()
}

// ClickOutside closes whichever group is open. It reports whether anything closed.
func (c *Controller) ClickOutside() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	closed := c.open != ""
	c.open = ""
	return closed
}

// Choose selects item from g. The group closes and the action is returned for
// dispatch; the outside-dismiss path is not involved. Choosing from a closed
// group reports false.
func (c *Controller) Choose(g Group, item string) (Action, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.open != g {
		return Action{}, false
	}
	c.open = ""
	return Action{Group: g, Item: item}, true
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	return State{
		ExportOpen: c.open == GroupExport,
		ShareOpen:  c.open == GroupShare,
	}
}
