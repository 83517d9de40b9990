package mux

import (
	"context"

	"github.com/atomicstack/mux-launcher/internal/action"
)

// DomainState describes whether a domain currently has a live connection.
type DomainState int

const (
	Detached DomainState = iota
	Attached
)

func (s DomainState) String() string {
	if s == Attached {
		return "attached"
	}
	return "detached"
}

// Domain is a connection context capable of spawning tabs or being attached.
type Domain struct {
	ID        int
	Name      string
	Label     string
	State     DomainState
	Spawnable bool
}

// Tab is one window tab of the invoking window, in window order.
type Tab struct {
	ID        int
	Title     string
	Index     int
	PaneCount int
	Active    bool
}

// KeyBinding is one resolved entry of the key-binding table.
type KeyBinding struct {
	Key    string
	Mods   string
	Action action.Action
}

// Command is one entry of the expanded command palette.
type Command struct {
	Brief   string
	Doc     string
	KeyHint string
	Action  action.Action
}

// Source exposes the live multiplexer state the catalog builder reads.
// Implementations must not retain state across calls; the builder consumes
// each listing exactly once per session.
type Source interface {
	ListDomains(ctx context.Context) ([]Domain, error)
	ListTabs(ctx context.Context, windowID string) ([]Tab, error)
	ListWorkspaces(ctx context.Context) ([]string, error)
	ActiveWorkspace(ctx context.Context) (string, error)
	ListKeyBindings(ctx context.Context) ([]KeyBinding, error)
	ListCommands(ctx context.Context) ([]Command, error)
}
