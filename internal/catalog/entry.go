package catalog

import (
	"context"
	"strings"

	"github.com/atomicstack/mux-launcher/internal/action"
	"github.com/atomicstack/mux-launcher/internal/logging"
	"github.com/atomicstack/mux-launcher/internal/logging/events"
	"github.com/atomicstack/mux-launcher/internal/mux"
)

// Kind records the provenance of an entry. It is a closed set: each source
// has exactly one kind and the marker method keeps the set closed.
type Kind interface {
	kind()
}

// TabKind marks an entry produced from a live tab.
type TabKind struct {
	Title     string
	TabID     int
	Index     int
	PaneCount int
}

// DomainKind marks an entry produced from a spawnable domain.
type DomainKind struct {
	ID    int
	Name  string
	State mux.DomainState
	Label string
}

// KeyBindingKind marks an entry produced from the key-binding table.
type KeyBindingKind struct {
	Key    string
	Mods   string
	Action action.Action
}

// CommandKind marks an entry produced from the command palette.
type CommandKind struct {
	Brief   string
	Doc     string
	KeyHint string
	Action  action.Action
}

// WorkspaceKind marks a workspace-switch entry.
type WorkspaceKind struct {
	Name   string
	Active bool
}

// FreeKind marks a user-configured launch entry.
type FreeKind struct{}

func (TabKind) kind()        {}
func (DomainKind) kind()     {}
func (KeyBindingKind) kind() {}
func (CommandKind) kind()    {}
func (WorkspaceKind) kind()  {}
func (FreeKind) kind()       {}

// Entry is one selectable launcher row. Immutable after construction.
type Entry struct {
	Label  string
	Action action.Action
	Kind   Kind
}

// Catalog is the full ordered entry sequence assembled once per session.
type Catalog []Entry

// FormatHook optionally rewrites an entry label at construction time. It
// may block (it is awaited per entry during the build phase) and it may
// fail; failure is non-fatal.
type FormatHook func(ctx context.Context, label string, a action.Action, kind Kind) (string, error)

// newEntry constructs an entry, running the format hook when present.
// Hook failures keep the original label; the catalog build never aborts
// over label formatting.
func newEntry(ctx context.Context, hook FormatHook, label string, a action.Action, kind Kind) Entry {
	if hook != nil {
		formatted, err := hook(ctx, label, a, kind)
		if err != nil {
			events.Catalog.HookFailed(label, err)
			logging.Error(err)
		} else if strings.TrimSpace(formatted) != "" {
			label = formatted
		}
	}
	return Entry{Label: label, Action: a, Kind: kind}
}
