package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/atomicstack/mux-launcher/internal/action"
	"github.com/atomicstack/mux-launcher/internal/format/table"
	"github.com/atomicstack/mux-launcher/internal/logging/events"
	"github.com/atomicstack/mux-launcher/internal/mux"
)

// Flags enumerates the independently toggleable entry sources plus the
// always-filtering launch mode.
type Flags uint8

const (
	IncludeDomains Flags = 1 << iota
	IncludeTabs
	IncludeKeyBindings
	IncludeCommands
	IncludeWorkspaces
	Fuzzy
)

// Has reports whether all bits of flag are set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

// FreeEntry is a user-configured launch item.
type FreeEntry struct {
	Label   string
	Command string
}

// Args parameterizes one catalog build.
type Args struct {
	Flags    Flags
	WindowID string
	PaneID   string
	Title    string
	Free     []FreeEntry
}

// Builder assembles the catalog from the injected live-state source.
type Builder struct {
	source mux.Source
	hook   FormatHook
}

// NewBuilder returns a builder reading from source. hook may be nil.
func NewBuilder(source mux.Source, hook FormatHook) *Builder {
	return &Builder{source: source, hook: hook}
}

// Build assembles the ordered catalog: domains, workspaces, tabs, free
// entries, commands, shortcuts. Individual source failures degrade to a
// partial catalog; the joined error reports what was skipped.
func (b *Builder) Build(ctx context.Context, args Args) (Catalog, error) {
	var errs []error
	var out Catalog

	var domains, workspaces, tabs, commands, shortcuts []Entry

	if args.Flags.Has(IncludeDomains) {
		entries, err := b.buildDomains(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("domains: %w", err))
		}
		domains = entries
	}
	if args.Flags.Has(IncludeWorkspaces) {
		entries, err := b.buildWorkspaces(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("workspaces: %w", err))
		}
		workspaces = entries
	}
	if args.Flags.Has(IncludeTabs) {
		entries, err := b.buildTabs(ctx, args.WindowID)
		if err != nil {
			errs = append(errs, fmt.Errorf("tabs: %w", err))
		}
		tabs = entries
	}
	free := b.buildFree(ctx, args.Free)
	if args.Flags.Has(IncludeCommands) {
		entries, err := b.buildCommands(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("commands: %w", err))
		}
		commands = entries
	}
	if args.Flags.Has(IncludeKeyBindings) {
		entries, err := b.buildShortcuts(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("shortcuts: %w", err))
		}
		shortcuts = entries
	}

	out = append(out, domains...)
	out = append(out, workspaces...)
	out = append(out, tabs...)
	out = append(out, free...)
	out = append(out, commands...)
	out = append(out, shortcuts...)

	events.Catalog.Built(len(domains), len(tabs), len(workspaces), len(commands), len(shortcuts), len(free))
	return out, errors.Join(errs...)
}

// buildDomains lists spawnable domains, attached ones first, then by the
// stable domain identifier. Attached domains spawn a tab; detached ones
// attach.
func (b *Builder) buildDomains(ctx context.Context) ([]Entry, error) {
	domains, err := b.source.ListDomains(ctx)
	if err != nil {
		return nil, err
	}
	spawnable := domains[:0:0]
	for _, d := range domains {
		if d.Spawnable {
			spawnable = append(spawnable, d)
		}
	}
	sort.SliceStable(spawnable, func(i, j int) bool {
		a, b := spawnable[i], spawnable[j]
		if a.State != b.State {
			return a.State == mux.Attached
		}
		return a.ID < b.ID
	})
	entries := make([]Entry, 0, len(spawnable))
	for _, d := range spawnable {
		entries = append(entries, b.domainEntry(ctx, d))
	}
	return entries, nil
}

func (b *Builder) domainEntry(ctx context.Context, d mux.Domain) Entry {
	label := fmt.Sprintf("domain `%s`", d.Name)
	if d.Label != "" && d.Label != d.Name {
		label = fmt.Sprintf("domain `%s` - %s", d.Name, d.Label)
	}
	act := action.AttachDomain(d.Name)
	if d.State == mux.Attached {
		act = action.SpawnTabInDomain(d.Name)
	}
	kind := DomainKind{ID: d.ID, Name: d.Name, State: d.State, Label: d.Label}
	return newEntry(ctx, b.hook, label, act, kind)
}

func (b *Builder) buildWorkspaces(ctx context.Context) ([]Entry, error) {
	workspaces, err := b.source.ListWorkspaces(ctx)
	if err != nil {
		return nil, err
	}
	active, err := b.source.ActiveWorkspace(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(workspaces)+1)
	for _, ws := range workspaces {
		if ws == active {
			continue
		}
		label := fmt.Sprintf("Switch to workspace: `%s`", ws)
		entries = append(entries, newEntry(ctx, b.hook, label, action.SwitchWorkspace(ws), WorkspaceKind{Name: ws}))
	}
	label := fmt.Sprintf("Create new Workspace (current is `%s`)", active)
	entries = append(entries, newEntry(ctx, b.hook, label, action.SwitchWorkspace(""), WorkspaceKind{Name: active, Active: true}))
	return entries, nil
}

// buildTabs emits one entry per tab of the invoking window, in window order.
func (b *Builder) buildTabs(ctx context.Context, windowID string) ([]Entry, error) {
	tabs, err := b.source.ListTabs(ctx, windowID)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(tabs))
	for _, t := range tabs {
		label := fmt.Sprintf("%s. %d panes", t.Title, t.PaneCount)
		kind := TabKind{Title: t.Title, TabID: t.ID, Index: t.Index, PaneCount: t.PaneCount}
		entries = append(entries, newEntry(ctx, b.hook, label, action.ActivateTab(t.Index), kind))
	}
	return entries, nil
}

func (b *Builder) buildFree(ctx context.Context, free []FreeEntry) []Entry {
	entries := make([]Entry, 0, len(free))
	for _, f := range free {
		command := strings.TrimSpace(f.Command)
		if command == "" {
			continue
		}
		label := strings.TrimSpace(f.Label)
		if label == "" {
			label = command
		}
		entries = append(entries, newEntry(ctx, b.hook, label, action.SpawnCommand(command), FreeKind{}))
	}
	return entries
}

// buildCommands emits the palette, excluding tab-activation commands, with
// brief and doc aligned as columns.
func (b *Builder) buildCommands(ctx context.Context) ([]Entry, error) {
	commands, err := b.source.ListCommands(ctx)
	if err != nil {
		return nil, err
	}
	kept := commands[:0:0]
	rows := make([][]string, 0, len(commands))
	for _, cmd := range commands {
		if cmd.Action.ActivatesTab() {
			continue
		}
		kept = append(kept, cmd)
		rows = append(rows, []string{cmd.Brief + ".", cmd.Doc})
	}
	labels := table.AlignRows(rows)
	entries := make([]Entry, 0, len(kept))
	for i, cmd := range kept {
		kind := CommandKind{Brief: cmd.Brief, Doc: cmd.Doc, KeyHint: cmd.KeyHint, Action: cmd.Action}
		entries = append(entries, newEntry(ctx, b.hook, labels[i], cmd.Action, kind))
	}
	return entries, nil
}

// buildShortcuts emits key-binding entries: tab-activation bindings are
// excluded, duplicate actions keep the first occurrence, and the result is
// sorted alphabetically by label for determinism.
func (b *Builder) buildShortcuts(ctx context.Context) ([]Entry, error) {
	bindings, err := b.source.ListKeyBindings(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[action.Action]struct{}, len(bindings))
	entries := make([]Entry, 0, len(bindings))
	for _, kb := range bindings {
		if kb.Action.IsZero() || kb.Action.ActivatesTab() {
			continue
		}
		if _, dup := seen[kb.Action]; dup {
			continue
		}
		seen[kb.Action] = struct{}{}
		label := fmt.Sprintf("%s (%s %s)", kb.Action, kb.Mods, kb.Key)
		kind := KeyBindingKind{Key: kb.Key, Mods: kb.Mods, Action: kb.Action}
		entries = append(entries, newEntry(ctx, b.hook, label, kb.Action, kind))
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Label < entries[j].Label
	})
	return entries, nil
}
