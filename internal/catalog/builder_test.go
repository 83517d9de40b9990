package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/atomicstack/mux-launcher/internal/action"
	"github.com/atomicstack/mux-launcher/internal/mux"
)

type fakeSource struct {
	domains    []mux.Domain
	tabs       []mux.Tab
	workspaces []string
	active     string
	bindings   []mux.KeyBinding
	commands   []mux.Command

	domainsErr  error
	tabsErr     error
	bindingsErr error
	commandsErr error
}

func (f *fakeSource) ListDomains(context.Context) ([]mux.Domain, error) {
	return f.domains, f.domainsErr
}

func (f *fakeSource) ListTabs(context.Context, string) ([]mux.Tab, error) {
	return f.tabs, f.tabsErr
}

func (f *fakeSource) ListWorkspaces(context.Context) ([]string, error) {
	return f.workspaces, nil
}

func (f *fakeSource) ActiveWorkspace(context.Context) (string, error) {
	return f.active, nil
}

func (f *fakeSource) ListKeyBindings(context.Context) ([]mux.KeyBinding, error) {
	return f.bindings, f.bindingsErr
}

func (f *fakeSource) ListCommands(context.Context) ([]mux.Command, error) {
	return f.commands, f.commandsErr
}

func allFlags() Flags {
	return IncludeDomains | IncludeTabs | IncludeKeyBindings | IncludeCommands | IncludeWorkspaces
}

func fullSource() *fakeSource {
	return &fakeSource{
		domains: []mux.Domain{
			{ID: 0, Name: "local", State: mux.Detached, Spawnable: true},
			{ID: 1, Name: "remote", State: mux.Attached, Spawnable: true},
			{ID: 2, Name: "hidden", State: mux.Detached, Spawnable: false},
		},
		tabs: []mux.Tab{
			{ID: 1, Title: "editor", Index: 0, PaneCount: 2},
			{ID: 2, Title: "logs", Index: 1, PaneCount: 1},
		},
		workspaces: []string{"dev", "prod"},
		active:     "dev",
		bindings: []mux.KeyBinding{
			{Key: "c", Mods: "prefix", Action: action.SpawnCommand("new-window")},
			{Key: "n", Mods: "prefix", Action: action.Action{Op: action.OpActivateTabRelative, Index: 1}},
			{Key: "x", Mods: "prefix", Action: action.RunCommand("kill-pane")},
		},
		commands: []mux.Command{
			{Brief: "kill-pane", Doc: "destroy a pane", Action: action.RunCommand("kill-pane")},
			{Brief: "select-window", Doc: "activate a window", Action: action.ActivateTab(1)},
		},
	}
}

func kindNames(entries Catalog) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = fmt.Sprintf("%T", e.Kind)
	}
	return names
}

func TestBuildOrdersSections(t *testing.T) {
	b := NewBuilder(fullSource(), nil)
	got, err := b.Build(context.Background(), Args{
		Flags: allFlags(),
		Free:  []FreeEntry{{Label: "htop", Command: "htop"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"catalog.DomainKind",     // remote (attached first)
		"catalog.DomainKind",     // local
		"catalog.WorkspaceKind",  // prod
		"catalog.WorkspaceKind",  // create new
		"catalog.TabKind",
		"catalog.TabKind",
		"catalog.FreeKind",
		"catalog.CommandKind",    // kill-pane only
		"catalog.KeyBindingKind", // two survive dedup and exclusion
		"catalog.KeyBindingKind",
	}
	got2 := kindNames(got)
	if len(got2) != len(want) {
		t.Fatalf("expected %d entries, got %d: %v", len(want), len(got2), got2)
	}
	for i := range want {
		if got2[i] != want[i] {
			t.Fatalf("entry %d: expected %s, got %s (%q)", i, want[i], got2[i], got[i].Label)
		}
	}
}

func TestDomainsSortAttachedFirstAndSkipUnspawnable(t *testing.T) {
	b := NewBuilder(fullSource(), nil)
	got, err := b.Build(context.Background(), Args{Flags: IncludeDomains})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected two spawnable domains, got %d", len(got))
	}
	if got[0].Label != "domain `remote`" {
		t.Fatalf("expected attached domain first, got %q", got[0].Label)
	}
	if got[0].Action != action.SpawnTabInDomain("remote") {
		t.Fatalf("expected attached domain to spawn a tab, got %v", got[0].Action)
	}
	if got[1].Action != action.AttachDomain("local") {
		t.Fatalf("expected detached domain to attach, got %v", got[1].Action)
	}
}

func TestDomainLabelIncludesDetail(t *testing.T) {
	src := &fakeSource{domains: []mux.Domain{
		{ID: 0, Name: "work", Label: "3 windows", State: mux.Attached, Spawnable: true},
	}}
	b := NewBuilder(src, nil)
	got, err := b.Build(context.Background(), Args{Flags: IncludeDomains})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Label != "domain `work` - 3 windows" {
		t.Fatalf("unexpected label %q", got[0].Label)
	}
}

func TestTabEntriesCarryIndexAndPaneCount(t *testing.T) {
	b := NewBuilder(fullSource(), nil)
	got, err := b.Build(context.Background(), Args{Flags: IncludeTabs})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Label != "editor. 2 panes" {
		t.Fatalf("unexpected tab label %q", got[0].Label)
	}
	if got[1].Action != action.ActivateTab(1) {
		t.Fatalf("expected activation of tab index 1, got %v", got[1].Action)
	}
}

func TestWorkspaceEntriesSkipActiveAndOfferCreate(t *testing.T) {
	b := NewBuilder(fullSource(), nil)
	got, err := b.Build(context.Background(), Args{Flags: IncludeWorkspaces})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected switch entry plus create entry, got %d", len(got))
	}
	if got[0].Label != "Switch to workspace: `prod`" {
		t.Fatalf("unexpected label %q", got[0].Label)
	}
	if got[1].Label != "Create new Workspace (current is `dev`)" {
		t.Fatalf("unexpected label %q", got[1].Label)
	}
	if got[1].Action != action.SwitchWorkspace("") {
		t.Fatalf("expected empty-target switch for create entry, got %v", got[1].Action)
	}
}

func TestShortcutsExcludeTabActivationAndDeduplicate(t *testing.T) {
	src := &fakeSource{bindings: []mux.KeyBinding{
		{Key: "1", Mods: "prefix", Action: action.ActivateTab(0)},
		{Key: "x", Mods: "prefix", Action: action.RunCommand("kill-pane")},
		{Key: "X", Mods: "root", Action: action.RunCommand("kill-pane")},
		{Key: "c", Mods: "prefix", Action: action.SpawnCommand("new-window")},
	}}
	b := NewBuilder(src, nil)
	got, err := b.Build(context.Background(), Args{Flags: IncludeKeyBindings})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected two shortcuts after exclusion and dedup, got %d: %v", len(got), got)
	}
	for _, e := range got {
		if e.Action.ActivatesTab() {
			t.Fatalf("tab-activation shortcut leaked into catalog: %q", e.Label)
		}
	}
	// Alphabetical by label, and the duplicate kept the first binding.
	if !strings.Contains(got[0].Label, "prefix x") && !strings.Contains(got[1].Label, "prefix x") {
		t.Fatalf("expected the first duplicate binding kept, got %v", got)
	}
	if got[0].Label > got[1].Label {
		t.Fatalf("expected alphabetical labels, got %q then %q", got[0].Label, got[1].Label)
	}
}

func TestCommandsExcludeTabActivationAndAlignColumns(t *testing.T) {
	src := &fakeSource{commands: []mux.Command{
		{Brief: "kill-pane", Doc: "destroy a pane", Action: action.RunCommand("kill-pane")},
		{Brief: "split", Doc: "split a pane", Action: action.RunCommand("split-window")},
		{Brief: "next-window", Doc: "next", Action: action.Action{Op: action.OpActivateTabRelative, Index: 1}},
	}}
	b := NewBuilder(src, nil)
	got, err := b.Build(context.Background(), Args{Flags: IncludeCommands})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected two commands after exclusion, got %d", len(got))
	}
	if got[0].Label != "kill-pane.  destroy a pane" {
		t.Fatalf("unexpected aligned label %q", got[0].Label)
	}
	if got[1].Label != "split.      split a pane" {
		t.Fatalf("unexpected aligned label %q", got[1].Label)
	}
}

func TestFreeEntriesDefaultLabelToCommand(t *testing.T) {
	b := NewBuilder(&fakeSource{}, nil)
	got, err := b.Build(context.Background(), Args{Free: []FreeEntry{
		{Command: "htop"},
		{Label: "notes", Command: "vim ~/notes.md"},
		{Command: "   "},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected blank commands dropped, got %d entries", len(got))
	}
	if got[0].Label != "htop" {
		t.Fatalf("expected label defaulted to command, got %q", got[0].Label)
	}
	if got[1].Action != action.SpawnCommand("vim ~/notes.md") {
		t.Fatalf("unexpected action %v", got[1].Action)
	}
}

func TestFormatHookRewritesLabels(t *testing.T) {
	hook := func(ctx context.Context, label string, a action.Action, kind Kind) (string, error) {
		return strings.ToUpper(label), nil
	}
	b := NewBuilder(fullSource(), hook)
	got, err := b.Build(context.Background(), Args{Flags: IncludeTabs})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Label != "EDITOR. 2 PANES" {
		t.Fatalf("expected hook applied, got %q", got[0].Label)
	}
}

func TestFormatHookFailureKeepsOriginalLabel(t *testing.T) {
	hook := func(ctx context.Context, label string, a action.Action, kind Kind) (string, error) {
		return "", errors.New("formatter crashed")
	}
	b := NewBuilder(fullSource(), hook)
	got, err := b.Build(context.Background(), Args{Flags: IncludeTabs})
	if err != nil {
		t.Fatalf("expected hook failure to be non-fatal, got %v", err)
	}
	if got[0].Label != "editor. 2 panes" {
		t.Fatalf("expected original label kept, got %q", got[0].Label)
	}
}

func TestBuildDegradesPerSection(t *testing.T) {
	src := fullSource()
	src.bindingsErr = errors.New("list-keys unavailable")
	b := NewBuilder(src, nil)
	got, err := b.Build(context.Background(), Args{Flags: allFlags()})
	if err == nil {
		t.Fatal("expected joined error for failed section")
	}
	if !strings.Contains(err.Error(), "shortcuts") {
		t.Fatalf("expected error naming the failed section, got %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected surviving sections in the partial catalog")
	}
	for _, e := range got {
		if _, isBinding := e.Kind.(KeyBindingKind); isBinding {
			t.Fatalf("failed section leaked entries: %q", e.Label)
		}
	}
}

func TestDisabledFlagsProduceNoEntries(t *testing.T) {
	b := NewBuilder(fullSource(), nil)
	got, err := b.Build(context.Background(), Args{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty catalog with no flags set, got %d entries", len(got))
	}
}
