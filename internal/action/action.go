package action

import "fmt"

// Op identifies the operation an action performs when dispatched.
type Op string

const (
	// OpActivateTab activates the tab at Index in the invoking window.
	OpActivateTab Op = "activate-tab"
	// OpActivateTabRelative moves the active tab by Index positions.
	OpActivateTabRelative Op = "activate-tab-relative"
	// OpAttachDomain attaches the domain named Target.
	OpAttachDomain Op = "attach-domain"
	// OpSpawnTabInDomain spawns a new tab in the domain named Target.
	OpSpawnTabInDomain Op = "spawn-tab-in-domain"
	// OpSwitchWorkspace switches to the workspace named Target; an empty
	// Target creates a fresh workspace.
	OpSwitchWorkspace Op = "switch-workspace"
	// OpSpawnCommand spawns Target as a command in a new tab.
	OpSpawnCommand Op = "spawn-command"
	// OpRunCommand executes Target as a raw multiplexer command.
	OpRunCommand Op = "run-command"
)

// Action is the dispatchable descriptor carried by every launcher entry.
// All fields are comparable so that == gives structural equality; the
// catalog builder relies on that for shortcut de-duplication and the
// dispatch sink receives the value unchanged.
type Action struct {
	Op     Op
	Target string
	Index  int
}

// ActivateTab returns an action activating the tab at idx.
func ActivateTab(idx int) Action {
	return Action{Op: OpActivateTab, Index: idx}
}

// AttachDomain returns an action attaching the named domain.
func AttachDomain(name string) Action {
	return Action{Op: OpAttachDomain, Target: name}
}

// SpawnTabInDomain returns an action spawning a tab in the named domain.
func SpawnTabInDomain(name string) Action {
	return Action{Op: OpSpawnTabInDomain, Target: name}
}

// SwitchWorkspace returns an action switching to the named workspace.
func SwitchWorkspace(name string) Action {
	return Action{Op: OpSwitchWorkspace, Target: name}
}

// SpawnCommand returns an action spawning the given command line.
func SpawnCommand(command string) Action {
	return Action{Op: OpSpawnCommand, Target: command}
}

// RunCommand returns an action executing a raw multiplexer command.
func RunCommand(command string) Action {
	return Action{Op: OpRunCommand, Target: command}
}

// IsZero reports whether a is the zero action.
func (a Action) IsZero() bool {
	return a == Action{}
}

// ActivatesTab reports whether dispatching a would activate a tab, either
// absolutely or relatively. Shortcut and command entries with such actions
// are redundant with the tab entries themselves and are excluded from the
// catalog.
func (a Action) ActivatesTab() bool {
	return a.Op == OpActivateTab || a.Op == OpActivateTabRelative
}

func (a Action) String() string {
	switch a.Op {
	case OpActivateTab, OpActivateTabRelative:
		return fmt.Sprintf("%s(%d)", a.Op, a.Index)
	case "":
		return "(none)"
	default:
		return fmt.Sprintf("%s(%s)", a.Op, a.Target)
	}
}
