package dispatch

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	tmuxcc "github.com/atomicstack/gotmuxcc/gotmuxcc"

	"github.com/atomicstack/mux-launcher/internal/action"
	"github.com/atomicstack/mux-launcher/internal/logging"
	"github.com/atomicstack/mux-launcher/internal/logging/events"
)

// Notifier receives the single resolved action of a launcher session.
// Implementations are fire-and-forget: Notify is invoked at most once and
// the session terminates immediately afterwards.
type Notifier interface {
	Notify(paneID string, a action.Action)
}

// Tmux dispatches actions against a tmux server.
type Tmux struct {
	socketPath string
}

// NewTmux returns a dispatcher bound to the given socket.
func NewTmux(socketPath string) *Tmux {
	return &Tmux{socketPath: socketPath}
}

// Notify resolves the action into tmux commands. Failures are logged, not
// surfaced: the launcher has already committed to exiting.
func (t *Tmux) Notify(paneID string, a action.Action) {
	events.Dispatch.Notify(paneID, a.String())
	if err := t.perform(paneID, a); err != nil {
		events.Dispatch.Error(err)
		logging.Error(fmt.Errorf("dispatch %s: %w", a, err))
	}
}

func (t *Tmux) perform(paneID string, a action.Action) error {
	switch a.Op {
	case action.OpActivateTab:
		client, err := t.client()
		if err != nil {
			return err
		}
		return client.SelectWindow(fmt.Sprintf(":%d", a.Index))
	case action.OpActivateTabRelative:
		if a.Index >= 0 {
			return t.run("next-window")
		}
		return t.run("previous-window")
	case action.OpAttachDomain:
		client, err := t.client()
		if err != nil {
			return err
		}
		return client.SwitchClient(&tmuxcc.SwitchClientOptions{TargetSession: a.Target})
	case action.OpSpawnTabInDomain:
		return t.run("new-window", "-t", a.Target+":")
	case action.OpSwitchWorkspace:
		if a.Target != "" {
			return t.run("switch-client", "-t", a.Target)
		}
		name := fmt.Sprintf("workspace-%d", time.Now().Unix())
		if err := t.run("new-session", "-d", "-s", name); err != nil {
			return err
		}
		client, err := t.client()
		if err != nil {
			return err
		}
		return client.SwitchClient(&tmuxcc.SwitchClientOptions{TargetSession: name})
	case action.OpSpawnCommand:
		return t.run("new-window", a.Target)
	case action.OpRunCommand:
		fields := strings.Fields(a.Target)
		if len(fields) == 0 {
			return fmt.Errorf("empty command")
		}
		args := fields
		if paneID != "" && commandTakesPane(fields[0]) {
			args = append(args, "-t", paneID)
		}
		return t.run(args...)
	default:
		return fmt.Errorf("unknown action %q", a.Op)
	}
}

func (t *Tmux) client() (*tmuxcc.Tmux, error) {
	if t.socketPath != "" {
		return tmuxcc.NewTmux(t.socketPath)
	}
	return tmuxcc.DefaultTmux()
}

func (t *Tmux) run(extra ...string) error {
	args := make([]string, 0, len(extra)+2)
	if strings.TrimSpace(t.socketPath) != "" {
		args = append(args, "-S", t.socketPath)
	}
	args = append(args, extra...)
	return exec.Command("tmux", args...).Run()
}

// commandTakesPane lists the bound commands that accept a pane target, so
// the originating pane can be carried along with the dispatch.
func commandTakesPane(name string) bool {
	switch name {
	case "send-keys", "copy-mode", "kill-pane", "resize-pane", "split-window":
		return true
	}
	return false
}
