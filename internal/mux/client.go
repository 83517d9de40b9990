package mux

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	gotmux "github.com/GianlucaP106/gotmux/gotmux"
)

// Client is the tmux-backed live-state source. Sessions act as domains
// (attach or spawn a window in them), windows of the invoking session act
// as tabs, and session groups act as workspaces.
type Client struct {
	socketPath string
}

// NewClient returns a source bound to the given tmux socket.
func NewClient(socketPath string) *Client {
	return &Client{socketPath: socketPath}
}

// ResolveSocketPath resolves the tmux socket from the flag value, the
// environment, or the conventional per-user default location.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envSocket := os.Getenv("MUX_LAUNCHER_SOCKET"); envSocket != "" {
		return envSocket, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}

func newTmux(socketPath string) (*gotmux.Tmux, error) {
	if socketPath != "" {
		return gotmux.NewTmux(socketPath)
	}
	return gotmux.DefaultTmux()
}

// ListDomains reports every session as a spawnable domain. Attached
// sessions spawn new windows; detached ones can be attached.
func (c *Client) ListDomains(ctx context.Context) ([]Domain, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	client, err := newTmux(c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect tmux: %w", err)
	}
	sessions, err := client.ListSessions()
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].Name < sessions[j].Name })
	out := make([]Domain, 0, len(sessions))
	for i, s := range sessions {
		state := Detached
		if s.Attached > 0 {
			state = Attached
		}
		out = append(out, Domain{
			ID:        i,
			Name:      s.Name,
			Label:     fmt.Sprintf("%d windows", s.Windows),
			State:     state,
			Spawnable: true,
		})
	}
	return out, nil
}

// ListTabs reports the windows of the invoking session in window order.
// windowID selects the session; empty means the current one.
func (c *Client) ListTabs(ctx context.Context, windowID string) ([]Tab, error) {
	format := "#{window_id}\t#{window_index}\t#{window_name}\t#{window_panes}\t#{window_active}"
	args := []string{"list-windows", "-F", format}
	if strings.TrimSpace(windowID) != "" {
		args = append(args, "-t", windowID)
	}
	output, err := c.run(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("list windows: %w", err)
	}
	lines := splitLines(output)
	tabs := make([]Tab, 0, len(lines))
	for _, line := range lines {
		parts := strings.SplitN(line, "\t", 5)
		if len(parts) < 5 {
			continue
		}
		id, _ := strconv.Atoi(strings.TrimPrefix(parts[0], "@"))
		index, _ := strconv.Atoi(parts[1])
		panes, _ := strconv.Atoi(parts[3])
		tabs = append(tabs, Tab{
			ID:        id,
			Index:     index,
			Title:     parts[2],
			PaneCount: panes,
			Active:    parts[4] == "1",
		})
	}
	return tabs, nil
}

// ListWorkspaces reports the distinct session groups.
func (c *Client) ListWorkspaces(ctx context.Context) ([]string, error) {
	output, err := c.run(ctx, "list-sessions", "-F", "#{session_group}")
	if err != nil {
		return nil, fmt.Errorf("list session groups: %w", err)
	}
	seen := make(map[string]struct{})
	groups := make([]string, 0, 4)
	for _, line := range splitLines(output) {
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		groups = append(groups, line)
	}
	sort.Strings(groups)
	return groups, nil
}

// ActiveWorkspace reports the session group of the invoking client.
func (c *Client) ActiveWorkspace(ctx context.Context) (string, error) {
	output, err := c.run(ctx, "display-message", "-p", "#{session_group}")
	if err != nil {
		return "", fmt.Errorf("resolve session group: %w", err)
	}
	return strings.TrimSpace(output), nil
}

func (c *Client) run(ctx context.Context, extra ...string) (string, error) {
	args := baseArgs(c.socketPath)
	args = append(args, extra...)
	output, err := exec.CommandContext(ctx, "tmux", args...).Output()
	if err != nil {
		return "", err
	}
	return string(output), nil
}

func baseArgs(socketPath string) []string {
	if strings.TrimSpace(socketPath) == "" {
		return []string{}
	}
	return []string{"-S", socketPath}
}

func splitLines(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	raw := strings.Split(trimmed, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
