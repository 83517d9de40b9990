package mux

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/mux-launcher/internal/action"
)

// ListKeyBindings parses the resolved key-binding table from list-keys.
func (c *Client) ListKeyBindings(ctx context.Context) ([]KeyBinding, error) {
	output, err := c.run(ctx, "list-keys")
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	lines := splitLines(output)
	bindings := make([]KeyBinding, 0, len(lines))
	for _, line := range lines {
		binding, ok := parseKeyBinding(line)
		if !ok {
			continue
		}
		bindings = append(bindings, binding)
	}
	return bindings, nil
}

// parseKeyBinding decodes one "bind-key [-flags] [-T table] key command..."
// line into a binding with a classified action.
func parseKeyBinding(line string) (KeyBinding, bool) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return KeyBinding{}, false
	}
	if tokens[0] != "bind-key" && tokens[0] != "bind" {
		return KeyBinding{}, false
	}
	table := "prefix"
	idx := 1
	for idx < len(tokens) {
		tok := tokens[idx]
		if !strings.HasPrefix(tok, "-") {
			break
		}
		switch tok {
		case "-n":
			table = "root"
			idx++
		case "-r", "-N":
			idx++
		case "-T", "-t", "-R":
			if idx+1 < len(tokens) && tok == "-T" {
				table = tokens[idx+1]
			}
			idx += 2
		default:
			idx++
		}
	}
	if idx >= len(tokens) {
		return KeyBinding{}, false
	}
	key := tokens[idx]
	idx++
	if idx >= len(tokens) {
		return KeyBinding{}, false
	}
	return KeyBinding{
		Key:    key,
		Mods:   table,
		Action: classifyCommand(tokens[idx:]),
	}, true
}

// classifyCommand maps a bound tmux command to an action descriptor.
// Window-activation commands get dedicated ops so the catalog builder can
// exclude them as redundant with tab entries.
func classifyCommand(tokens []string) action.Action {
	if len(tokens) == 0 {
		return action.Action{}
	}
	switch tokens[0] {
	case "select-window":
		if idx, ok := selectWindowIndex(tokens[1:]); ok {
			return action.ActivateTab(idx)
		}
	case "next-window":
		return action.Action{Op: action.OpActivateTabRelative, Index: 1}
	case "previous-window", "last-window":
		return action.Action{Op: action.OpActivateTabRelative, Index: -1}
	}
	return action.RunCommand(strings.Join(tokens, " "))
}

func selectWindowIndex(tokens []string) (int, bool) {
	for i := 0; i < len(tokens)-1; i++ {
		if tokens[i] != "-t" {
			continue
		}
		target := strings.TrimPrefix(tokens[i+1], ":")
		idx, err := strconv.Atoi(target)
		if err != nil {
			return 0, false
		}
		return idx, true
	}
	return 0, false
}
