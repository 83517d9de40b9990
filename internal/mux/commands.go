package mux

import (
	"context"
	"fmt"
	"strings"

	"github.com/atomicstack/mux-launcher/internal/action"
)

// ListCommands parses the expanded command palette from list-commands.
// Each line reads "name [alias] usage...": the name becomes the brief and
// the usage text the doc.
func (c *Client) ListCommands(ctx context.Context) ([]Command, error) {
	output, err := c.run(ctx, "list-commands")
	if err != nil {
		return nil, fmt.Errorf("list commands: %w", err)
	}
	lines := splitLines(output)
	commands := make([]Command, 0, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		name := fields[0]
		doc := strings.TrimSpace(strings.TrimPrefix(line, name))
		if alias := strings.TrimSpace(doc); strings.HasPrefix(alias, "(") {
			if end := strings.Index(alias, ")"); end >= 0 {
				doc = strings.TrimSpace(alias[end+1:])
			}
		}
		commands = append(commands, Command{
			Brief:  name,
			Doc:    doc,
			Action: action.RunCommand(name),
		})
	}
	return commands, nil
}
