package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/moneypenny/penny/internal/common"
)

// AssistantCommand is the structured fragment a generative model embeds
// in its reply when the user's message implies a transaction.
type AssistantCommand struct {
	Action      string  `json:"action"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
}

// cleanMarkdownWrapper strips a fenced code block around JSON content.
// Models frequently wrap structured output in ```json fences despite
// being asked not to.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx >= 0 {
			content = content[:idx]
		}
		content = strings.TrimSpace(content)
	}

	return content
}

// ExtractCommand finds and decodes the first JSON object in a model
// reply. It tolerates surrounding prose and markdown fences; when no
// object is present it returns common.ErrNoCommandFound.
func ExtractCommand(reply string) (AssistantCommand, error) {
	content := cleanMarkdownWrapper(reply)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return AssistantCommand{}, fmt.Errorf("no JSON object in reply: %w", common.ErrNoCommandFound)
	}

	var cmd AssistantCommand
	if err := json.Unmarshal([]byte(content[start:end+1]), &cmd); err != nil {
		return AssistantCommand{}, fmt.Errorf("failed to decode command: %w", err)
	}

	if cmd.Action == "" {
		return AssistantCommand{}, fmt.Errorf("command missing action")
	}

	return cmd, nil
}
