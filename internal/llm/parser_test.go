package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneypenny/penny/internal/common"
)

func TestExtractCommandBareJSON(t *testing.T) {
	cmd, err := ExtractCommand(`{"action": "add_expense", "amount": 500, "description": "groceries", "category": "Food & Dining"}`)
	require.NoError(t, err)
	assert.Equal(t, "add_expense", cmd.Action)
	assert.Equal(t, 500.0, cmd.Amount)
	assert.Equal(t, "groceries", cmd.Description)
	assert.Equal(t, "Food & Dining", cmd.Category)
}

func TestExtractCommandFencedJSON(t *testing.T) {
	reply := "```json\n{\"action\": \"add_income\", \"amount\": 20000, \"description\": \"salary\", \"category\": \"Salary\"}\n```"

	cmd, err := ExtractCommand(reply)
	require.NoError(t, err)
	assert.Equal(t, "add_income", cmd.Action)
	assert.Equal(t, 20000.0, cmd.Amount)
}

func TestExtractCommandSurroundingProse(t *testing.T) {
	reply := `Got it, logging that for you!
{"action": "add_expense", "amount": 120, "description": "coffee", "category": ""}
Anything else?`

	cmd, err := ExtractCommand(reply)
	require.NoError(t, err)
	assert.Equal(t, "add_expense", cmd.Action)
	assert.Equal(t, 120.0, cmd.Amount)
	assert.Empty(t, cmd.Category)
}

func TestExtractCommandNoJSON(t *testing.T) {
	_, err := ExtractCommand("Sure, your balance looks healthy this month.")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNoCommandFound))
}

func TestExtractCommandMissingAction(t *testing.T) {
	_, err := ExtractCommand(`{"amount": 12}`)
	assert.Error(t, err)
}

func TestExtractCommandMalformedJSON(t *testing.T) {
	_, err := ExtractCommand(`{"action": "add_expense", "amount": }`)
	assert.Error(t, err)
}

func TestNewClientUnknownProvider(t *testing.T) {
	_, err := NewClient(Config{Provider: "carrier-pigeon", APIKey: "k"})
	assert.Error(t, err)
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{Provider: "gemini"})
	assert.Error(t, err)

	_, err = NewClient(Config{Provider: "anthropic"})
	assert.Error(t, err)
}

func TestCleanMarkdownWrapper(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanMarkdownWrapper("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanMarkdownWrapper("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanMarkdownWrapper(`{"a":1}`))
}
