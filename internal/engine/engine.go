// Package engine drives a game turn: it talks to the narrative generator,
// reconciles the structured updates embedded in its reply against the
// authoritative game state, and persists the result.
package engine

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"github.com/ihno999/avanced-ai-semester-project/internal/items"
	"github.com/ihno999/avanced-ai-semester-project/internal/models"
	"github.com/ihno999/avanced-ai-semester-project/internal/spells"
	"google.golang.org/api/option"
)

//go:embed prompts/narrate.txt
var narratePrompt string

var narrateTmpl = template.Must(template.New("narrate").Parse(narratePrompt))

// Generator produces the next piece of narrative for a game state and a
// player line. Implementations must be safe to call once per turn; the
// caller owns the state.
type Generator interface {
	Narrate(ctx context.Context, state *models.GameState, playerInput string) (string, error)
}

// Engine is the Gemini-backed Generator.
type Engine struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewEngine creates a Gemini client for the given model.
func NewEngine(ctx context.Context, apiKey, modelName string) (*Engine, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Engine{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

func (e *Engine) Close() {
	e.client.Close()
}

// Narrate builds the full prompt (rules contract, serialized state, recent
// memory window, player line) and returns the generator's raw reply, META
// block included.
func (e *Engine) Narrate(ctx context.Context, state *models.GameState, playerInput string) (string, error) {
	prompt, err := buildPrompt(state, playerInput)
	if err != nil {
		return "", err
	}

	resp, err := e.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}
	return stripFences(string(text)), nil
}

// stripFences removes a markdown code fence the model sometimes wraps its
// whole reply in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func buildPrompt(state *models.GameState, playerInput string) (string, error) {
	spellTable := ""
	for _, spell := range spells.Table {
		spellTable += fmt.Sprintf("- %s: mana cost %d, required intelligence %d. %s\n",
			spell.Name, spell.ManaCost, spell.RequiredIntelligence, spell.Effect)
	}

	equipped := make([]string, 0, len(models.Slots))
	for _, slot := range models.Slots {
		item := state.Equipment[slot]
		if item == "" {
			item = "empty"
		}
		equipped = append(equipped, fmt.Sprintf("%s: %s", slot, item))
	}

	s := state.Stats
	statLine := fmt.Sprintf(
		"health %d/%d, stamina %d/%d, mana %d/%d, strength %d, defense %d, intelligence %d, endurance %d, magic %d, level %d, xp %d/%d, gold %d",
		s.Health, s.MaxHealth, s.Stamina, s.MaxStamina, s.Mana, s.MaxMana,
		s.Strength, s.Defense, s.Intelligence, s.Endurance, s.Magic,
		s.Level, s.XP, s.MaxXP, s.Gold)

	data := struct {
		AllowedItems  string
		SpellTable    string
		Difficulty    string
		Stats         string
		Inventory     string
		Equipment     string
		RecentContext string
		PlayerName    string
		PlayerInput   string
	}{
		AllowedItems:  strings.Join(items.Names(), ", "),
		SpellTable:    spellTable,
		Difficulty:    state.Difficulty.String(),
		Stats:         statLine,
		Inventory:     strings.Join(state.Inventory, ", "),
		Equipment:     strings.Join(equipped, ", "),
		RecentContext: state.RecentContext(),
		PlayerName:    state.PlayerName,
		PlayerInput:   playerInput,
	}

	var buf bytes.Buffer
	if err := narrateTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
