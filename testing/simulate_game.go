// Command simulate_game lets a second LLM play the dungeon for a fixed
// number of turns against the real engine, printing state as it goes.
// Useful for eyeballing prompt and reconciliation behavior end to end.
package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/ihno999/avanced-ai-semester-project/internal/config"
	"github.com/ihno999/avanced-ai-semester-project/internal/engine"
	"github.com/ihno999/avanced-ai-semester-project/internal/models"
	"google.golang.org/api/option"
)

const maxTurns = 10

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// The dungeon master.
	eng, err := engine.NewEngine(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	defer eng.Close()

	// The player LLM.
	playerClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		log.Fatalf("Failed to create player client: %v", err)
	}
	defer playerClient.Close()
	playerModel := playerClient.GenerativeModel(cfg.GeminiModel)

	state := models.NewGame("Simulant", models.Medium)
	savePath := filepath.Join(".", "simulate_save.json")
	session := engine.NewSession(state, eng, savePath)

	fmt.Printf("--- %s ---\n\n%s\n\n", state.Difficulty, state.Context)

	for turn := 1; turn <= maxTurns; turn++ {
		for state.Stats.UnassignedStatPoints > 0 {
			// A simple simulated player always pumps strength.
			if err := state.AllocatePoint("strength"); err != nil {
				log.Fatalf("Allocation failed: %v", err)
			}
			fmt.Println("(point allocated to strength)")
		}

		action, err := nextAction(ctx, playerModel, state)
		if err != nil {
			log.Fatalf("Player LLM failed: %v", err)
		}
		fmt.Printf("--- Turn %d ---\n> %s\n", turn, action)

		res := session.PlayTurn(ctx, action)
		if res.SpellMessage != "" {
			fmt.Println(res.SpellMessage)
		}
		fmt.Println(res.Story)
		if res.SaveErr != nil {
			fmt.Printf("(save failed: %v)\n", res.SaveErr)
		}

		view := state.Render()
		fmt.Printf("\n[HP %s | Stamina %s | Mana %s | Level %d XP %s | Gold %d]\n\n",
			view.HealthStr, view.StaminaStr, view.ManaStr, view.Level, view.XPStr, view.Gold)
	}
}

func nextAction(ctx context.Context, model *genai.GenerativeModel, state *models.GameState) (string, error) {
	prompt := fmt.Sprintf(
		"You are playing a text adventure. Recent events:\n%s\n\nYour stats: %+v\nInventory: %v\n\nReply with ONE short action sentence (e.g. 'I attack the goblin with my sword').",
		state.RecentContext(), state.Stats, state.Inventory)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned")
	}
	return strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])), nil
}
