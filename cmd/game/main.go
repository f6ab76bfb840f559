package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ihno999/avanced-ai-semester-project/internal/config"
	"github.com/ihno999/avanced-ai-semester-project/internal/engine"
	"github.com/ihno999/avanced-ai-semester-project/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	eng, err := engine.NewEngine(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		fmt.Printf("Error creating engine: %v\n", err)
		os.Exit(1)
	}
	defer eng.Close()

	if err := tui.Run(eng, cfg.SaveFile); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
