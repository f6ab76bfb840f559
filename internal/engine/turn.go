package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/ihno999/avanced-ai-semester-project/internal/models"
	"github.com/ihno999/avanced-ai-semester-project/internal/spells"
)

// staminaActions cost a flat amount of stamina, at most once per turn.
var staminaActions = []string{"attack", "run", "defend", "dodge"}

const staminaCost = 10

// Session owns a game's state and sequences its turns. One turn must fully
// complete before the next begins; callers serialize PlayTurn.
type Session struct {
	State    *models.GameState
	Gen      Generator
	SavePath string
}

// NewSession wraps a game state with its generator and save location.
func NewSession(state *models.GameState, gen Generator, savePath string) *Session {
	return &Session{State: state, Gen: gen, SavePath: savePath}
}

// TurnResult is what one completed (or rejected) turn produced for
// rendering.
type TurnResult struct {
	// AwaitingAllocation means the turn was rejected because unassigned
	// stat points must be spent first. Nothing else ran.
	AwaitingAllocation bool
	// Empty means the input was blank; the turn was a no-op.
	Empty bool

	Story        string // narrative to append to the log
	SpellMessage string // success or failure line of a casting attempt
	StaminaSpent bool   // the flat action cost was deducted
	LeveledUp    bool   // the player gained at least one level
	SaveErr      error  // persistence failed; the in-memory turn still stands
}

// PlayTurn runs one full game turn: allocation gate, stamina cost, spell
// attempt, resource regeneration, generation, reconciliation, persistence.
// Generator failures surface as inline text; the turn still completes with
// no narrative-driven state change.
func (s *Session) PlayTurn(ctx context.Context, playerInput string) TurnResult {
	if s.State.Stats.UnassignedStatPoints > 0 {
		return TurnResult{AwaitingAllocation: true}
	}
	if strings.TrimSpace(playerInput) == "" {
		return TurnResult{Empty: true}
	}

	res := TurnResult{}

	lower := strings.ToLower(playerInput)
	for _, action := range staminaActions {
		if strings.Contains(lower, action) {
			s.State.Stats.Stamina = max(0, s.State.Stats.Stamina-staminaCost)
			res.StaminaSpent = true
			break
		}
	}

	cast, castErr := spells.Attempt(playerInput, &s.State.Stats)
	switch {
	case castErr != nil:
		res.SpellMessage = castErr.Error()
	case cast != nil:
		res.SpellMessage = cast.Message()
	}

	s.State.Stats.Regenerate()

	s.State.GameMemory = append(s.State.GameMemory, fmt.Sprintf("%s: %s", s.State.PlayerName, playerInput))

	raw, err := s.Gen.Narrate(ctx, s.State, playerInput)
	if err != nil {
		raw = fmt.Sprintf("Error generating story: %v", err)
	}

	meta := ApplyMetaUpdates(s.State, raw)
	res.Story = meta.Story
	res.LeveledUp = meta.LeveledUp

	s.State.Context += "\n\n" + meta.Story
	s.State.GameMemory = append(s.State.GameMemory, meta.Story)

	res.SaveErr = s.State.Save(s.SavePath)
	return res
}
