// internal/game/types.go
//
// Core type definitions for the Codewords game engine.
// Defines:
//   - Team: the two competing teams (plus "none" while there is no winner).
//   - CardType: hidden identity of a board card.
//   - Card: a single word tile on the board.
//   - Snapshot: an immutable copy of session state handed to renderers.

package game

// Board dimensions. One team starts with an extra card, which is why that
// team goes first.
const (
	TotalCards    = 25
	RedCards      = 9
	BlueCards     = 8
	AssassinCards = 1
	NeutralCards  = TotalCards - RedCards - BlueCards - AssassinCards
)

// Team identifies one of the two competing teams.
type Team string

const (
	TeamNone Team = ""
	TeamRed  Team = "red"
	TeamBlue Team = "blue"
)

// Opponent returns the other team.
func (t Team) Opponent() Team {
	switch t {
	case TeamRed:
		return TeamBlue
	case TeamBlue:
		return TeamRed
	}
	return TeamNone
}

// CardType is the hidden identity of a card.
// Possible values:
//   - "red"/"blue": belongs to that team; revealing it lowers that team's count.
//   - "neutral":    belongs to neither team; revealing it ends the turn.
//   - "assassin":   revealing it immediately loses the game for the acting team.
type CardType string

const (
	CardRed      CardType = "red"
	CardBlue     CardType = "blue"
	CardNeutral  CardType = "neutral"
	CardAssassin CardType = "assassin"
)

// Card is a single tile on the board. ID is the stable positional index.
// Revealed flips false→true exactly once and is never reversed.
type Card struct {
	ID       int      `json:"id"`
	Word     string   `json:"word"`
	Type     CardType `json:"type,omitempty"`
	Revealed bool     `json:"revealed"`
}

// Snapshot is an immutable copy of session state. The session hands out a
// fresh Snapshot after every transition; callers never see internal state.
type Snapshot struct {
	Seed        string `json:"seed"`
	Cards       []Card `json:"cards"`
	CurrentTeam Team   `json:"currentTeam"`
	Winner      Team   `json:"winner,omitempty"`
	ScoreRed    int    `json:"scoreRed"`
	ScoreBlue   int    `json:"scoreBlue"`
	Over        bool   `json:"over"`
	// Log holds human-readable entries, newest first.
	Log []string `json:"log"`
	// TurnSeconds is the per-turn countdown setting; 0 means unlimited.
	TurnSeconds int `json:"turnSeconds"`
	// Remaining is the number of seconds left in the current turn
	// (0 when no timer is configured).
	Remaining int `json:"remaining"`
}
