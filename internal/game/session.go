// internal/game/session.go
//
// The game session state machine.
// Owns current turn, scores, the reveal resolution rules, win/loss detection,
// the turn timer, and the human-readable event log (newest entry first).
//
// Transition rules:
//   - Reveal of the assassin loses the game for the acting team immediately.
//   - Reveal of a neutral card ends the turn with no score change.
//   - Reveal of the acting team's own card lowers their count and keeps the
//     turn; reaching zero wins the game.
//   - Reveal of the opposing team's card lowers *their* count and hands them
//     the turn; reaching zero wins the game for them on the spot.
//
// Anything invalid — reveal on a finished game, an already-revealed card, a
// spymaster trying to reveal — is a benign no-op, never an error. Scores only
// ever decrease and never go negative; once the game is over no transition
// changes score, winner, or turn.
//
// All transitions are serialized behind one mutex so multiple HTTP clients
// (and the timer goroutine) can drive the same session safely.

package game

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Session is the authoritative state for one game. Construct with NewSession,
// then call Start; read state via Snapshot or the value returned by each
// transition.
type Session struct {
	mu sync.Mutex

	seed        string
	cards       []Card
	current     Team
	winner      Team
	scoreRed    int
	scoreBlue   int
	over        bool
	started     bool
	log         []string
	turnSeconds int

	tick     time.Duration
	timer    *TurnTimer
	notifier Notifier
}

// NewSession wraps a generated board. turnSeconds of 0 disables the countdown.
// A nil notifier is replaced with NopNotifier.
func NewSession(seed string, cards []Card, turnSeconds int, notifier Notifier) *Session {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Session{
		seed:        seed,
		cards:       cards,
		turnSeconds: turnSeconds,
		tick:        time.Second,
		notifier:    notifier,
	}
}

// Start moves the session from setup into play: scores become the per-team
// card counts, the team holding the extra card goes first, and the countdown
// (if configured) is armed. Calling Start twice is a no-op.
func (s *Session) Start() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return s.snapshotLocked()
	}
	s.started = true
	s.scoreRed, s.scoreBlue = countTeamCards(s.cards)
	s.current = TeamRed
	if s.scoreBlue > s.scoreRed {
		s.current = TeamBlue
	}
	s.log = []string{fmt.Sprintf("New game started. Team %s goes first.", s.current)}
	s.timer = NewTurnTimer(s.turnSeconds, s.tick, func() { s.EndTurn(true) })
	return s.snapshotLocked()
}

// Reveal resolves an operative turning over the card with the given id.
// Invalid reveals (game over, unknown or already-revealed card, a role that
// may not reveal) leave the session untouched.
func (s *Session) Reveal(id int, role Role) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.over {
		return s.snapshotLocked()
	}
	if !CapabilitiesFor(role, s.current).CanReveal {
		return s.snapshotLocked()
	}
	if id < 0 || id >= len(s.cards) || s.cards[id].Revealed {
		return s.snapshotLocked()
	}

	s.cards[id].Revealed = true
	s.notifier.Notify(EventFlip)
	word := s.cards[id].Word

	switch s.cards[id].Type {
	case CardAssassin:
		s.winner = s.current.Opponent()
		s.over = true
		s.logf("Team %s revealed the assassin! Game over.", s.current)
		s.stopTimerLocked()
		s.notifier.Notify(EventLose)

	case CardNeutral:
		s.logf("Team %s picked a neutral word (%s). Turn over.", s.current, word)
		s.switchTurnLocked(s.current.Opponent())
		s.notifier.Notify(EventWrong)

	case CardRed, CardBlue:
		owner := Team(s.cards[id].Type)
		score := s.decrementLocked(owner)
		if owner == s.current {
			s.logf("Team %s found an agent! (%s)", owner, word)
			if score == 0 {
				s.winLocked(owner)
			} else {
				s.notifier.Notify(EventCorrect)
			}
		} else {
			s.logf("Team %s helped team %s by revealing (%s)! Turn over.", s.current, owner, word)
			s.switchTurnLocked(owner)
			s.notifier.Notify(EventWrong)
			if score == 0 {
				s.winLocked(owner)
			}
		}
	}
	return s.snapshotLocked()
}

// EndTurn hands play to the other team, either on the current team's say-so
// or because the countdown ran out. No-op once the game is over.
func (s *Session) EndTurn(timeout bool) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.over {
		return s.snapshotLocked()
	}
	next := s.current.Opponent()
	if timeout {
		s.logf("Time's up! Turn passes to team %s.", next)
		s.notifier.Notify(EventWrong)
	} else {
		s.logf("Team %s ended their turn.", s.current)
	}
	s.switchTurnLocked(next)
	return s.snapshotLocked()
}

// SubmitClue records a clue from the current team's spymaster. The clue text
// is taken on the honor system — the session does not check it against the
// board. Ignored for any other role, an empty clue, or a finished game.
func (s *Session) SubmitClue(name, clue string, count int, role Role) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	clue = strings.TrimSpace(clue)
	if !s.started || s.over || clue == "" {
		return s.snapshotLocked()
	}
	if !CapabilitiesFor(role, s.current).CanGiveClue {
		return s.snapshotLocked()
	}
	s.logf("Spymaster %s (%s) gave a clue: %s (%d)", name, role.Team(), clue, count)
	return s.snapshotLocked()
}

// LogRoleChange records a participant switching seats. Roles live outside the
// session, so this only touches the log.
func (s *Session) LogRoleChange(name string, role Role) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return s.snapshotLocked()
	}
	s.logf("%s switched seat to: %s", name, role)
	return s.snapshotLocked()
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close tears the session down, cancelling any pending countdown. Idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
}

// --- internals (call with s.mu held) ---------------------------------------

func (s *Session) logf(format string, args ...any) {
	entry := fmt.Sprintf(format, args...)
	s.log = append([]string{entry}, s.log...)
}

// switchTurnLocked hands the turn to the given team and re-arms the countdown.
func (s *Session) switchTurnLocked(to Team) {
	s.current = to
	if s.timer != nil {
		s.timer.Reset()
	}
}

// decrementLocked lowers a team's remaining-card count, never below zero, and
// returns the new value.
func (s *Session) decrementLocked(t Team) int {
	if t == TeamRed {
		if s.scoreRed > 0 {
			s.scoreRed--
		}
		return s.scoreRed
	}
	if s.scoreBlue > 0 {
		s.scoreBlue--
	}
	return s.scoreBlue
}

// winLocked finishes the game in favor of the given team. The turn is left
// wherever the reveal resolution put it.
func (s *Session) winLocked(t Team) {
	s.winner = t
	s.over = true
	s.logf("Team %s wins!", t)
	s.stopTimerLocked()
	s.notifier.Notify(EventWin)
}

func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
	}
}

func (s *Session) snapshotLocked() Snapshot {
	cards := make([]Card, len(s.cards))
	copy(cards, s.cards)
	log := make([]string, len(s.log))
	copy(log, s.log)
	remaining := 0
	if s.timer != nil {
		remaining = s.timer.Remaining()
	}
	return Snapshot{
		Seed:        s.seed,
		Cards:       cards,
		CurrentTeam: s.current,
		Winner:      s.winner,
		ScoreRed:    s.scoreRed,
		ScoreBlue:   s.scoreBlue,
		Over:        s.over,
		Log:         log,
		TurnSeconds: s.turnSeconds,
		Remaining:   remaining,
	}
}

// countTeamCards tallies the red and blue cards actually present on the board.
func countTeamCards(cards []Card) (red, blue int) {
	for _, c := range cards {
		switch c.Type {
		case CardRed:
			red++
		case CardBlue:
			blue++
		}
	}
	return red, blue
}
