package game

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedBoard builds a board with a known layout:
// ids 0-8 red, 9-16 blue, 17 assassin, 18-24 neutral.
func fixedBoard() []Card {
	cards := make([]Card, 0, TotalCards)
	add := func(ct CardType, n int) {
		for i := 0; i < n; i++ {
			id := len(cards)
			cards = append(cards, Card{ID: id, Word: fmt.Sprintf("%s%d", ct, i), Type: ct})
		}
	}
	add(CardRed, RedCards)
	add(CardBlue, BlueCards)
	add(CardAssassin, AssassinCards)
	add(CardNeutral, NeutralCards)
	return cards
}

const (
	firstBlue = RedCards               // 9
	assassin  = RedCards + BlueCards   // 17
	firstNeut = assassin + 1           // 18
)

// recorder collects notification events.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Notify(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recorder) all() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func newTestSession(t *testing.T) (*Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	s := NewSession("test-room", fixedBoard(), 0, rec)
	s.Start()
	return s, rec
}

func TestStartInitializesSession(t *testing.T) {
	s, _ := newTestSession(t)
	snap := s.Snapshot()

	assert.Equal(t, RedCards, snap.ScoreRed)
	assert.Equal(t, BlueCards, snap.ScoreBlue)
	assert.Equal(t, TeamRed, snap.CurrentTeam)
	assert.False(t, snap.Over)
	assert.Equal(t, TeamNone, snap.Winner)
	require.Len(t, snap.Log, 1)
	assert.Contains(t, snap.Log[0], "Team red goes first")
}

func TestStartTwiceIsNoop(t *testing.T) {
	s, _ := newTestSession(t)
	before := s.Snapshot()
	assert.Equal(t, before, s.Start())
}

func TestRevealOwnCardKeepsTurn(t *testing.T) {
	s, rec := newTestSession(t)
	snap := s.Reveal(0, RoleRedOperative)

	assert.Equal(t, RedCards-1, snap.ScoreRed)
	assert.Equal(t, BlueCards, snap.ScoreBlue)
	assert.Equal(t, TeamRed, snap.CurrentTeam)
	assert.True(t, snap.Cards[0].Revealed)
	assert.False(t, snap.Over)
	assert.Equal(t, []Event{EventFlip, EventCorrect}, rec.all())
	assert.Contains(t, snap.Log[0], "found an agent")
}

func TestRevealAllOwnCardsWins(t *testing.T) {
	s, rec := newTestSession(t)
	var snap Snapshot
	for id := 0; id < RedCards; id++ {
		snap = s.Reveal(id, RoleRedOperative)
	}

	assert.Equal(t, 0, snap.ScoreRed)
	assert.True(t, snap.Over)
	assert.Equal(t, TeamRed, snap.Winner)
	assert.Equal(t, TeamRed, snap.CurrentTeam, "winning must not switch the turn")
	assert.Contains(t, snap.Log[0], "Team red wins")

	events := rec.all()
	assert.Equal(t, EventWin, events[len(events)-1])
}

func TestRevealOpponentCardSwitchesTurn(t *testing.T) {
	s, rec := newTestSession(t)
	snap := s.Reveal(firstBlue, RoleRedOperative)

	assert.Equal(t, BlueCards-1, snap.ScoreBlue)
	assert.Equal(t, RedCards, snap.ScoreRed)
	assert.Equal(t, TeamBlue, snap.CurrentTeam)
	assert.False(t, snap.Over)
	assert.Equal(t, []Event{EventFlip, EventWrong}, rec.all())
	assert.Contains(t, snap.Log[0], "helped team blue")
}

func TestRevealLastOpponentCardWinsForThem(t *testing.T) {
	s, _ := newTestSession(t)
	// Blue reveals all but one of their own cards...
	s.EndTurn(false) // hand blue the turn
	for id := firstBlue; id < firstBlue+BlueCards-1; id++ {
		s.Reveal(id, RoleBlueOperative)
	}
	s.EndTurn(false) // back to red
	// ...and red gifts them the last one.
	snap := s.Reveal(firstBlue+BlueCards-1, RoleRedOperative)

	assert.Equal(t, 0, snap.ScoreBlue)
	assert.True(t, snap.Over)
	assert.Equal(t, TeamBlue, snap.Winner)
	assert.Equal(t, TeamBlue, snap.CurrentTeam)
}

func TestRevealNeutralSwitchesTurn(t *testing.T) {
	s, rec := newTestSession(t)
	snap := s.Reveal(firstNeut, RoleRedOperative)

	assert.Equal(t, RedCards, snap.ScoreRed)
	assert.Equal(t, BlueCards, snap.ScoreBlue)
	assert.Equal(t, TeamBlue, snap.CurrentTeam)
	assert.False(t, snap.Over)
	assert.Equal(t, []Event{EventFlip, EventWrong}, rec.all())
	assert.Contains(t, snap.Log[0], "neutral word")
}

func TestRevealAssassinLosesImmediately(t *testing.T) {
	s, rec := newTestSession(t)
	snap := s.Reveal(assassin, RoleRedOperative)

	assert.True(t, snap.Over)
	assert.Equal(t, TeamBlue, snap.Winner)
	assert.Equal(t, TeamRed, snap.CurrentTeam, "game ends without switching the turn")
	assert.Equal(t, RedCards, snap.ScoreRed, "assassin must not touch scores")
	assert.Equal(t, BlueCards, snap.ScoreBlue)
	assert.True(t, snap.Cards[assassin].Revealed)
	assert.Equal(t, []Event{EventFlip, EventLose}, rec.all())
}

func TestRevealIsIdempotent(t *testing.T) {
	s, rec := newTestSession(t)
	first := s.Reveal(0, RoleRedOperative)
	eventsAfterFirst := rec.all()
	second := s.Reveal(0, RoleRedOperative)

	assert.Equal(t, first, second)
	assert.Equal(t, eventsAfterFirst, rec.all(), "a no-op reveal must not notify")
}

func TestSpymasterCannotReveal(t *testing.T) {
	s, rec := newTestSession(t)
	before := s.Snapshot()

	assert.Equal(t, before, s.Reveal(0, RoleRedSpymaster))
	assert.Equal(t, before, s.Reveal(0, RoleBlueSpymaster))
	assert.Empty(t, rec.all())
}

func TestRevealUnknownCardIsNoop(t *testing.T) {
	s, _ := newTestSession(t)
	before := s.Snapshot()
	assert.Equal(t, before, s.Reveal(-1, RoleRedOperative))
	assert.Equal(t, before, s.Reveal(TotalCards, RoleRedOperative))
}

func TestTerminalStability(t *testing.T) {
	s, rec := newTestSession(t)
	s.Reveal(assassin, RoleRedOperative)
	done := s.Snapshot()
	eventsAtEnd := rec.all()

	assert.Equal(t, done, s.Reveal(0, RoleRedOperative))
	assert.Equal(t, done, s.EndTurn(false))
	assert.Equal(t, done, s.EndTurn(true))
	assert.Equal(t, done, s.SubmitClue("dana", "ocean", 2, RoleRedSpymaster))
	assert.Equal(t, eventsAtEnd, rec.all())
}

func TestEndTurnSwitchesTeams(t *testing.T) {
	s, _ := newTestSession(t)
	snap := s.EndTurn(false)
	assert.Equal(t, TeamBlue, snap.CurrentTeam)
	assert.Contains(t, snap.Log[0], "ended their turn")

	snap = s.EndTurn(true)
	assert.Equal(t, TeamRed, snap.CurrentTeam)
	assert.True(t, strings.HasPrefix(snap.Log[0], "Time's up!"), "got %q", snap.Log[0])
}

func TestSubmitClueOnlyForCurrentSpymaster(t *testing.T) {
	s, _ := newTestSession(t)
	before := s.Snapshot()

	// Wrong team's spymaster and both operatives are ignored.
	assert.Equal(t, before, s.SubmitClue("ana", "river", 3, RoleBlueSpymaster))
	assert.Equal(t, before, s.SubmitClue("bo", "river", 3, RoleRedOperative))
	assert.Equal(t, before, s.SubmitClue("cy", "river", 3, RoleBlueOperative))
	assert.Equal(t, before, s.SubmitClue("dana", "   ", 3, RoleRedSpymaster))

	snap := s.SubmitClue("dana", "river", 3, RoleRedSpymaster)
	require.Greater(t, len(snap.Log), len(before.Log))
	assert.Contains(t, snap.Log[0], "dana")
	assert.Contains(t, snap.Log[0], "river")
	assert.Contains(t, snap.Log[0], "(3)")

	// Clue submission never moves the game.
	assert.Equal(t, before.CurrentTeam, snap.CurrentTeam)
	assert.Equal(t, before.ScoreRed, snap.ScoreRed)
	assert.Equal(t, before.ScoreBlue, snap.ScoreBlue)
}

func TestLogRoleChange(t *testing.T) {
	s, _ := newTestSession(t)
	snap := s.LogRoleChange("dana", RoleBlueSpymaster)
	assert.Contains(t, snap.Log[0], "dana")
	assert.Contains(t, snap.Log[0], "blue spymaster")
}

func TestLogNewestFirst(t *testing.T) {
	s, _ := newTestSession(t)
	s.Reveal(0, RoleRedOperative)
	snap := s.Reveal(firstNeut, RoleRedOperative)

	require.Len(t, snap.Log, 3)
	assert.Contains(t, snap.Log[0], "neutral")
	assert.Contains(t, snap.Log[1], "agent")
	assert.Contains(t, snap.Log[2], "goes first")
}

func TestScoresAreMonotonic(t *testing.T) {
	s, _ := newTestSession(t)
	prevRed, prevBlue := RedCards, BlueCards
	// Sweep every card; whatever happens, scores only ever go down and
	// never below zero.
	for id := 0; id < TotalCards; id++ {
		snap := s.Reveal(id, RoleRedOperative)
		assert.LessOrEqual(t, snap.ScoreRed, prevRed)
		assert.LessOrEqual(t, snap.ScoreBlue, prevBlue)
		assert.GreaterOrEqual(t, snap.ScoreRed, 0)
		assert.GreaterOrEqual(t, snap.ScoreBlue, 0)
		prevRed, prevBlue = snap.ScoreRed, snap.ScoreBlue
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s, _ := newTestSession(t)
	snap := s.Snapshot()
	snap.Cards[0].Revealed = true
	snap.Log[0] = "tampered"

	fresh := s.Snapshot()
	assert.False(t, fresh.Cards[0].Revealed)
	assert.NotEqual(t, "tampered", fresh.Log[0])
}

func TestStartingTeamFollowsLargerSide(t *testing.T) {
	// Flip the split: blue holds the extra card.
	cards := fixedBoard()
	for i := range cards {
		switch cards[i].Type {
		case CardRed:
			cards[i].Type = CardBlue
		case CardBlue:
			cards[i].Type = CardRed
		}
	}
	s := NewSession("flipped", cards, 0, nil)
	snap := s.Start()

	assert.Equal(t, TeamBlue, snap.CurrentTeam)
	assert.Equal(t, BlueCards, snap.ScoreRed)
	assert.Equal(t, RedCards, snap.ScoreBlue)
}
