package game

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTick = 2 * time.Millisecond

func TestTurnTimerExpiresExactlyOnce(t *testing.T) {
	var fired atomic.Int32
	timer := NewTurnTimer(3, testTick, func() { fired.Add(1) })
	defer timer.Stop()

	require.Eventually(t, func() bool { return fired.Load() == 1 },
		time.Second, testTick, "timer should expire")

	// Well past several more would-be expiries: still exactly one.
	time.Sleep(20 * testTick)
	assert.Equal(t, int32(1), fired.Load())
	assert.Equal(t, 0, timer.Remaining())
}

func TestTurnTimerResetRearms(t *testing.T) {
	var fired atomic.Int32
	timer := NewTurnTimer(2, testTick, func() { fired.Add(1) })
	defer timer.Stop()

	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, testTick)
	timer.Reset()
	require.Eventually(t, func() bool { return fired.Load() == 2 },
		time.Second, testTick, "reset should arm a second countdown")
}

func TestTurnTimerStopCancelsCountdown(t *testing.T) {
	var fired atomic.Int32
	timer := NewTurnTimer(5, testTick, func() { fired.Add(1) })
	timer.Stop()

	time.Sleep(20 * testTick)
	assert.Equal(t, int32(0), fired.Load())

	// Stop and Reset stay safe afterwards.
	timer.Stop()
	timer.Reset()
}

func TestInertTimerForUnlimitedTurns(t *testing.T) {
	timer := NewTurnTimer(0, testTick, func() { t.Error("inert timer must never fire") })
	assert.Equal(t, 0, timer.Remaining())
	timer.Reset()
	timer.Stop()
	time.Sleep(10 * testTick)
}

func TestSessionTimeoutEndsTurn(t *testing.T) {
	s := NewSession("timed", fixedBoard(), 2, nil)
	s.tick = testTick
	snap := s.Start()
	defer s.Close()
	require.Equal(t, TeamRed, snap.CurrentTeam)
	require.LessOrEqual(t, snap.Remaining, 2)

	// The countdown runs out and hands blue the turn exactly once,
	// re-arming itself for the new turn.
	require.Eventually(t, func() bool {
		return s.Snapshot().CurrentTeam == TeamBlue
	}, time.Second, testTick)

	snap = s.Snapshot()
	assert.Contains(t, snap.Log[0], "Time's up!")

	// The new turn starts from the full duration (it may already be
	// counting down again, or have timed out back to red).
	assert.LessOrEqual(t, snap.Remaining, 2)
}

func TestSessionTimerStopsOnGameOver(t *testing.T) {
	s := NewSession("timed-over", fixedBoard(), 2, nil)
	s.tick = testTick
	s.Start()
	defer s.Close()

	snap := s.Reveal(assassin, RoleRedOperative)
	require.True(t, snap.Over)
	team := snap.CurrentTeam

	// No timeout turn-switch can happen after the game is over.
	time.Sleep(20 * testTick)
	assert.Equal(t, team, s.Snapshot().CurrentTeam)
	assert.Equal(t, snap.Winner, s.Snapshot().Winner)
}

func TestSessionManualEndTurnResetsCountdown(t *testing.T) {
	s := NewSession("timed-manual", fixedBoard(), 60, nil)
	// Long ticks: the countdown never gets a chance to move during the test.
	s.tick = time.Minute
	s.Start()
	defer s.Close()

	require.Equal(t, 60, s.Snapshot().Remaining)
	snap := s.EndTurn(false)
	assert.Equal(t, TeamBlue, snap.CurrentTeam)

	// Reset is delivered asynchronously to the timer goroutine.
	assert.Eventually(t, func() bool {
		return s.Snapshot().Remaining == 60
	}, time.Second, time.Millisecond)
}
