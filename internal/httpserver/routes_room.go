// internal/httpserver/routes_room.go
//
// HTTP routes for game rooms.
//   - POST /room/new            → create (or join) a room, generate its board
//   - POST /room/{id}/join      → join an existing room
//   - GET  /room/{id}/state     → role-redacted snapshot + capabilities
//   - POST /room/{id}/reveal    → reveal a card
//   - POST /room/{id}/endturn   → end the current turn manually
//   - POST /room/{id}/clue      → record a spymaster clue
//   - POST /room/{id}/role      → switch seats (logged, no game-state effect)
//   - POST /room/{id}/reset     → fresh board from the same seed
//   - GET  /room/{id}/events    → SSE stream (sound + state pings)
//   - GET  /daily               → today's shared seed
//
// Every board is reproduced from the room's seed string, so two servers (or a
// server restarted mid-party) agree on the layout as long as the dictionary
// matches. Invalid game transitions return HTTP 200 with the unchanged
// snapshot — they are benign no-ops, not faults.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/codewords/internal/ai"
	"github.com/robalobadob/codewords/internal/daily"
	"github.com/robalobadob/codewords/internal/game"
	"github.com/robalobadob/codewords/internal/sse"
	"github.com/robalobadob/codewords/internal/store"
	"github.com/robalobadob/codewords/internal/words"
)

// roomServer wraps dependencies for the /room endpoints.
type roomServer struct {
	srv  *Server
	ai   *ai.Client
	salt string
}

// mountRooms registers all room routes.
func (s *Server) mountRooms() {
	rs := &roomServer{
		srv:  s,
		ai:   s.ai,
		salt: getEnv("DAILY_SALT", "local_dev_salt"),
	}
	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(requestTimeout))
		r.Post("/room/new", rs.handleNew)
		r.Post("/room/{id}/join", rs.handleJoin)
		r.Get("/room/{id}/state", rs.handleState)
		r.Post("/room/{id}/reveal", rs.handleReveal)
		r.Post("/room/{id}/endturn", rs.handleEndTurn)
		r.Post("/room/{id}/clue", rs.handleClue)
		r.Post("/room/{id}/role", rs.handleRole)
		r.Post("/room/{id}/reset", rs.handleReset)
		r.Get("/daily", rs.handleDailySeed)
	})
	// Long-lived stream; stays outside the timeout group.
	s.r.Get("/room/{id}/events", rs.handleEvents)
}

// -----------------------------------------------------------------------------
// /room/new

// newRoomReq is the payload for POST /room/new.
type newRoomReq struct {
	PlayerName   string `json:"playerName"`
	RoomID       string `json:"roomId"`       // optional; generated when empty
	Role         string `json:"role"`         // optional; defaults to red operative
	Theme        string `json:"theme"`        // optional; asks the AI word source
	TimerSeconds int    `json:"timerSeconds"` // 0 = unlimited turns
}

// joinRes is returned by /room/new and /room/{id}/join.
type joinRes struct {
	RoomID   string    `json:"roomId"`
	PlayerID string    `json:"playerId"`
	Role     game.Role `json:"role"`
}

// handleNew creates a room (reusing an existing one when the caller supplies
// a room ID that is already live) and registers the caller as a participant.
// A player name is required; that is the one user-facing validation in the
// whole flow.
func (rs *roomServer) handleNew(w http.ResponseWriter, r *http.Request) {
	var req newRoomReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	req.PlayerName = strings.TrimSpace(req.PlayerName)
	if req.PlayerName == "" {
		http.Error(w, `{"error":"player name is required"}`, http.StatusBadRequest)
		return
	}
	role := parseRoleOrDefault(req.Role)

	roomID := strings.TrimSpace(req.RoomID)
	if roomID == "" {
		roomID = genID()
	}

	// Same room ID while the room is live → join it instead of rebuilding.
	if room, err := rs.srv.store.Get(r.Context(), roomID); err == nil {
		p := room.AddParticipant(req.PlayerName, role)
		rs.broadcastState(room)
		_ = json.NewEncoder(w).Encode(joinRes{RoomID: room.ID, PlayerID: p.ID, Role: p.Role})
		return
	}

	room := rs.createRoom(r.Context(), roomID, req.Theme, req.TimerSeconds)
	if err := rs.srv.store.Save(r.Context(), room); err != nil {
		log.Error().Err(err).Msg("save room")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	p := room.AddParticipant(req.PlayerName, role)

	_ = json.NewEncoder(w).Encode(joinRes{RoomID: room.ID, PlayerID: p.ID, Role: p.Role})
}

// createRoom builds the board (themed when possible, deterministic dictionary
// otherwise), starts the session, and wires the SSE hub in as the session's
// notification sink.
func (rs *roomServer) createRoom(ctx context.Context, roomID, theme string, timerSeconds int) *store.Room {
	themed := rs.themedWords(ctx, theme)
	board := game.GenerateBoard(roomID, words.Dictionary(), themed)

	hub := sse.NewHub()
	session := game.NewSession(roomID, board, timerSeconds, hub)
	session.Start()
	return store.NewRoom(roomID, roomID, hub, session)
}

// themedWords asks the external word source once. Any failure — including the
// source simply not being configured — falls back to nil, which sends board
// generation down the deterministic dictionary path. Never an error for the
// user.
func (rs *roomServer) themedWords(ctx context.Context, theme string) []string {
	theme = strings.TrimSpace(theme)
	if theme == "" || rs.ai == nil {
		return nil
	}
	list, err := rs.ai.GenerateWords(ctx, theme)
	if err != nil {
		if !errors.Is(err, ai.ErrUnavailable) {
			log.Warn().Err(err).Str("theme", theme).Msg("themed word source failed, using dictionary")
		}
		return nil
	}
	return list
}

// -----------------------------------------------------------------------------
// /room/{id}/join

type joinReq struct {
	PlayerName string `json:"playerName"`
	Role       string `json:"role"`
}

func (rs *roomServer) handleJoin(w http.ResponseWriter, r *http.Request) {
	room, ok := rs.room(w, r)
	if !ok {
		return
	}
	var req joinReq
	_ = json.NewDecoder(r.Body).Decode(&req)
	req.PlayerName = strings.TrimSpace(req.PlayerName)
	if req.PlayerName == "" {
		http.Error(w, `{"error":"player name is required"}`, http.StatusBadRequest)
		return
	}
	p := room.AddParticipant(req.PlayerName, parseRoleOrDefault(req.Role))
	rs.broadcastState(room)
	_ = json.NewEncoder(w).Encode(joinRes{RoomID: room.ID, PlayerID: p.ID, Role: p.Role})
}

// -----------------------------------------------------------------------------
// /room/{id}/state

// stateRes is the rendering contract: a role-redacted snapshot plus what the
// role may do right now.
type stateRes struct {
	game.Snapshot
	Role         game.Role         `json:"role"`
	Capabilities game.Capabilities `json:"capabilities"`
}

// handleState returns the snapshot as seen by one role. Hidden card types are
// blanked unless the role sees them or the card is revealed; a finished game
// hides nothing.
func (rs *roomServer) handleState(w http.ResponseWriter, r *http.Request) {
	room, ok := rs.room(w, r)
	if !ok {
		return
	}
	role := rs.roleForRequest(room, r)
	_ = json.NewEncoder(w).Encode(viewFor(room.CurrentSession().Snapshot(), role))
}

// viewFor applies the role/visibility policy to a snapshot.
func viewFor(snap game.Snapshot, role game.Role) stateRes {
	caps := game.CapabilitiesFor(role, snap.CurrentTeam)
	if !caps.CanSeeTypes && !snap.Over {
		for i := range snap.Cards {
			if !snap.Cards[i].Revealed {
				snap.Cards[i].Type = ""
			}
		}
	}
	return stateRes{Snapshot: snap, Role: role, Capabilities: caps}
}

// -----------------------------------------------------------------------------
// intents: reveal / endturn / clue / role / reset

type revealReq struct {
	PlayerID string `json:"playerId"`
	CardID   int    `json:"cardId"`
}

func (rs *roomServer) handleReveal(w http.ResponseWriter, r *http.Request) {
	room, ok := rs.room(w, r)
	if !ok {
		return
	}
	var req revealReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	p, err := room.Participant(req.PlayerID)
	if err != nil {
		http.Error(w, `{"error":"unknown_player"}`, http.StatusBadRequest)
		return
	}
	snap := room.CurrentSession().Reveal(req.CardID, p.Role)
	rs.broadcastState(room)
	_ = json.NewEncoder(w).Encode(viewFor(snap, p.Role))
}

type playerReq struct {
	PlayerID string `json:"playerId"`
}

func (rs *roomServer) handleEndTurn(w http.ResponseWriter, r *http.Request) {
	room, ok := rs.room(w, r)
	if !ok {
		return
	}
	var req playerReq
	_ = json.NewDecoder(r.Body).Decode(&req)
	p, err := room.Participant(req.PlayerID)
	if err != nil {
		http.Error(w, `{"error":"unknown_player"}`, http.StatusBadRequest)
		return
	}
	snap := room.CurrentSession().EndTurn(false)
	rs.broadcastState(room)
	_ = json.NewEncoder(w).Encode(viewFor(snap, p.Role))
}

type clueReq struct {
	PlayerID string `json:"playerId"`
	Clue     string `json:"clue"`
	Count    int    `json:"count"`
}

func (rs *roomServer) handleClue(w http.ResponseWriter, r *http.Request) {
	room, ok := rs.room(w, r)
	if !ok {
		return
	}
	var req clueReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	p, err := room.Participant(req.PlayerID)
	if err != nil {
		http.Error(w, `{"error":"unknown_player"}`, http.StatusBadRequest)
		return
	}
	snap := room.CurrentSession().SubmitClue(p.Name, req.Clue, req.Count, p.Role)
	rs.broadcastState(room)
	_ = json.NewEncoder(w).Encode(viewFor(snap, p.Role))
}

type roleReq struct {
	PlayerID string `json:"playerId"`
	Role     string `json:"role"`
}

func (rs *roomServer) handleRole(w http.ResponseWriter, r *http.Request) {
	room, ok := rs.room(w, r)
	if !ok {
		return
	}
	var req roleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	role, err := game.ParseRole(req.Role)
	if err != nil {
		http.Error(w, `{"error":"unknown_role"}`, http.StatusBadRequest)
		return
	}
	p, err := room.SetRole(req.PlayerID, role)
	if err != nil {
		http.Error(w, `{"error":"unknown_player"}`, http.StatusBadRequest)
		return
	}
	snap := room.CurrentSession().LogRoleChange(p.Name, role)
	rs.broadcastState(room)
	_ = json.NewEncoder(w).Encode(viewFor(snap, role))
}

// handleReset rebuilds the board from the same seed and swaps in a fresh
// session; the old session's timer is torn down with it.
func (rs *roomServer) handleReset(w http.ResponseWriter, r *http.Request) {
	room, ok := rs.room(w, r)
	if !ok {
		return
	}
	var req playerReq
	_ = json.NewDecoder(r.Body).Decode(&req)
	p, err := room.Participant(req.PlayerID)
	if err != nil {
		http.Error(w, `{"error":"unknown_player"}`, http.StatusBadRequest)
		return
	}

	old := room.CurrentSession().Snapshot()
	board := game.GenerateBoard(room.Seed, words.Dictionary(), nil)
	session := game.NewSession(room.Seed, board, old.TurnSeconds, room.Hub)
	session.Start()
	room.ReplaceSession(session)

	rs.broadcastState(room)
	_ = json.NewEncoder(w).Encode(viewFor(session.Snapshot(), p.Role))
}

// -----------------------------------------------------------------------------
// /daily

// dailyRes is returned by GET /daily.
type dailyRes struct {
	Seed string `json:"seed"`
	Date string `json:"date"`
}

// handleDailySeed hands out today's shared seed; everyone who creates a room
// with it lands on the same board.
func (rs *roomServer) handleDailySeed(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	_ = json.NewEncoder(w).Encode(dailyRes{
		Seed: daily.SeedKey(now, rs.salt),
		Date: daily.DateKey(now),
	})
}

// -----------------------------------------------------------------------------
// /room/{id}/events

// handleEvents streams room events over SSE until the client disconnects.
func (rs *roomServer) handleEvents(w http.ResponseWriter, r *http.Request) {
	room, ok := rs.room(w, r)
	if !ok {
		return
	}
	flusher, canFlush := w.(http.Flusher)
	if !canFlush {
		http.Error(w, `{"error":"streaming_unsupported"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	ch := room.Hub.Subscribe()
	defer room.Hub.Unsubscribe(ch)

	keepalive := time.NewTicker(15 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepalive.C:
			_, _ = fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		case msg, open := <-ch:
			if !open {
				return
			}
			_, _ = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data)
			flusher.Flush()
		}
	}
}

// -----------------------------------------------------------------------------
// helpers

// room resolves the {id} URL param to a live room, writing a 404 when absent.
func (rs *roomServer) room(w http.ResponseWriter, r *http.Request) (*store.Room, bool) {
	id := chi.URLParam(r, "id")
	room, err := rs.srv.store.Get(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"room_not_found"}`, http.StatusNotFound)
		return nil, false
	}
	return room, true
}

// roleForRequest resolves the viewing role: a registered participant's chosen
// seat when playerId is supplied, an explicit ?role= otherwise, defaulting to
// red operative (sees nothing hidden).
func (rs *roomServer) roleForRequest(room *store.Room, r *http.Request) game.Role {
	if pid := r.URL.Query().Get("playerId"); pid != "" {
		if p, err := room.Participant(pid); err == nil {
			return p.Role
		}
	}
	return parseRoleOrDefault(r.URL.Query().Get("role"))
}

// parseRoleOrDefault maps an optional role string to a Role, defaulting to
// red operative.
func parseRoleOrDefault(s string) game.Role {
	if role, err := game.ParseRole(s); err == nil {
		return role
	}
	return game.RoleRedOperative
}

// broadcastState pings every subscriber to refetch their own redacted view.
// The payload stays empty on purpose: each role sees a different board.
func (rs *roomServer) broadcastState(room *store.Room) {
	room.Hub.Broadcast("state", "")
}
