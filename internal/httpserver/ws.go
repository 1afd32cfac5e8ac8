// internal/httpserver/ws.go
//
// One websocket connection drives one game session.
//
// The connection's owner goroutine is the single actor the engine expects:
// client frames, countdown ticks and signal-expiry refreshes are all handled
// from one select loop, in arrival order. A reader goroutine only decodes
// frames and hands them over.
//
// Every exit route of the owner loop (client gone, server shutdown, write
// failure) runs the same deferred teardown: session closed (countdown
// disarmed), refresh timer and ping ticker stopped, registry entry removed.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/robalobadob/catch-the-antonym/internal/daily"
	"github.com/robalobadob/catch-the-antonym/internal/game"
	"github.com/robalobadob/catch-the-antonym/internal/store"
	"github.com/robalobadob/catch-the-antonym/internal/words"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	maxFrame   = 4096
)

var errUnknownSide = errors.New("side must be word or antonym")

// player is the per-connection state owned by the loop goroutine.
type player struct {
	srv     *Server
	id      string
	conn    *websocket.Conn
	sess    *game.Session
	limiter *rate.Limiter
	refresh *clock.Timer
}

// handleWS upgrades the request and runs the connection until it ends.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("websocket upgrade")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	id := uuid.NewString()
	p := &player{
		srv:     s,
		id:      id,
		conn:    conn,
		sess:    game.NewSession(s.catalog, game.WithClock(s.clock), game.WithID(id)),
		limiter: rate.NewLimiter(rate.Limit(s.cfg.RateLimitRPS), s.cfg.RateLimitBurst),
	}
	_ = s.store.Save(ctx, &store.Live{ID: id, RemoteAddr: r.RemoteAddr, ConnectedAt: s.clock.Now(), Stop: cancel})
	log.Info().Str("session", id).Str("remote", r.RemoteAddr).Msg("player connected")

	p.run(ctx)
}

func (p *player) run(ctx context.Context) {
	ping := p.srv.clock.Ticker(pingPeriod)
	defer func() {
		ping.Stop()
		p.stopRefresh()
		p.sess.Close()
		_ = p.srv.store.Delete(context.Background(), p.id)
		_ = p.conn.Close()
		log.Info().Str("session", p.id).Msg("player disconnected")
	}()

	in := make(chan inbound)
	go p.read(ctx, in)

	if err := p.send(outbound{Type: msgState, State: viewPtr(p.sess.View())}); err != nil {
		return
	}
	for {
		var err error
		select {
		case <-ctx.Done():
			_ = p.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return
		case msg, ok := <-in:
			if !ok {
				return
			}
			err = p.handle(msg)
		case <-p.sess.Ticks():
			p.sess.Tick()
			err = p.push("")
		case <-p.refreshC():
			p.sess.SweepSignals()
			err = p.push("")
		case <-ping.C:
			err = p.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
		}
		if err != nil {
			log.Debug().Err(err).Str("session", p.id).Msg("write failed")
			return
		}
	}
}

// read decodes frames until the connection fails, then closes in.
func (p *player) read(ctx context.Context, in chan<- inbound) {
	defer close(in)
	p.conn.SetReadLimit(maxFrame)
	_ = p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, r, err := p.conn.NextReader()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("session", p.id).Msg("websocket read")
			}
			return
		}
		data, err := io.ReadAll(r)
		if err != nil {
			log.Debug().Err(err).Str("session", p.id).Msg("websocket read")
			return
		}
		var msg inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			// the message arrived whole; only its payload is bad
			msg = inbound{Type: msgError, Value: err.Error()}
		}
		select {
		case in <- msg:
		case <-ctx.Done():
			return
		}
	}
}

// handle applies one client frame and answers with the new state.
func (p *player) handle(msg inbound) error {
	if !p.limiter.Allow() {
		return p.sendError("too many messages")
	}
	s := p.sess
	var outcome game.DropOutcome
	switch msg.Type {
	case msgError:
		return p.sendError("bad frame: " + msg.Value)
	case msgStart:
		if err := p.start(msg); err != nil {
			log.Debug().Err(err).Str("session", p.id).Msg("start rejected")
			return p.sendError(err.Error())
		}
	case msgDrag:
		side, err := parseSide(msg.Side)
		if err != nil {
			return p.sendError(err.Error())
		}
		s.BeginDrag(msg.Value, side, msg.Index)
	case msgDrop:
		side, err := parseSide(msg.Side)
		if err != nil {
			return p.sendError(err.Error())
		}
		outcome = s.AttemptDrop(msg.Value, msg.Index, side)
	case msgCancel:
		s.CancelDrag()
	case msgGiveUp:
		s.EndRoundNow()
	case msgBack:
		s.Abandon()
	case msgState:
	default:
		return p.sendError(fmt.Sprintf("unknown message type %q", msg.Type))
	}
	return p.push(outcome)
}

// start begins a round. A running round is ended first ("play again").
func (p *player) start(msg inbound) error {
	d, err := words.ParseDifficulty(msg.Difficulty)
	if err != nil {
		return err
	}
	cfg := game.RoundConfig{Difficulty: d, DurationSeconds: p.srv.cfg.RoundSeconds}
	if msg.Seconds > 0 {
		cfg.DurationSeconds = msg.Seconds
	}
	if msg.Daily {
		cfg.Daily = true
		cfg.Rand = daily.Rand(p.srv.clock.Now(), p.srv.cfg.DailySalt)
	}
	p.sess.EndRoundNow()
	return p.sess.StartRound(cfg)
}

// push sends the state and re-arms the refresh timer for the next signal expiry.
func (p *player) push(outcome game.DropOutcome) error {
	p.scheduleRefresh()
	return p.send(outbound{Type: msgState, State: viewPtr(p.sess.View()), Outcome: outcome})
}

func (p *player) scheduleRefresh() {
	p.stopRefresh()
	if next, ok := p.sess.NextSignalExpiry(); ok {
		p.refresh = p.srv.clock.Timer(next.Sub(p.srv.clock.Now()))
	}
}

func (p *player) stopRefresh() {
	if p.refresh != nil {
		p.refresh.Stop()
		p.refresh = nil
	}
}

func (p *player) refreshC() <-chan time.Time {
	if p.refresh == nil {
		return nil
	}
	return p.refresh.C
}

func (p *player) sendError(msg string) error {
	return p.send(outbound{Type: msgError, Error: msg})
}

func (p *player) send(out outbound) error {
	_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return p.conn.WriteJSON(out)
}

func parseSide(s string) (game.Side, error) {
	side := game.Side(s)
	if !side.Valid() {
		return "", errUnknownSide
	}
	return side, nil
}

func viewPtr(v game.View) *game.View { return &v }
