package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/newn79677-coder/PRACTICE-APP/internal/app"
	"github.com/newn79677-coder/PRACTICE-APP/internal/domain"
)

// WSHandler exposes the trainer to a browser rendering surface over a
// websocket: user gestures arrive as typed commands, the engine answers
// with read-only snapshots. A per-connection 1 second ticker acts as the
// scheduler that drives auto-submission on expiry.
type WSHandler struct {
	trainer      *app.Trainer
	log          zerolog.Logger
	upgrader     websocket.Upgrader
	tickInterval time.Duration
}

func NewWSHandler(trainer *app.Trainer, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		trainer: trainer,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		tickInterval: time.Second,
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	Name             string  `json:"name"`
	QuestionCount    int     `json:"questionCount"`
	TimeLimitMinutes float64 `json:"timeLimitMinutes"`
	Language         string  `json:"language"`
}

type answerPayload struct {
	Index int    `json:"index"`
	Value string `json:"value"`
}

type seekPayload struct {
	Index int `json:"index"`
}

type profilePayload struct {
	Name    string `json:"name"`
	Bio     string `json:"bio"`
	Picture string `json:"profilePicture"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// wsConn bundles the per-connection channels. closed fires when the read
// loop ends; writerDone fires when the writer exits, so a push can never
// block on a dead writer with a full buffer.
type wsConn struct {
	send       chan outboundMessage[any]
	closed     chan struct{}
	writerDone chan struct{}
}

// ServeWS upgrades the request and runs the command loop for one surface.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	c := &wsConn{
		send:       make(chan outboundMessage[any], 16),
		closed:     make(chan struct{}),
		writerDone: make(chan struct{}),
	}
	tickerDone := make(chan struct{})

	go func() {
		defer close(c.writerDone)
		for msg := range c.send {
			if err := conn.WriteJSON(msg); err != nil {
				h.log.Warn().Err(err).Msg("ws write error")
				return
			}
		}
	}()

	// Scheduler: poll at 1 Hz while the connection lives. Tick reports a
	// submission exactly once, so jitter cannot duplicate the result push.
	go func() {
		defer close(tickerDone)
		ticker := time.NewTicker(h.tickInterval)
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				if res, submitted := h.trainer.Tick(now); submitted {
					h.push(c, "result", res)
					continue
				}
				if snap, err := h.trainer.Snapshot(); err == nil && snap.State == "active" {
					h.push(c, "session", snap)
				}
			case <-c.closed:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		h.dispatch(r.Context(), c, inbound)
	}

	close(c.closed)
	<-tickerDone
	close(c.send)
	<-c.writerDone
}

func (h *WSHandler) dispatch(ctx context.Context, c *wsConn, inbound inboundMessage) {
	switch inbound.Type {
	case "start":
		var p startPayload
		if err := json.Unmarshal(inbound.Payload, &p); err != nil {
			h.pushError(c, "invalid start payload")
			return
		}
		cfg := domain.QuizConfig{
			Name:          p.Name,
			QuestionCount: p.QuestionCount,
			TimeLimit:     time.Duration(p.TimeLimitMinutes * float64(time.Minute)),
			Language:      p.Language,
		}
		snap, err := h.trainer.StartQuiz(ctx, cfg)
		if err != nil {
			if errors.Is(err, domain.ErrInsufficientQuestions) {
				if size, sizeErr := h.trainer.BankSize(ctx); sizeErr == nil {
					h.pushError(c, "only "+strconv.Itoa(size)+" questions available")
					return
				}
			}
			h.pushError(c, err.Error())
			return
		}
		h.push(c, "session", snap)

	case "answer":
		var p answerPayload
		if err := json.Unmarshal(inbound.Payload, &p); err != nil {
			h.pushError(c, "invalid answer payload")
			return
		}
		snap, err := h.trainer.Answer(p.Index, p.Value)
		if err != nil {
			h.pushError(c, err.Error())
			return
		}
		h.push(c, "session", snap)

	case "seek":
		var p seekPayload
		if err := json.Unmarshal(inbound.Payload, &p); err != nil {
			h.pushError(c, "invalid seek payload")
			return
		}
		snap, err := h.trainer.Seek(p.Index)
		h.pushNav(c, snap, err)

	case "next":
		snap, err := h.trainer.Next()
		h.pushNav(c, snap, err)

	case "prev":
		snap, err := h.trainer.Previous()
		h.pushNav(c, snap, err)

	case "submit":
		res, err := h.trainer.Submit()
		if err != nil {
			h.pushError(c, err.Error())
			return
		}
		h.push(c, "result", res)

	case "save":
		if err := h.trainer.SaveResult(ctx); err != nil {
			h.pushError(c, err.Error())
			return
		}
		h.push(c, "saved", h.trainer.Leaderboard())

	case "review":
		view, err := h.trainer.Review()
		h.pushReview(c, view, err)

	case "reviewSeek":
		var p seekPayload
		if err := json.Unmarshal(inbound.Payload, &p); err != nil {
			h.pushError(c, "invalid review payload")
			return
		}
		view, err := h.trainer.ReviewSeek(p.Index)
		h.pushReview(c, view, err)

	case "reviewNext":
		view, err := h.trainer.ReviewNext()
		h.pushReview(c, view, err)

	case "reviewPrev":
		view, err := h.trainer.ReviewPrevious()
		h.pushReview(c, view, err)

	case "history":
		h.push(c, "history", h.trainer.History(ctx))

	case "stats":
		h.push(c, "stats", h.trainer.Stats(ctx))

	case "leaderboard":
		h.push(c, "leaderboard", h.trainer.Leaderboard())

	case "profile":
		if len(inbound.Payload) > 0 {
			var p profilePayload
			if err := json.Unmarshal(inbound.Payload, &p); err != nil {
				h.pushError(c, "invalid profile payload")
				return
			}
			if err := h.trainer.SetProfile(ctx, domain.Profile{Name: p.Name, Bio: p.Bio, Picture: p.Picture}); err != nil {
				h.pushError(c, err.Error())
				return
			}
		}
		h.push(c, "profile", h.trainer.Profile())

	default:
		h.pushError(c, "unsupported message type")
	}
}

func (h *WSHandler) pushNav(c *wsConn, snap app.SessionSnapshot, err error) {
	if err != nil {
		h.pushError(c, err.Error())
		return
	}
	h.push(c, "session", snap)
}

func (h *WSHandler) pushReview(c *wsConn, view app.ReviewView, err error) {
	if err != nil {
		h.pushError(c, err.Error())
		return
	}
	h.push(c, "review", view)
}

func (h *WSHandler) push(c *wsConn, typ string, payload any) {
	select {
	case c.send <- outboundMessage[any]{Type: typ, Payload: payload}:
	case <-c.closed:
	case <-c.writerDone:
	}
}

func (h *WSHandler) pushError(c *wsConn, msg string) {
	h.push(c, "error", errorPayload{Message: msg})
}
