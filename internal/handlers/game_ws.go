package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper/internal/command"
	"github.com/vancomm/minesweeper/internal/session"
)

type wsMessage struct {
	Type    string          `json:"type"`
	Session *GameSessionDTO `json:"session,omitempty"`
	Elapsed int             `json:"elapsed,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ConnectWS plays a session over a WebSocket. Every text frame holds one or
// more commands; the reply is the session view, or an error when a command
// is rejected. Clock ticks of the current game are pushed as they happen.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	c.SetReadLimit(g.ws.ReadLimit)

	logger := g.logger.With(slog.String("session", s.ID.String()))
	ticks, unsubscribe := s.Subscribe()
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := make(chan wsMessage, 8)
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		defer cancel()
		return g.readCommands(ctx, c, s, out, logger)
	})
	eg.Go(func() error {
		defer c.Close()
		return g.writeMessages(ctx, c, ticks, out)
	})

	if err := eg.Wait(); err != nil {
		logger.Warn("abnormal ws break", slog.Any("error", err))
	}
}

func (g GameHandler) readCommands(
	ctx context.Context,
	c *websocket.Conn,
	s *session.Session,
	out chan<- wsMessage,
	logger *slog.Logger,
) error {
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) ||
				ctx.Err() != nil {
				return nil
			}
			return err
		}
		if mt != websocket.TextMessage {
			return nil
		}

		text := strings.TrimSpace(string(message))
		logger.Debug("\t> " + text)

		reply := wsMessage{Type: "view"}
		if err := command.Run(s, text); err != nil {
			logger.Debug("rejected command", slog.Any("error", err))
			reply = wsMessage{Type: "error", Error: err.Error()}
		} else {
			reply.Session = NewGameSessionDTO(s.Snapshot())
		}

		select {
		case out <- reply:
		case <-ctx.Done():
			return nil
		}
	}
}

// writeMessages is the only writer on c.
func (g GameHandler) writeMessages(
	ctx context.Context,
	c *websocket.Conn,
	ticks <-chan int,
	out <-chan wsMessage,
) error {
	write := func(m wsMessage) error {
		c.SetWriteDeadline(time.Now().Add(g.ws.WriteTimeout))
		return c.WriteJSON(m)
	}
	for {
		select {
		case <-ctx.Done():
			deadline := time.Now().Add(g.ws.WriteTimeout)
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			c.WriteControl(websocket.CloseMessage, msg, deadline)
			return nil
		case seconds := <-ticks:
			if err := write(wsMessage{Type: "tick", Elapsed: seconds}); err != nil {
				return err
			}
		case m := <-out:
			if err := write(m); err != nil {
				return err
			}
		}
	}
}
