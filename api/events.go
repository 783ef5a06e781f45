package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/40acres/walletconsole/events"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const writeWait = 10 * time.Second

func (s *Server) recentEvents(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, s.events.Recent())
}

// streamEvents forwards every payment event published after the client
// connected. The client never sends anything, reads only serve to notice
// the connection closing and to receive pongs.
func (s *Server) streamEvents(w http.ResponseWriter, r *http.Request) {
	sub, err := s.events.Subscribe()
	if err != nil {
		respondWithFault(w, r, err)

		return
	}
	defer sub.Cancel()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already answered the client.
		log.WithError(err).Debug("websocket upgrade failed")

		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	logger := log.WithContext(ctx).WithField("remote", r.RemoteAddr)
	logger.Info("event stream opened")
	defer logger.Info("event stream closed")

	if s.pingInterval > 0 {
		deadline := s.pingInterval + s.pongWait
		_ = conn.SetReadDeadline(time.Now().Add(deadline))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(deadline))
		})
	}

	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	updates := make(chan events.PaymentEvent)
	go func() {
		defer cancel()
		for {
			ev, err := sub.Next(ctx)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.WithError(err).Debug("event subscription ended")
				}

				return
			}
			select {
			case updates <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	var ping <-chan time.Time
	if s.pingInterval > 0 {
		ticker := time.NewTicker(s.pingInterval)
		defer ticker.Stop()
		ping = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(writeWait))

			return
		case <-ping:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.pongWait)); err != nil {
				logger.WithError(err).Debug("ping failed")

				return
			}
		case ev := <-updates:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				logger.WithError(err).Warn("failed to write event")

				return
			}
		}
	}
}
