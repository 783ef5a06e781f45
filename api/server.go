// Package api exposes the wallet over HTTP/JSON. Every route is a thin
// adapter onto the wallet package. Paid invoices stream over a websocket.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/40acres/walletconsole/events"
	"github.com/40acres/walletconsole/wallet"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const (
	defaultPingInterval = 30 * time.Second
	defaultPongWait     = 10 * time.Second
	shutdownTimeout     = 10 * time.Second
)

type Option func(*Server)

// WithPingInterval sets how often event streams are pinged. Zero disables
// pings.
func WithPingInterval(interval time.Duration) Option {
	return func(s *Server) {
		s.pingInterval = interval
	}
}

type Server struct {
	wallet       *wallet.Wallet
	events       *events.Bridge
	upgrader     websocket.Upgrader
	pingInterval time.Duration
	pongWait     time.Duration
}

func NewServer(w *wallet.Wallet, bridge *events.Bridge, opts ...Option) *Server {
	s := &Server{
		wallet: w,
		events: bridge,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		pingInterval: defaultPingInterval,
		pongWait:     defaultPongWait,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(instrument)

	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	v1 := r.PathPrefix("/api/v1").Subrouter()

	v1.HandleFunc("/bitcoin/balance", s.getBalance).Methods("GET")
	v1.HandleFunc("/bitcoin/transactions", s.listTransactions).Methods("GET")
	v1.HandleFunc("/bitcoin/network", s.getNetworkInfo).Methods("GET")
	v1.HandleFunc("/bitcoin/wallet", s.getWalletInfo).Methods("GET")
	v1.HandleFunc("/bitcoin/address", s.getWalletAddress).Methods("GET")
	v1.HandleFunc("/bitcoin/address", s.newOnchainAddress).Methods("POST")
	v1.HandleFunc("/bitcoin/send", s.send).Methods("POST")
	v1.HandleFunc("/bitcoin/withdraw", s.withdraw).Methods("POST")

	v1.HandleFunc("/lightning/info", s.getLightningInfo).Methods("GET")
	v1.HandleFunc("/lightning/funds", s.listFunds).Methods("GET")
	v1.HandleFunc("/lightning/nodes", s.listNodes).Methods("GET")
	v1.HandleFunc("/lightning/graph/channels", s.listGraphChannels).Methods("GET")
	v1.HandleFunc("/lightning/peers", s.listPeers).Methods("GET")
	v1.HandleFunc("/lightning/address", s.newLightningAddress).Methods("POST")
	v1.HandleFunc("/lightning/connect", s.connect).Methods("POST")
	v1.HandleFunc("/lightning/channels", s.openChannel).Methods("POST")
	v1.HandleFunc("/lightning/channels/{peer_id}", s.closeChannel).Methods("DELETE")
	v1.HandleFunc("/lightning/invoices", s.createInvoice).Methods("POST")
	v1.HandleFunc("/lightning/invoices/paid", s.listPaid).Methods("GET")
	v1.HandleFunc("/lightning/invoices/decode", s.decodeInvoice).Methods("POST")
	v1.HandleFunc("/lightning/payments", s.pay).Methods("POST")
	v1.HandleFunc("/lightning/payments/status", s.paymentStatus).Methods("POST")
	v1.HandleFunc("/lightning/events", s.streamEvents).Methods("GET")
	v1.HandleFunc("/lightning/events/recent", s.recentEvents).Methods("GET")

	return r
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("address", addr).Info("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	log.Info("http server stopped")

	return nil
}
