package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/40acres/walletconsole/money"
	"github.com/40acres/walletconsole/wallet"
	"github.com/gorilla/mux"
)

func (s *Server) getLightningInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.wallet.Funds.LightningInfo(r.Context())
	if err != nil {
		respondWithFault(w, r, err)

		return
	}

	respondWithJSON(w, http.StatusOK, info)
}

func (s *Server) listFunds(w http.ResponseWriter, r *http.Request) {
	funds, err := s.wallet.Funds.ListFunds(r.Context())
	if err != nil {
		respondWithFault(w, r, err)

		return
	}

	respondWithJSON(w, http.StatusOK, funds)
}

func (s *Server) listNodes(w http.ResponseWriter, r *http.Request) {
	nodes, err := s.wallet.Funds.ListNodes(r.Context())
	if err != nil {
		respondWithFault(w, r, err)

		return
	}

	respondWithJSON(w, http.StatusOK, nodes)
}

func (s *Server) listGraphChannels(w http.ResponseWriter, r *http.Request) {
	channels, err := s.wallet.Funds.ListChannels(r.Context())
	if err != nil {
		respondWithFault(w, r, err)

		return
	}

	respondWithJSON(w, http.StatusOK, channels)
}

func (s *Server) listPeers(w http.ResponseWriter, r *http.Request) {
	peers, err := s.wallet.Funds.Peers(r.Context())
	if err != nil {
		respondWithFault(w, r, err)

		return
	}

	respondWithJSON(w, http.StatusOK, peers)
}

func (s *Server) newLightningAddress(w http.ResponseWriter, r *http.Request) {
	address, err := s.wallet.Funds.NewLightningAddress(r.Context())
	if err != nil {
		respondWithFault(w, r, err)

		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{"address": address})
}

// connect reports the outcome with 200 even when the connection failed. The
// outcome carries the daemon's reason.
func (s *Server) connect(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, s.wallet.Connectivity.EnsureConnected(r.Context()))
}

type openChannelRequest struct {
	NodeID    string      `json:"node_id"`
	AmountSat money.Money `json:"amount_sat"`
}

func (s *Server) openChannel(w http.ResponseWriter, r *http.Request) {
	var req openChannelRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithFault(w, r, err)

		return
	}

	outcome, err := s.wallet.Channels.OpenChannel(r.Context(), req.NodeID, req.AmountSat)
	if err != nil {
		respondWithFault(w, r, err)

		return
	}

	code := http.StatusCreated
	if outcome.Status == wallet.FundingFailed {
		code = http.StatusUnprocessableEntity
	}
	respondWithJSON(w, code, outcome)
}

func (s *Server) closeChannel(w http.ResponseWriter, r *http.Request) {
	tx, err := s.wallet.Channels.CloseChannel(r.Context(), mux.Vars(r)["peer_id"])
	if err != nil {
		respondWithFault(w, r, err)

		return
	}

	respondWithJSON(w, http.StatusOK, tx)
}

type invoiceRequest struct {
	AmountSat money.Money `json:"amount_sat"`
	Message   string      `json:"message"`
}

func (s *Server) createInvoice(w http.ResponseWriter, r *http.Request) {
	var req invoiceRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithFault(w, r, err)

		return
	}

	invoice, err := s.wallet.Payments.CreateInvoice(r.Context(), req.AmountSat, req.Message)
	if err != nil {
		respondWithFault(w, r, err)

		return
	}

	respondWithJSON(w, http.StatusCreated, invoice)
}

func (s *Server) listPaid(w http.ResponseWriter, r *http.Request) {
	invoices, err := s.wallet.Payments.ListPaid(r.Context())
	if err != nil {
		respondWithFault(w, r, err)

		return
	}

	respondWithJSON(w, http.StatusOK, invoices)
}

type bolt11Request struct {
	Bolt11 string `json:"bolt11"`
}

func decodeBolt11(r *http.Request) (string, error) {
	var req bolt11Request
	if err := decodeBody(r, &req); err != nil {
		return "", err
	}

	bolt11 := strings.TrimSpace(req.Bolt11)
	if bolt11 == "" {
		return "", fmt.Errorf("%w: bolt11 is required", errBadRequest)
	}

	return bolt11, nil
}

func (s *Server) decodeInvoice(w http.ResponseWriter, r *http.Request) {
	bolt11, err := decodeBolt11(r)
	if err != nil {
		respondWithFault(w, r, err)

		return
	}

	decoded, err := s.wallet.Payments.Decode(r.Context(), bolt11)
	if err != nil {
		respondWithFault(w, r, err)

		return
	}

	respondWithJSON(w, http.StatusOK, decoded)
}

// pay answers 402 when the payment failed so clients can tell a failed
// payment from a failed request.
func (s *Server) pay(w http.ResponseWriter, r *http.Request) {
	bolt11, err := decodeBolt11(r)
	if err != nil {
		respondWithFault(w, r, err)

		return
	}

	outcome, err := s.wallet.Payments.Pay(r.Context(), bolt11)
	if err != nil {
		respondWithFault(w, r, err)

		return
	}

	code := http.StatusOK
	if outcome.Failed() {
		code = http.StatusPaymentRequired
	}
	respondWithJSON(w, code, outcome)
}

func (s *Server) paymentStatus(w http.ResponseWriter, r *http.Request) {
	bolt11, err := decodeBolt11(r)
	if err != nil {
		respondWithFault(w, r, err)

		return
	}

	status, err := s.wallet.Payments.Status(r.Context(), bolt11)
	if err != nil {
		respondWithFault(w, r, err)

		return
	}

	respondWithJSON(w, http.StatusOK, status)
}
