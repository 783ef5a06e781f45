package api

import (
	"net/http"

	"github.com/shopspring/decimal"
)

func (s *Server) getBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := s.wallet.Funds.Balance(r.Context())
	if err != nil {
		respondWithFault(w, r, err)

		return
	}

	respondWithJSON(w, http.StatusOK, map[string]decimal.Decimal{"balance": balance})
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.wallet.Funds.ListTransactions(r.Context())
	if err != nil {
		respondWithFault(w, r, err)

		return
	}

	respondWithJSON(w, http.StatusOK, txs)
}

func (s *Server) getNetworkInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.wallet.Funds.NetworkInfo(r.Context())
	if err != nil {
		respondWithFault(w, r, err)

		return
	}

	respondWithJSON(w, http.StatusOK, info)
}

func (s *Server) getWalletInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.wallet.Funds.WalletInfo(r.Context())
	if err != nil {
		respondWithFault(w, r, err)

		return
	}

	respondWithJSON(w, http.StatusOK, info)
}

func (s *Server) getWalletAddress(w http.ResponseWriter, r *http.Request) {
	address, err := s.wallet.Funds.WalletAddress(r.Context())
	if err != nil {
		respondWithFault(w, r, err)

		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"address": address})
}

func (s *Server) newOnchainAddress(w http.ResponseWriter, r *http.Request) {
	address, err := s.wallet.Funds.NewOnchainAddress(r.Context())
	if err != nil {
		respondWithFault(w, r, err)

		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{"address": address})
}

type sendRequest struct {
	Address string          `json:"address"`
	Amount  decimal.Decimal `json:"amount"`
}

func (s *Server) send(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithFault(w, r, err)

		return
	}

	result, err := s.wallet.Payouts.Send(r.Context(), req.Address, req.Amount)
	if err != nil {
		respondWithFault(w, r, err)

		return
	}

	code := http.StatusOK
	if result.Failed() {
		code = http.StatusUnprocessableEntity
	}
	respondWithJSON(w, code, result)
}

// withdrawRequest maps addresses to BTC amounts.
type withdrawRequest struct {
	Outputs map[string]decimal.Decimal `json:"outputs"`
}

func (s *Server) withdraw(w http.ResponseWriter, r *http.Request) {
	var req withdrawRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithFault(w, r, err)

		return
	}

	result, err := s.wallet.Payouts.Withdraw(r.Context(), req.Outputs)
	if err != nil {
		respondWithFault(w, r, err)

		return
	}

	code := http.StatusOK
	if result.Failed() {
		code = http.StatusUnprocessableEntity
	}
	respondWithJSON(w, code, result)
}
