package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/40acres/walletconsole/lightning"
	"github.com/40acres/walletconsole/money"
	"github.com/40acres/walletconsole/wallet"
	log "github.com/sirupsen/logrus"
)

var errBadRequest = errors.New("bad request")

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Debug("failed to write response")
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithFault maps an error to a status code. Input problems are the
// caller's fault, everything else is reported as the daemon's with its
// message untouched.
func respondWithFault(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		log.WithContext(r.Context()).WithError(err).WithField("path", r.URL.Path).Error("request failed")
	}

	message := wallet.DaemonMessage(err)
	if code < http.StatusInternalServerError {
		message = err.Error()
	}
	respondWithError(w, code, message)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, wallet.ErrInvalidAmount),
		errors.Is(err, wallet.ErrInvalidNodeID),
		errors.Is(err, wallet.ErrInvalidAddress),
		errors.Is(err, wallet.ErrEmptyPayout),
		errors.Is(err, money.ErrNegativeAmount),
		errors.Is(err, money.ErrAmountTooLarge),
		errors.Is(err, money.ErrSubSatoshi),
		errors.Is(err, lightning.ErrInvalidNodeAddress):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}

	return nil
}
