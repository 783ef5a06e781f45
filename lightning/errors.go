package lightning

import (
	"encoding/json"
	"fmt"
)

// RPCError is a structured error returned by the Lightning daemon. Message is
// kept exactly as the daemon sent it.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("lightning rpc error %d: %s", e.Code, e.Message)
}
