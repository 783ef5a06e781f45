package cln

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/40acres/walletconsole/lightning"
	"github.com/40acres/walletconsole/money"
	"github.com/elementsproject/glightning/jrpc2"
	log "github.com/sirupsen/logrus"
)

// codeMethodNotFound is the JSON-RPC code lightningd uses for unknown commands.
const codeMethodNotFound = -32601

// rpc returns the connection to lightningd, dialing it again when the
// previous one went down.
func (c *Client) rpc() (*jrpc2.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil && c.client.IsUp() {
		return c.client, nil
	}

	client := jrpc2.NewClient()
	client.SetTimeout(c.timeout)

	up := make(chan bool, 1)
	failed := make(chan error, 1)
	go func() {
		failed <- client.SocketStart(c.socketPath, up)
	}()

	select {
	case ok := <-up:
		if !ok {
			return nil, fmt.Errorf("connecting to lightningd at %s: connection not ready", c.socketPath)
		}
	case err := <-failed:
		if err == nil {
			err = errors.New("connection closed")
		}

		return nil, fmt.Errorf("connecting to lightningd at %s: %w", c.socketPath, err)
	}

	log.WithField("socket", c.socketPath).Debug("connected to lightningd")
	c.client = client

	return client, nil
}

// Close shuts the lightningd connection down.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		c.client.Shutdown()
		c.client = nil
	}
}

// call sends m and decodes its result. Calls bounded by the client timeout
// use Request, blocking calls like waitanyinvoice use RequestNoTimeout. In
// both cases canceling ctx abandons the call; lightningd's late answer is
// dropped.
func (c *Client) call(ctx context.Context, m jrpc2.Method, result any) error {
	return c.do(ctx, m, result, false)
}

func (c *Client) wait(ctx context.Context, m jrpc2.Method, result any) error {
	return c.do(ctx, m, result, true)
}

func (c *Client) do(ctx context.Context, m jrpc2.Method, result any, blocking bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	client, err := c.rpc()
	if err != nil {
		return fmt.Errorf("%s: %w", m.Name(), err)
	}

	var raw json.RawMessage
	done := make(chan error, 1)
	go func() {
		if blocking {
			done <- client.RequestNoTimeout(m, &raw)
		} else {
			done <- client.Request(m, &raw)
		}
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%s: %w", m.Name(), toRPCError(err))
		}
	}

	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("%s: decoding result: %w", m.Name(), err)
	}

	return nil
}

// toRPCError keeps lightningd's code and message so callers can show the
// message as is.
func toRPCError(err error) error {
	var rpcErr *jrpc2.RpcError
	if errors.As(err, &rpcErr) {
		return &lightning.RPCError{Code: rpcErr.Code, Message: rpcErr.Message}
	}

	return err
}

func isMethodNotFound(err error) bool {
	var rpcErr *lightning.RPCError

	return errors.As(err, &rpcErr) && rpcErr.Code == codeMethodNotFound
}

// msat decodes every amount encoding lightningd has used: plain integers,
// "1000msat" strings and decimal strings.
type msat uint64

func (m *msat) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	s = strings.TrimSuffix(s, "msat")

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid msat amount %s: %w", b, err)
	}
	*m = msat(v)

	return nil
}

// first returns the first non-zero amount. Older daemons report amounts
// under msatoshi_* names, newer ones under *_msat names.
func first(amounts ...msat) money.MilliSats {
	for _, a := range amounts {
		if a != 0 {
			return money.MilliSats(a)
		}
	}

	return 0
}

func unixTime(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}

	return time.Unix(sec, 0).UTC()
}

type netAddress struct {
	Type    string `json:"type"`
	Address string `json:"address"`
	Port    int    `json:"port"`
}

func (a netAddress) String() string {
	if a.Port == 0 {
		return a.Address
	}

	return net.JoinHostPort(a.Address, strconv.Itoa(a.Port))
}

func addressStrings(addrs []netAddress) []string {
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, a.String())
	}

	return out
}
