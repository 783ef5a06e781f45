package main

import (
	"context"
	"testing"

	"github.com/40acres/walletconsole/daemon"
	"github.com/40acres/walletconsole/lightning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func parseConfig(t *testing.T, args ...string) (daemon.Config, error) {
	t.Helper()

	var (
		cfg    daemon.Config
		cfgErr error
	)
	app := &cli.Command{
		Name:  "walletconsole",
		Flags: nodeFlags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, cfgErr = configFromFlags(cmd)

			return nil
		},
	}
	require.NoError(t, app.Run(context.Background(), append([]string{"walletconsole"}, args...)))

	return cfg, cfgErr
}

func TestConfigFromFlags(t *testing.T) {
	t.Run("bitcoind wallet selects the rpc wallet", func(t *testing.T) {
		cfg, err := parseConfig(t, "--network", "regtest", "--bitcoind-wallet", "hot")
		require.NoError(t, err)
		assert.Equal(t, lightning.Regtest, cfg.Network)
		assert.Equal(t, "hot", cfg.Bitcoind.Wallet)
		assert.Equal(t, daemon.BackendCLN, cfg.Lightning.Backend)
	})

	t.Run("bitcoind wallet from the environment", func(t *testing.T) {
		t.Setenv("BITCOIND_WALLET", "cold")

		cfg, err := parseConfig(t, "--network", "regtest")
		require.NoError(t, err)
		assert.Equal(t, "cold", cfg.Bitcoind.Wallet)
	})

	t.Run("invalid network", func(t *testing.T) {
		_, err := parseConfig(t, "--network", "moon")
		require.Error(t, err)
	})
}

func TestValidatePort(t *testing.T) {
	port, err := validatePort(5433)
	require.NoError(t, err)
	assert.Equal(t, uint32(5433), port)

	_, err = validatePort(70000)
	require.Error(t, err)
}
