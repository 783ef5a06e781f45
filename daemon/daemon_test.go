package daemon

import (
	"testing"

	"github.com/40acres/walletconsole/lightning"
	"github.com/40acres/walletconsole/lightning/cln"
	"github.com/40acres/walletconsole/lightning/lightningtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Network:   lightning.Regtest,
		Listen:    "127.0.0.1:8080",
		Lightning: LightningConfig{Backend: BackendCLN},
		TxCount:   20,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr string
	}{
		{
			name:   "valid",
			modify: func(*Config) {},
		},
		{
			name:   "bootstrap node",
			modify: func(c *Config) { c.BootstrapNode = lightningtest.NodeID + "@127.0.0.1:9735" },
		},
		{
			name:    "unknown network",
			modify:  func(c *Config) { c.Network = "bitcoin" },
			wantErr: `unsupported network "bitcoin"`,
		},
		{
			name:    "listen without port",
			modify:  func(c *Config) { c.Listen = "localhost" },
			wantErr: "listen address",
		},
		{
			name:    "unknown backend",
			modify:  func(c *Config) { c.Lightning.Backend = "eclair" },
			wantErr: `unknown lightning backend "eclair"`,
		},
		{
			name:    "bad bootstrap node",
			modify:  func(c *Config) { c.BootstrapNode = "nope" },
			wantErr: "bootstrap node",
		},
		{
			name:    "negative tx count",
			modify:  func(c *Config) { c.TxCount = -1 },
			wantErr: "tx count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)

				return
			}
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewLightningClient_MissingSocket(t *testing.T) {
	cfg := validConfig()
	cfg.Lightning.LightningDir = t.TempDir()

	_, _, err := NewLightningClient(cfg)
	require.ErrorIs(t, err, cln.ErrSocketNotFound)
}

func TestNewLightningClient_UnknownBackend(t *testing.T) {
	cfg := validConfig()
	cfg.Lightning.Backend = "eclair"

	_, _, err := NewLightningClient(cfg)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewWallet_BootstrapNode(t *testing.T) {
	cfg := validConfig()
	cfg.BootstrapNode = lightningtest.NodeID + "@127.0.0.1:9735"

	w, err := NewWallet(cfg, nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, w.Connectivity)
}
