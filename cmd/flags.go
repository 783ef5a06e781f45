package main

import (
	"github.com/40acres/walletconsole/events"
	"github.com/40acres/walletconsole/wallet"
	"github.com/urfave/cli/v3"
)

func nodeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "network",
			Usage:   "Bitcoin network: mainnet, testnet, regtest or signet",
			Value:   "testnet",
			Sources: cli.EnvVars("NETWORK"),
		},
		&cli.StringFlag{
			Name:    "listen",
			Usage:   "Address the HTTP API listens on",
			Value:   "127.0.0.1:8080",
			Sources: cli.EnvVars("LISTEN"),
		},
		&cli.StringFlag{
			Name:    "bitcoind-host",
			Usage:   "bitcoind RPC host:port",
			Value:   "localhost:18332",
			Sources: cli.EnvVars("BITCOIND_HOST"),
		},
		&cli.StringFlag{
			Name:    "bitcoind-user",
			Usage:   "bitcoind RPC user",
			Sources: cli.EnvVars("BITCOIND_USER"),
		},
		&cli.StringFlag{
			Name:    "bitcoind-pass",
			Usage:   "bitcoind RPC password",
			Sources: cli.EnvVars("BITCOIND_PASS"),
		},
		&cli.BoolFlag{
			Name:    "bitcoind-tls",
			Usage:   "Use TLS for bitcoind RPC",
			Sources: cli.EnvVars("BITCOIND_TLS"),
		},
		&cli.StringFlag{
			Name:    "bitcoind-wallet",
			Usage:   "bitcoind wallet to operate, selects the /wallet/<name> RPC endpoint",
			Sources: cli.EnvVars("BITCOIND_WALLET"),
		},
		&cli.StringFlag{
			Name:    "explorer-url",
			Usage:   "Block explorer transaction URL prefix",
			Value:   string(wallet.DefaultExplorer),
			Sources: cli.EnvVars("BITCOIN_EXPLORER"),
		},
		&cli.StringFlag{
			Name:    "lightning-backend",
			Usage:   "Lightning implementation: cln or lnd",
			Value:   "cln",
			Sources: cli.EnvVars("LIGHTNING_BACKEND"),
		},
		&cli.StringFlag{
			Name:    "cln-dir",
			Usage:   "Core Lightning base directory",
			Sources: cli.EnvVars("CLN_DIR"),
		},
		&cli.StringFlag{
			Name:    "cln-rpc-file",
			Usage:   "Full path of the Core Lightning RPC socket, overrides --cln-dir",
			Sources: cli.EnvVars("CLN_RPC_FILE"),
		},
		&cli.StringFlag{
			Name:    "lnd-endpoint",
			Usage:   "lnd gRPC host:port",
			Sources: cli.EnvVars("LND_ENDPOINT"),
		},
		&cli.StringFlag{
			Name:    "lnd-macaroon",
			Usage:   "lnd admin macaroon path, {Network} is replaced by the network",
			Sources: cli.EnvVars("LND_MACAROON"),
		},
		&cli.StringFlag{
			Name:    "lnd-tls-cert",
			Usage:   "lnd TLS certificate path",
			Sources: cli.EnvVars("LND_TLS_CERT"),
		},
		&cli.StringFlag{
			Name:    "bootstrap-node",
			Usage:   "node_id@host:port to connect to when the node has no peers",
			Sources: cli.EnvVars("BOOTSTRAP_NODE"),
		},
		&cli.BoolFlag{
			Name:    "serialize-bootstrap",
			Usage:   "Run one bootstrap connection attempt at a time",
			Sources: cli.EnvVars("SERIALIZE_BOOTSTRAP"),
		},
		&cli.IntFlag{
			Name:    "tx-count",
			Usage:   "Number of wallet transactions listed",
			Value:   wallet.DefaultTxCount,
			Sources: cli.EnvVars("TX_COUNT"),
		},
		&cli.IntFlag{
			Name:    "recent-events",
			Usage:   "Number of payment events kept for late readers",
			Value:   events.DefaultRecentSize,
			Sources: cli.EnvVars("RECENT_EVENTS"),
		},
	}
}

func databaseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db-host",
			Usage:   "Database host. Empty keeps the pay index in memory, embedded runs a local postgres",
			Sources: cli.EnvVars("DB_HOST"),
		},
		&cli.StringFlag{
			Name:  "db-user",
			Usage: "Database username",
			Value: "myuser",
		},
		&cli.StringFlag{
			Name:    "db-password",
			Usage:   "Database password",
			Value:   "mypassword",
			Sources: cli.EnvVars("DB_PASSWORD"),
		},
		&cli.StringFlag{
			Name:  "db-name",
			Usage: "Database name",
			Value: "postgres",
		},
		&cli.IntFlag{
			Name:  "db-port",
			Usage: "Database port",
			Value: 5433,
		},
		&cli.StringFlag{
			Name:  "db-data-path",
			Usage: "Embedded database path",
			Value: "./.data",
		},
	}
}
