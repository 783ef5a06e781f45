package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/40acres/walletconsole/daemon"
	"github.com/40acres/walletconsole/database"
	"github.com/40acres/walletconsole/events"
	"github.com/40acres/walletconsole/lightning"
	"github.com/40acres/walletconsole/wallet"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	_ "github.com/40acres/walletconsole/logging"
)

func validatePort(port int64) (uint32, error) {
	if port < 0 || port > 65535 {
		return 0, fmt.Errorf("port number %d is invalid: must be between 0 and 65535", port)
	}

	return uint32(port), nil
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-sigChan
		log.Info("Received signal, shutting down")
		cancel()
	}()

	app := &cli.Command{
		Name:  "walletconsole",
		Usage: "Operate a bitcoind wallet and a Lightning node",
		Flags: append(nodeFlags(), databaseFlags()...),
		Commands: []*cli.Command{
			{
				Name:  "start",
				Usage: "Start the wallet console daemon",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := configFromFlags(cmd)
					if err != nil {
						return err
					}

					var cursors daemon.CursorSource
					if cmd.String("db-host") != "" {
						db, closeDb, err := StartDatabase(cmd)
						if err != nil {
							return err
						}
						defer func() {
							if err := closeDb(); err != nil {
								log.Errorf("❌ Could not close database: %v", err)
							}
						}()

						if cmd.String("db-host") == database.EmbeddedHost {
							if err := db.MigrateDatabase(); err != nil {
								return err
							}
						} else {
							log.Info("🔍 Skipping database migration")
						}

						cursors = func(nodeID string) events.CursorStore {
							return db.InvoiceCursors(nodeID)
						}
					}

					return daemon.Start(ctx, cfg, cursors)
				},
			},
			{
				Name:  "peers",
				Usage: "Print a summary of the Lightning node's peers",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := configFromFlags(cmd)
					if err != nil {
						return err
					}

					ln, closeLn, err := daemon.NewLightningClient(cfg)
					if err != nil {
						return err
					}
					defer closeLn()

					peers, err := ln.ListPeers(ctx)
					if err != nil {
						return fmt.Errorf("could not list peers: %s", wallet.DaemonMessage(err))
					}

					return printPeers(wallet.SummarizePeers(peers))
				},
			},
			{
				Name:  "database",
				Usage: "Database operations",
				Commands: []*cli.Command{
					{
						Name:  "migrate",
						Usage: "Migrate the database",
						Action: func(ctx context.Context, cmd *cli.Command) error {
							db, closeDb, err := StartDatabase(cmd)
							if err != nil {
								return err
							}
							defer func() {
								if err := closeDb(); err != nil {
									log.Errorf("❌ Could not close database: %v", err)
								}
							}()

							return db.MigrateDatabase()
						},
					},
				},
			},
			{
				Name:  "help",
				Usage: "Show help",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return cli.ShowAppHelp(cmd)
				},
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func printPeers(peers []wallet.PeerSummary) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PEER\tCONNECTED\tTOTAL\tCAN SEND\tCAN RECEIVE\tSTATES")
	for _, p := range peers {
		fmt.Fprintf(w, "%s\t%t\t%d\t%d\t%d\t%v\n", p.PeerID, p.Connected, p.SatsTotal, p.CanSend, p.CanReceive, p.ChannelStates)
	}

	return w.Flush()
}

func configFromFlags(cmd *cli.Command) (daemon.Config, error) {
	network, err := lightning.ParseNetwork(cmd.String("network"))
	if err != nil {
		return daemon.Config{}, err
	}

	cfg := daemon.Config{
		Network: network,
		Listen:  cmd.String("listen"),
		Bitcoind: daemon.BitcoindConfig{
			Host:   cmd.String("bitcoind-host"),
			User:   cmd.String("bitcoind-user"),
			Pass:   cmd.String("bitcoind-pass"),
			Wallet: cmd.String("bitcoind-wallet"),
			TLS:    cmd.Bool("bitcoind-tls"),
		},
		Lightning: daemon.LightningConfig{
			Backend:      daemon.LightningBackend(cmd.String("lightning-backend")),
			LightningDir: cmd.String("cln-dir"),
			RPCFile:      cmd.String("cln-rpc-file"),
			Endpoint:     cmd.String("lnd-endpoint"),
			Macaroon:     cmd.String("lnd-macaroon"),
			TLSCert:      cmd.String("lnd-tls-cert"),
		},
		Explorer:           cmd.String("explorer-url"),
		BootstrapNode:      cmd.String("bootstrap-node"),
		SerializeBootstrap: cmd.Bool("serialize-bootstrap"),
		TxCount:            int(cmd.Int("tx-count")),
		RecentEvents:       int(cmd.Int("recent-events")),
	}

	if err := cfg.Validate(); err != nil {
		return daemon.Config{}, err
	}

	return cfg, nil
}

func StartDatabase(cmd *cli.Command) (*database.Database, func() error, error) {
	port, err := validatePort(cmd.Int("db-port"))
	if err != nil {
		return nil, nil, err
	}

	host := cmd.String("db-host")
	if host == "" {
		host = database.EmbeddedHost
	}

	db, closeDb, err := database.New(
		cmd.String("db-user"),
		cmd.String("db-password"),
		cmd.String("db-name"),
		port,
		cmd.String("db-data-path"),
		host,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("❌ Could not connect to database: %w", err)
	}

	return db, closeDb, nil
}
