// Package main is a nostr relay that requires author-scoped subscriptions,
// with an optional pubkey allow list and challenge-response authentication.
// Configuration is via environment variables or an optional .env file.
package main

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/pkg/profile"

	"okra.dev/app/config"
	"okra.dev/app/relay"
	"okra.dev/database"
	"okra.dev/utils/chk"
	"okra.dev/utils/context"
	"okra.dev/utils/interrupt"
	"okra.dev/utils/log"
	"okra.dev/version"
)

func main() {
	var err error
	var cfg *config.C
	if cfg, err = config.New(); chk.T(err) {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n\n", err)
		config.PrintHelp(cfg, os.Stderr)
		os.Exit(1)
	}
	if config.GetEnv() {
		config.PrintEnv(cfg, os.Stdout)
		os.Exit(0)
	}
	if config.HelpRequested() {
		config.PrintHelp(cfg, os.Stderr)
		os.Exit(0)
	}
	log.SetLogLevel(cfg.LogLevel)
	log.I.F("starting %s %s", cfg.AppName, version.V)
	if cfg.Pprof {
		defer profile.Start(profile.MemProfile).Stop()
		go func() {
			chk.E(http.ListenAndServe("127.0.0.1:6060", nil))
		}()
	}
	c, cancel := context.Cancel(context.Bg())
	var storage *database.D
	if storage, err = database.New(
		c, cancel, cfg.DataDir, cfg.DbLogLevel,
	); chk.E(err) {
		os.Exit(1)
	}
	var server *relay.Server
	if server, err = relay.NewServer(
		&relay.ServerParams{
			Ctx:    c,
			Cancel: cancel,
			Sto:    storage,
			DbPath: cfg.DataDir,
			C:      cfg,
		},
	); chk.E(err) {
		os.Exit(1)
	}
	interrupt.AddHandler(func() { server.Shutdown() })
	if err = server.Start(cfg.Listen, cfg.Port); chk.E(err) {
		log.F.F("server terminated: %v", err)
	}
}
