// Command relay-keygen provisions API keys for the relay. It writes to the
// same auth database the relay reads, so run it on the relay host (or
// against the same volume) while the relay is stopped or tolerant of a
// brief lock wait.
//
//	relay-keygen -u alice
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/alertflow/relay/modules/auth"
	"github.com/alertflow/relay/pkg/config"
	"github.com/alertflow/relay/pkg/logger"
)

func main() {
	username := flag.String("u", "", "username to issue an API key for")
	flag.StringVar(username, "username", "", "username to issue an API key for")
	flag.Parse()

	if *username == "" {
		fmt.Fprintln(os.Stderr, "usage: relay-keygen -u <username>")
		os.Exit(2)
	}

	var cfg auth.Config
	config.MustLoad(&cfg)

	var logCfg logger.Config
	config.MustLoad(&logCfg)
	log := logger.NewFromConfig(logCfg, "relay-keygen")

	store, err := auth.OpenBoltStore(cfg.StoreDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open auth store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	secret, err := auth.NewService(store, log).CreateKey(context.Background(), *username)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create api key: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created API key for user %s\n", *username)
	fmt.Printf("API key: %s\n", secret)
}
