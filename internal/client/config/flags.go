package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/legacyvault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string        auth API base URL
//	-d string        data API base URL
//	-k string        data API key
//	-backend string  data backend: rest or postgres
//	-db string       local database path
//	-store string    credential store: sqlite or memory
//	-i int           session check interval in seconds
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-k", "-backend", "-db", "-store", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.AuthAPIURL, "a", cfg.AuthAPIURL, "auth API base URL")
	fs.StringVar(&cfg.DataAPIURL, "d", cfg.DataAPIURL, "data API base URL")
	fs.StringVar(&cfg.DataAPIKey, "k", cfg.DataAPIKey, "data API key")
	fs.StringVar(&cfg.DataBackend, "backend", cfg.DataBackend, "data backend (rest|postgres)")
	fs.StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "local database path")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "credential store (sqlite|memory)")
	sessionCheckInterval := fs.Int("i", int(cfg.SessionCheckInterval.Seconds()), "session check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -i only has whole-second resolution; leave a finer JSON value alone
	// unless the flag was actually given.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.SessionCheckInterval = time.Duration(*sessionCheckInterval) * time.Second
		}
	})
}
