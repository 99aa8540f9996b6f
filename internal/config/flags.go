package config

import (
	"flag"
	"os"
	"time"

	"github.com/hospitalapp/client-go/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the backend API
//	-t int      request timeout in seconds
//	-d string   path of the local credentials database
//	-e bool     encrypt POST request bodies
//	-v          verbose (debug) logging
//
// os.Args is filtered through flagx.FilterArgs first so flags owned by
// other components do not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d", "-e", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "base URL of the backend API")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.CredentialsDB, "d", cfg.CredentialsDB, "path of the credentials database")
	fs.BoolVar(&cfg.UseEncryption, "e", cfg.UseEncryption, "encrypt request bodies")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
