package config

import (
	"flag"
	"io"
	"strings"
	"time"

	"github.com/groupe-sii/lumext/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   HTTP bind address (e.g. ":8443")
//	-b string   public base URL used in org hrefs
//	-d string   PostgreSQL DSN, empty for the in-memory store
//	-s string   JWT HMAC secret key
//	-t int      token validity, minutes
//	-o string   comma separated org names to create at start-up
//	-l string   log level
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-b", "-d", "-s", "-t", "-o", "-l"})

	fs := flag.NewFlagSet("lumext-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.BaseURL, "b", config.BaseURL, "public base URL")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	validity := fs.Int("t", int(config.TokenValidity.Minutes()), "token validity (in minutes)")
	orgs := fs.String("o", strings.Join(config.Orgs, ","), "org names")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidity = time.Duration(*validity) * time.Minute
	config.Orgs = flagx.SplitList(*orgs)
}
