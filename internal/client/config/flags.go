package config

import (
	"flag"
	"io"
	"time"

	"github.com/groupe-sii/lumext/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   portal API root URL
//	-t string   session token
//	-p string   portal location path (/tenant/{name}/...)
//	-u string   user to open a session as
//	-o string   org of that user
//	-i int      request timeout in seconds
//	-l string   log level
//
// Only these flags are picked out of args, see flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-p", "-u", "-o", "-i", "-l"})

	fs := flag.NewFlagSet("lumext", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "portal API root URL")
	fs.StringVar(&cfg.Token, "t", cfg.Token, "session token")
	fs.StringVar(&cfg.TenantPath, "p", cfg.TenantPath, "portal location path")
	fs.StringVar(&cfg.User, "u", cfg.User, "user name")
	fs.StringVar(&cfg.Org, "o", cfg.Org, "organization name")
	timeout := fs.Int("i", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
