package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/yogatrack/internal/flagx"
)

// parseFlags only looks at -a, -t and -m; other arguments are dropped with
// flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-m"})

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	fs.StringVar(&cfg.AdminToken, "m", cfg.AdminToken, "admin token")

	return fs.Parse(args)
}
