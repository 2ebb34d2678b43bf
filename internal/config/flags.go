package config

import (
	"flag"
	"os"
	"time"

	"github.com/dsmirnov/authkit/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   PostgreSQL DSN
//	-g int      retention grace for expired rows, hours
//
// The args are filtered first so flags owned by other components (like the
// -c/-config JSON overlay flags) do not break parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-g"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	retentionGrace := fs.Int("g", int(config.RetentionGrace.Hours()), "retention grace for expired rows (in hours)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.RetentionGrace = time.Duration(*retentionGrace) * time.Hour
}
