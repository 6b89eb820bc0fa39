package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/graph-guard/ggmap/pkg/config"
)

const EnvLogLevel = "MAPCHECK_LOG_LEVEL"

// Command can be any of:
//
//	CommandRun
type Command any

type CommandRun struct {
	ConfigDirPath string

	// LogLevel overrides the configured log level if not empty.
	LogLevel string

	// Scenario restricts the run to a single scenario if not empty.
	Scenario string
}

func Parse(w io.Writer, args []string) (cmd Command) {
	fm := fmt.Sprintf

	executableName := "mapcheck"
	if len(args) > 0 {
		executableName = filepath.Base(args[0])
	}

	flags := flag.NewFlagSet("mapcheck", flag.ContinueOnError)
	flags.SetOutput(w)
	flags.Usage = func() {
		writeLines(w,
			fm("usage: %s <command> [flags]", executableName),
			"",
			"commands available:",
			" run - runs the configured trace scenarios",
			" help - prints the description of the scenario configuration",
		)
	}

	parseFlags := func() (ok bool) {
		err := flags.Parse(args[2:])
		// flags will automatically call .Usage()
		return err == nil
	}

	if len(args) < 2 {
		flags.Usage()
		return nil
	}

	switch args[1] {
	case "run":
		c := CommandRun{}
		c.LogLevel = os.Getenv(EnvLogLevel)

		flags.Usage = func() {
			writeLines(w,
				"",
				fm("usage: %s run [-config <path>] [-scenario <name>]",
					executableName),
				"",
				"flags:",
				"-config <path>: defines the configuration directory path "+
					"(default: ./config)",
				"-scenario <name>: runs only the scenario with the given name",
				"",
				"environment variables:",
				fm("%s: overrides the configured log level "+
					"(debug, info, warn, error)", EnvLogLevel),
			)
		}

		flags.StringVar(&c.ConfigDirPath, "config", "./config", "")
		flags.StringVar(&c.Scenario, "scenario", "", "")
		if !parseFlags() {
			return nil
		}

		if c.LogLevel != "" {
			if err := config.ValidateLogLevel(c.LogLevel); err != "" {
				writeLines(w, EnvLogLevel+": "+err)
				flags.Usage()
				return nil
			}
		}

		cmd = c

	case "help":
		PrintHelp(w)
		return nil

	default:
		flags.Usage()
		return nil
	}
	return cmd
}

func writeLines(w io.Writer, lines ...string) {
	for i := range lines {
		_, _ = w.Write([]byte(lines[i]))
		_, _ = w.Write([]byte("\n"))
	}
}

func PrintHelp(w io.Writer) {
	writeLines(w,
		"mapcheck runs seeded random operation traces against the",
		"hashmap and treemap containers and verifies every result",
		"against a reference model.",
		"",
		"configuration ("+config.ConfigFile1+" in the config directory):",
		"",
		"log-level: info          # debug, info, warn or error",
		"scenarios:",
		"  - name: small          # unique, [a-zA-Z0-9_-]",
		"    map: hashmap         # hashmap or treemap",
		"    hasher: xxh3         # xxh3 or xxh64, hashmap only",
		"    seed: 1",
		"    operations: 10000",
		"    key-space: 512",
		"    check-order-every: 100",
	)
}
