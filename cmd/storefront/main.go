// storefront is a command line client for the storefront API. It keeps the
// session and a local cart in the configured storage backend, so state
// survives between invocations.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"storefront/internal/config"
)

// errUsage is returned after the usage text has been printed.
var errUsage = errors.New("invalid usage")

type globalOptions struct {
	output  string
	trace   bool
	verbose bool
}

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = []command{
	{"login", "start a session: login --email E --password P", runLogin},
	{"logout", "clear the stored session", runLogout},
	{"whoami", "show the stored session", runWhoami},
	{"categories", "list categories [--all | --admin ID | --default-admin]", runCategories},
	{"products", "list products [--id ID | --category ID | --default-admin | --admin-categories]", runProducts},
	{"cache", "local cart: list | add ID [QTY] | set ID QTY | remove ID | clear", runCache},
	{"cart", "server cart: show | ensure | create | items | init | add | update | remove", runCart},
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg := config.Load()
	var opts globalOptions

	flagSet := pflag.NewFlagSet("storefront", pflag.ContinueOnError)
	flagSet.SetInterspersed(false)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "storefront API origin")
	flagSet.StringVar(&cfg.Storage, "storage", cfg.Storage, "session storage: memory, file, redis or mysql")
	flagSet.StringVar(&cfg.StateFile, "state-file", cfg.StateFile, "state file used by the file storage")
	flagSet.StringVarP(&opts.output, "output", "o", formatJSON, "output format: json or yaml")
	flagSet.BoolVar(&opts.trace, "trace", false, "print OpenTelemetry spans of API calls to stderr")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flagSet.Usage = func() { printUsage(stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		printUsage(stderr, flagSet)
		return errUsage
	}
	cmd, ok := lookup(rest[0])
	if !ok {
		return fmt.Errorf("unknown command %q", rest[0])
	}

	out, err := newPrinter(opts.output, stdout)
	if err != nil {
		return err
	}
	log := newLogger(stderr, cfg.LogLevel, opts.verbose)

	if opts.trace {
		shutdown, err := setupTracing(stderr)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.WithError(err).Warn("flush traces")
			}
		}()
	}

	ctx, span := otel.Tracer("storefront/cli").Start(ctx, "storefront "+cmd.name)
	span.SetAttributes(attribute.String("storefront.storage", cfg.Storage))
	defer span.End()

	a, err := newApp(ctx, cfg, log, out)
	if err != nil {
		span.RecordError(err)
		return err
	}
	defer a.close()

	if err := cmd.run(ctx, a, rest[1:]); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func newLogger(w io.Writer, level string, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	if parsed, err := logrus.ParseLevel(level); err == nil {
		log.SetLevel(parsed)
	}
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func printUsage(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, "Usage:\n  storefront [flags] <command> [args]\n\nCommands:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-12s %s\n", c.name, c.summary)
	}
	fmt.Fprintf(w, "\nFlags:\n")
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
