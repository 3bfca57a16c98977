package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-docprettify"
	"github.com/alnah/go-docprettify/internal/codec"
	"github.com/alnah/go-docprettify/internal/config"
	"github.com/alnah/go-docprettify/internal/fileutil"
	"github.com/alnah/go-docprettify/internal/hints"
	"github.com/alnah/go-docprettify/internal/theme"
)

// Version is set at build time via ldflags.
var Version = "dev"

// invalidDocRootMessage is printed before the usage when the docroot is missing.
const invalidDocRootMessage = "docroot must be a valid path!"

func main() {
	// Parse flags first to get verbose; errors are reported again by runMain.
	verbose := false
	if flags, err := parseFlags(os.Args[1:]); err == nil {
		verbose = flags.verbose
	}

	// Configure GOMAXPROCS with conditional logging
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain runs the command and returns the process exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	warnUnknownEnvVars(env.Stderr)

	flags, err := parseFlags(args[1:])
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		printUsage(env.Stderr)
		return exitCodeFor(err)
	}

	if flags.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "docprettify %s\n", Version)
		return ExitSuccess
	}

	params, err := resolveParams(flags, loadEnvConfig())
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, params))
		return exitCodeFor(err)
	}

	if flags.printConfig {
		out, err := codec.Encode(params.format, params.cfg)
		if err != nil {
			fmt.Fprintf(env.Stderr, "error: %v\n", err)
			return ExitGeneral
		}
		_, _ = env.Stdout.Write(out)
		return ExitSuccess
	}

	if !fileutil.DirExists(params.cfg.DocRoot) {
		fmt.Fprintln(env.Stderr, invalidDocRootMessage)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if flags.verbose {
		printBanner(env.Stdout, params)
	}

	start := env.Now()
	svc := docprettify.New(
		docprettify.WithOutput(env.Stdout),
		docprettify.WithVerbose(flags.verbose),
		docprettify.WithTimeout(params.timeout),
		docprettify.WithSource(env.Source),
	)

	stats, err := svc.Run(ctx, params.job)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, params))
		return exitCodeFor(err)
	}

	if !flags.quiet {
		printSummary(env, stats, env.Now().Sub(start))
	}
	return ExitSuccess
}

// printSummary prints the one-line result of a successful run.
func printSummary(env *Environment, stats docprettify.Stats, elapsed time.Duration) {
	if stats.Installed {
		fmt.Fprintln(env.Stdout, "installed prettify assets")
	}
	noun := "files"
	if stats.Rewritten == 1 {
		noun = "file"
	}
	fmt.Fprintf(env.Stdout, "prettified %d %s in %s\n", stats.Rewritten, noun, elapsed.Round(time.Millisecond))
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, p *runParams) string {
	var netErr net.Error

	switch {
	case errors.Is(err, context.Canceled):
		return ""
	case errors.Is(err, config.ErrConfigNotFound):
		if p == nil {
			return hints.ForConfigNotFound("")
		}
		return hints.ForConfigNotFound(p.configName)
	case errors.Is(err, docprettify.ErrUnknownTheme):
		return hints.ForThemeNotFound(theme.Names())
	case errors.As(err, &netErr) && netErr.Timeout():
		return hints.ForTimeout()
	case errors.Is(err, docprettify.ErrDownload):
		if p == nil {
			return ""
		}
		return hints.ForDownload(p.job.Assets.CSSPath(), p.job.Assets.JSPath())
	case errors.Is(err, docprettify.ErrInvalidDocRoot):
		return hints.ForDocRoot()
	case errors.Is(err, docprettify.ErrBackup):
		return hints.ForBackup()
	default:
		return ""
	}
}
