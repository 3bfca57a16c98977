package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage indicates invalid command-line usage.
var ErrUsage = errors.New("invalid usage")

// cliFlags holds every flag of the docprettify command.
type cliFlags struct {
	docRoot     string
	config      string
	sourceURL   string
	theme       string
	timeout     string
	verbose     bool
	quiet       bool
	help        bool
	version     bool
	printConfig bool

	// changed records flags set explicitly on the command line.
	changed map[string]bool
}

// set reports whether the named flag was given explicitly.
func (f *cliFlags) set(name string) bool {
	return f.changed[name]
}

// parseFlags parses the command line, without the program name.
func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{changed: map[string]bool{}}

	fs := flag.NewFlagSet("docprettify", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	fs.StringVarP(&f.docRoot, "docroot", "d", "", "documentation root")
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.sourceURL, "source-url", "", "archive URL for the prettify assets")
	fs.StringVar(&f.theme, "theme", "", "chroma style for the stylesheet")
	fs.StringVar(&f.timeout, "timeout", "", "download timeout")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "print detailed progress")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "suppress the summary line")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")
	fs.BoolVar(&f.version, "version", false, "show version")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the resolved config and exit")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}
	if f.verbose && f.quiet {
		return nil, fmt.Errorf("%w: --verbose and --quiet are mutually exclusive", ErrUsage)
	}

	fs.Visit(func(fl *flag.Flag) {
		f.changed[fl.Name] = true
	})
	return f, nil
}
