package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintf(w, "docprettify version %s.\n", Version)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: docprettify [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Adds google-code-prettify syntax highlighting to generated HTML")
	fmt.Fprintln(w, "documentation (javadoc and similar). Pages containing <pre> get the")
	fmt.Fprintln(w, "stylesheet and script linked in their <head>, and prettyPrint() is")
	fmt.Fprintln(w, "chained into the body onload hook. Each page keeps a <page>.old backup.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The assets are downloaded once when missing under the docroot.")
	fmt.Fprintln(w, "Running twice over the same pages links the assets twice.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -d, --docroot <path>      Documentation root (default \"docs/\")")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (.yaml, .yml, .toml)")
	fmt.Fprintln(w, "      --source-url <url>    Archive holding prettify.css and prettify.js")
	fmt.Fprintln(w, "      --theme <name>        Generate the stylesheet from a chroma style")
	fmt.Fprintln(w, "      --timeout <duration>  Download timeout (default 2m)")
	fmt.Fprintln(w, "  -v, --verbose             Print detailed progress and diffs")
	fmt.Fprintln(w, "  -q, --quiet               Suppress the summary line")
	fmt.Fprintln(w, "      --print-config        Print the resolved config and exit")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  DOCPRETTIFY_CONFIG, DOCPRETTIFY_DOC_ROOT, DOCPRETTIFY_SOURCE_URL,")
	fmt.Fprintln(w, "  DOCPRETTIFY_THEME, DOCPRETTIFY_TIMEOUT")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit status:")
	fmt.Fprintln(w, "  0  success")
	fmt.Fprintln(w, "  1  I/O error while rewriting pages, or interrupted")
	fmt.Fprintln(w, "  2  bad usage or config, asset download failed, or a backup failed")
}

// printBanner prints the verbose startup summary.
func printBanner(w io.Writer, p *runParams) {
	fmt.Fprintf(w, "docprettify version %s.\n", Version)
	fmt.Fprintln(w, "Starting process. Configurable variables:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  DOC_ROOT: %s\n", p.job.Assets.DocRoot)
	fmt.Fprintf(w, "  PRETTIFY_CSS_PATH: %s\n", p.job.Assets.CSSPath())
	fmt.Fprintf(w, "  PRETTIFY_JS_PATH: %s\n", p.job.Assets.JSPath())
	fmt.Fprintf(w, "  PRETTIFY_URL: %s\n", p.job.Assets.SourceURL)
	if p.job.Assets.Theme != "" {
		fmt.Fprintf(w, "  THEME: %s\n", p.job.Assets.Theme)
	}
	fmt.Fprintf(w, "  TIMEOUT: %s\n", p.timeout)
	fmt.Fprintln(w)
}
