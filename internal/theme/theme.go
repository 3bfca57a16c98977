// Package theme renders prettify-compatible stylesheets from chroma styles.
//
// google-code-prettify tags tokens with short class names (.kwd, .str, ...).
// Chroma ships a large set of editor colour schemes keyed by token type.
// This package maps one onto the other so a documentation tree can use any
// chroma scheme without hand-writing CSS.
package theme

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrUnknownTheme indicates the requested chroma style does not exist.
var ErrUnknownTheme = errors.New("unknown theme")

// tokenRule binds prettify classes to the chroma token type that styles them.
type tokenRule struct {
	selector string
	token    chroma.TokenType
}

// tokenRules lists prettify's token classes in the order prettify.css declares them.
var tokenRules = []tokenRule{
	{".pln", chroma.Text},
	{".str", chroma.LiteralString},
	{".kwd", chroma.Keyword},
	{".com", chroma.Comment},
	{".typ", chroma.KeywordType},
	{".lit", chroma.LiteralNumber},
	{".pun, .opn, .clo", chroma.Punctuation},
	{".tag", chroma.NameTag},
	{".atn", chroma.NameAttribute},
	{".atv", chroma.LiteralString},
	{".dec", chroma.CommentPreproc},
	{".var", chroma.NameVariable},
	{".fun", chroma.NameFunction},
}

// Names returns the available theme names, sorted.
func Names() []string {
	names := styles.Names()
	sort.Strings(names)
	return names
}

// Exists reports whether a theme with the given name is registered.
func Exists(name string) bool {
	for _, n := range styles.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Stylesheet renders the prettify stylesheet for the named chroma style.
func Stylesheet(name string) (string, error) {
	if !Exists(name) {
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return render(name, styles.Get(name)), nil
}

func render(name string, style *chroma.Style) string {
	var b strings.Builder

	fmt.Fprintf(&b, "/* prettify theme generated from the chroma %q style */\n", name)

	bg := style.Get(chroma.Background)
	b.WriteString("pre.prettyprint {")
	if bg.Background.IsSet() {
		fmt.Fprintf(&b, " background: %s;", bg.Background)
	}
	if bg.Colour.IsSet() {
		fmt.Fprintf(&b, " color: %s;", bg.Colour)
	}
	b.WriteString(" padding: 2px; border: 1px solid #888; }\n")

	for _, rule := range tokenRules {
		decl := declarations(style.Get(rule.token))
		if decl == "" {
			continue
		}
		fmt.Fprintf(&b, "%s {%s }\n", rule.selector, decl)
	}

	b.WriteString("ol.linenums { margin-top: 0; margin-bottom: 0; }\n")
	return b.String()
}

// declarations renders the CSS declarations of a style entry, each with a
// leading space. Background colours are left to pre.prettyprint.
func declarations(entry chroma.StyleEntry) string {
	var b strings.Builder
	if entry.Colour.IsSet() {
		fmt.Fprintf(&b, " color: %s;", entry.Colour)
	}
	if entry.Bold == chroma.Yes {
		b.WriteString(" font-weight: bold;")
	}
	if entry.Italic == chroma.Yes {
		b.WriteString(" font-style: italic;")
	}
	if entry.Underline == chroma.Yes {
		b.WriteString(" text-decoration: underline;")
	}
	return b.String()
}
