package docprettify_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-docprettify"
)

// ExampleInjectAssets shows the markup added to a javadoc page one level
// below the docroot.
func ExampleInjectAssets() {
	page := "<head>\n<body onload=\"windowTitle();\">\n"
	snippet := docprettify.Snippet(docprettify.DefaultAssetConfig("docs/"), 1)

	out := docprettify.InjectAssets(page, snippet)
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			fmt.Println(line)
		}
	}
	// Output:
	// <head>
	// <link href="../css/prettify.css" type="text/css" rel="stylesheet" />
	// <script type="text/javascript" src="../js/prettify.js"></script>
	// <body onload="prettyPrint(); windowTitle();">
}

// ExampleWalk rewrites every page containing <pre in an existing tree.
func ExampleWalk() {
	root, err := os.MkdirTemp("", "docs-*")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer os.RemoveAll(root)

	page := filepath.Join(root, "Foo.html")
	_ = os.WriteFile(page, []byte("<head>\n<pre>code</pre>\n"), 0o644)

	rw := docprettify.NewRewriter(docprettify.DefaultAssetConfig(root))
	if err := docprettify.Walk(root, "<pre", "html", rw.Rewrite); err != nil {
		fmt.Println("error:", err)
		return
	}

	data, _ := os.ReadFile(page)
	fmt.Println(rw.Stats().Rewritten, strings.Contains(string(data), "prettify.js"))
	// Output: 1 true
}
