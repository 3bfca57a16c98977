// Package docprettify adds syntax highlighting to generated HTML documentation
// using google-code-prettify.
//
// # Quick Start
//
// Run the whole pipeline over a javadoc tree:
//
//	svc := docprettify.New(docprettify.WithVerbose(true), docprettify.WithOutput(os.Stderr))
//	stats, err := svc.Run(ctx, docprettify.Job{
//	    Assets: docprettify.DefaultAssetConfig("docs/"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d files prettified\n", stats.Rewritten)
//
// # Pipeline
//
//  1. Provisioning: when prettify.css or prettify.js is missing under the
//     docroot, the release archive is downloaded, unpacked and both files
//     are moved into place. An optional chroma theme replaces the stylesheet.
//  2. Walking: every file whose name ends with the suffix (default "html")
//     and whose content contains the marker (default "<pre", any case) is
//     handed to the rewriter together with its depth below the docroot.
//  3. Rewriting: the page gets the stylesheet and script references after
//     <head>, relative to its depth, and prettyPrint() is chained into the
//     javadoc body onload hook. The previous content is kept as <page>.old.
//
// Rewriting is not idempotent. Running twice over the same tree adds the
// references twice; restore the .old files first.
//
// # Components
//
// Each stage is usable on its own:
//
//	p := docprettify.NewProvisioner(docprettify.WithTimeout(time.Minute))
//	err := p.Ensure(ctx, assets)
//
//	rw := docprettify.NewRewriter(assets)
//	err = docprettify.Walk("docs/", "<pre", "html", rw.Rewrite)
//
// Provisioning failures wrap ErrProvision. Use errors.Is with the other
// sentinel errors for details.
package docprettify
