// Package weft translates structured site content across locales while
// preserving the content tree's node identities.
//
// Weft extracts translatable leaf text from page and component DOM trees
// into a flat projection, translates the projection with an AI provider
// under terminology preservation rules, reconciles optional reviewer edits
// back into the structure, and replays the result against the remote
// content store one locale at a time.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/fluxlocale/weft"
//	    "github.com/fluxlocale/weft/provider"
//	    "github.com/fluxlocale/weft/webflow"
//	)
//
//	func main() {
//	    store := webflow.New(os.Getenv("WEBFLOW_TOKEN"))
//	    tree, err := store.PageDOM(ctx, pageID)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    locales, err := store.SiteLocales(ctx, siteID)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    p := provider.NewOpenAIProvider(provider.OpenAIConfig{
//	        APIKey: os.Getenv("OPENAI_API_KEY"),
//	    })
//
//	    run := weft.NewBatchRun(weft.Extract(tree), locales.Targets(), p, store.PageWriter(pageID))
//	    for _, out := range run.Run(ctx) {
//	        fmt.Printf("%s: %s\n", out.Target.DisplayName, out.State)
//	    }
//	}
package weft
