package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/fluxlocale/weft"
	"github.com/fluxlocale/weft/cms"
	"github.com/fluxlocale/weft/provider"
	"github.com/fluxlocale/weft/settings"
	"github.com/fluxlocale/weft/webflow"
	"github.com/spf13/cobra"
)

var (
	flagLocales   string
	flagReview    bool
	flagDryRun    bool
	flagCMSConfig string
)

func newTranslateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate a page, component or CMS item",
		Long: `Translate the text content of a page, component or CMS item into
the site's secondary locales and write each translation back under
its locale.

Locales are processed one at a time in the site's configured order,
with a fixed delay between them. A locale that fails is reported and
the run continues with the next one.

With --review each translation pauses before the write: the flat text
opens in $EDITOR, line per text node. Save to apply edits, save an
empty file to skip the locale.`,
	}

	cmd.PersistentFlags().StringVar(&flagLocales, "locales", "", "Locale tags to translate (comma-separated, default: all secondary)")
	cmd.PersistentFlags().BoolVar(&flagReview, "review", false, "Review each translation in $EDITOR before writing")
	cmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "Translate and report, but write nothing")

	cmd.AddCommand(newTranslatePageCmd(), newTranslateComponentCmd(), newTranslateItemCmd())
	return cmd
}

// ---------------------------------------------------------------------------
// translate page / component
// ---------------------------------------------------------------------------

func newTranslatePageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "page <page-id>",
		Short: "Translate a page's text nodes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pageID := args[0]
			client, siteID, err := newClient()
			if err != nil {
				return err
			}
			siteID, err = requireSite(siteID)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			tree, err := client.PageDOM(ctx, pageID)
			if err != nil {
				return err
			}
			targets, err := resolveTargets(ctx, client, siteID, false)
			if err != nil {
				return err
			}

			write := client.PageWriter(pageID)
			return runBatch(ctx, weft.Extract(tree), targets, write, "page "+pageID)
		},
	}
}

func newTranslateComponentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "component <component-id>",
		Short: "Translate a component's text nodes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			componentID := args[0]
			client, siteID, err := newClient()
			if err != nil {
				return err
			}
			siteID, err = requireSite(siteID)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			tree, err := client.ComponentDOM(ctx, siteID, componentID)
			if err != nil {
				return err
			}
			targets, err := resolveTargets(ctx, client, siteID, false)
			if err != nil {
				return err
			}

			write := client.ComponentWriter(siteID, componentID)
			return runBatch(ctx, weft.Extract(tree), targets, write, "component "+componentID)
		},
	}
}

// ---------------------------------------------------------------------------
// translate item
// ---------------------------------------------------------------------------

func newTranslateItemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item <collection-id> <item-id>",
		Short: "Translate a CMS collection item",
		Long: `Translate the configured text fields of a collection item and
write a localized item variant per CMS locale. Fields outside the
collection's translate list pass through unchanged; the slug and
other preserved fields keep their primary-locale values.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			collectionID, itemID := args[0], args[1]
			client, siteID, err := newClient()
			if err != nil {
				return err
			}
			siteID, err = requireSite(siteID)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			cfg, err := cms.LoadConfig(flagCMSConfig)
			if err != nil {
				return err
			}
			collCfg, err := matchCollection(ctx, client, siteID, collectionID, cfg)
			if err != nil {
				return err
			}

			item, err := client.Item(ctx, collectionID, itemID, "")
			if err != nil {
				return err
			}
			projection := cms.Project(item.FieldData, collCfg)
			if projection.IsEmpty() {
				logWarning("No translatable fields on %s", cms.Identifier(item.FieldData, collCfg, itemID))
				return nil
			}

			targets, err := resolveTargets(ctx, client, siteID, true)
			if err != nil {
				return err
			}

			write := itemWriter(client, collectionID, item)
			label := fmt.Sprintf("item %s", cms.Identifier(item.FieldData, collCfg, itemID))
			return runBatch(ctx, projection, targets, write, label)
		},
	}
	cmd.Flags().StringVar(&flagCMSConfig, "cms-config", "", "Collection config YAML (default: built-in)")
	return cmd
}

// matchCollection resolves the collection's display name and finds its
// field configuration.
func matchCollection(ctx context.Context, client *webflow.Client, siteID, collectionID string, cfg cms.Config) (cms.CollectionConfig, error) {
	collections, err := client.Collections(ctx, siteID)
	if err != nil {
		return cms.CollectionConfig{}, err
	}
	for _, c := range collections {
		if c.ID == collectionID {
			if cc, ok := cfg.Match(c.DisplayName); ok {
				return cc, nil
			}
			return cms.CollectionConfig{}, fmt.Errorf("no field configuration for collection %q", c.DisplayName)
		}
	}
	return cms.CollectionConfig{}, fmt.Errorf("collection %s not found on site", collectionID)
}

// itemWriter adapts a collection item update to the batch write callback.
// Translated fields replace the source values; everything else passes
// through from the primary-locale item. The write targets the CMS locale
// identifier, not the DOM locale identifier.
func itemWriter(client *webflow.Client, collectionID string, item *webflow.Item) weft.WriteFunc {
	return func(ctx context.Context, target weft.LocaleTarget, req weft.WriteRequest) error {
		fields := make(map[string]any, len(item.FieldData))
		for k, v := range item.FieldData {
			fields[k] = v
		}
		for _, node := range req.Nodes {
			if node.Text == "" {
				continue
			}
			if _, ok := fields[node.NodeID]; ok {
				fields[node.NodeID] = node.Text
			}
		}
		return client.UpdateItem(ctx, collectionID, item.ID, target.CMSLocaleID, fields, item.IsDraft, item.IsArchived)
	}
}

// ---------------------------------------------------------------------------
// Batch execution
// ---------------------------------------------------------------------------

// resolveTargets loads the site's secondary locales and applies the
// --locales tag filter. forCMS selects the CMS-enabled target set.
func resolveTargets(ctx context.Context, client *webflow.Client, siteID string, forCMS bool) ([]weft.LocaleTarget, error) {
	locales, err := client.SiteLocales(ctx, siteID)
	if err != nil {
		return nil, err
	}
	targets := locales.Targets()
	if forCMS {
		targets = locales.CMSTargets()
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("site has no secondary locales")
	}
	if flagLocales == "" {
		return targets, nil
	}

	wanted := strings.Split(flagLocales, ",")
	var filtered []weft.LocaleTarget
	for _, t := range targets {
		for _, w := range wanted {
			if weft.SameLanguage(t.Tag, strings.TrimSpace(w)) {
				filtered = append(filtered, t)
				break
			}
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("no secondary locale matches --locales=%s", flagLocales)
	}
	return filtered, nil
}

func runBatch(ctx context.Context, projection weft.Projection, targets []weft.LocaleTarget, write weft.WriteFunc, label string) error {
	if projection.IsEmpty() {
		logWarning("Nothing to translate on %s", label)
		return nil
	}

	creds, err := settings.Load()
	if err != nil {
		return err
	}
	apiKey := resolveOpenAIKey(creds)
	if apiKey == "" {
		return fmt.Errorf("no OpenAI key: pass --openai-key, set OPENAI_API_KEY, or run 'weft auth set'")
	}
	p := provider.NewOpenAIProvider(provider.OpenAIConfig{
		APIKey: apiKey,
		Model:  flagModel,
	})

	if flagDryRun {
		write = func(ctx context.Context, target weft.LocaleTarget, req weft.WriteRequest) error {
			logInfo("[dry-run] would write %d nodes to %s", len(req.Nodes), target.Tag)
			return nil
		}
	}

	opts := []weft.BatchOption{}
	if flagReview {
		opts = append(opts, weft.WithReviewer(newEditorReviewer()))
	}

	logInfo("Translating %s: %d text leaves, %d locales", label, projection.LeafCount(), len(targets))
	run := weft.NewBatchRun(projection, targets, p, write, opts...)

	failed := 0
	for {
		out, ok := run.Next(ctx)
		if !ok {
			break
		}
		name := out.Target.Tag
		if out.Target.DisplayName != "" {
			name = fmt.Sprintf("%s (%s)", out.Target.DisplayName, out.Target.Tag)
		}
		switch out.State {
		case weft.StateSucceeded:
			logSuccess("%s", name)
		case weft.StateSkipped:
			if out.Err != nil {
				logWarning("%s: review failed: %v", name, out.Err)
			} else {
				logWarning("%s: skipped by reviewer", name)
			}
		default:
			failed++
			logError("%s: %v", name, out.Err)
		}
		if ctx.Err() != nil {
			logWarning("Interrupted at locale %d of %d", run.Index(), run.Len())
			break
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d locales failed", failed, len(targets))
	}
	return nil
}

// signalContext cancels on the first interrupt so the current locale's
// request unwinds; a second interrupt kills the process.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		logWarning("Interrupt received, finishing current locale...")
		cancel()
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}
