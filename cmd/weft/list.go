package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fluxlocale/weft"
	"github.com/spf13/cobra"
)

// ---------------------------------------------------------------------------
// locales (site locale configuration)
// ---------------------------------------------------------------------------

func newLocalesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List the site's locale configuration",
		Long: `List the primary locale and the secondary locales with both
identifier spaces: the locale ID used for DOM writes and the CMS
locale ID used for collection item writes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, siteID, err := newClient()
			if err != nil {
				return err
			}
			siteID, err = requireSite(siteID)
			if err != nil {
				return err
			}

			locales, err := client.SiteLocales(cmd.Context(), siteID)
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "\n%sLocales%s\n", colorBlue, colorReset)
			fmt.Fprintln(os.Stderr, strings.Repeat("─", 72))
			fmt.Fprintf(os.Stderr, "%-10s %-22s %-26s %s\n", "Tag", "Name", "Locale ID", "CMS Locale ID")
			fmt.Fprintln(os.Stderr, strings.Repeat("─", 72))

			for i, loc := range locales.All() {
				name := loc.DisplayName
				if name == "" {
					name = weft.LanguageName(loc.Tag)
				}
				if i == 0 {
					name += " (primary)"
				}
				fmt.Fprintf(os.Stderr, "%-10s %-22s %-26s %s\n", loc.Tag, name, loc.ID, loc.CMSLocaleID)
			}
			fmt.Fprintln(os.Stderr)
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// pages, components, collections, items
// ---------------------------------------------------------------------------

func newPagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pages",
		Short: "List site pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, siteID, err := newClient()
			if err != nil {
				return err
			}
			siteID, err = requireSite(siteID)
			if err != nil {
				return err
			}

			pages, err := client.Pages(cmd.Context(), siteID)
			if err != nil {
				return err
			}
			for _, p := range pages {
				fmt.Printf("%s  %s (/%s)\n", p.ID, p.Title, p.Slug)
			}
			logInfo("%d pages", len(pages))
			return nil
		},
	}
}

func newComponentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "components",
		Short: "List site components",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, siteID, err := newClient()
			if err != nil {
				return err
			}
			siteID, err = requireSite(siteID)
			if err != nil {
				return err
			}

			components, err := client.Components(cmd.Context(), siteID)
			if err != nil {
				return err
			}
			for _, c := range components {
				fmt.Printf("%s  %s\n", c.ID, c.Name)
			}
			logInfo("%d components", len(components))
			return nil
		},
	}
}

func newCollectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collections",
		Short: "List CMS collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, siteID, err := newClient()
			if err != nil {
				return err
			}
			siteID, err = requireSite(siteID)
			if err != nil {
				return err
			}

			collections, err := client.Collections(cmd.Context(), siteID)
			if err != nil {
				return err
			}
			for _, c := range collections {
				fmt.Printf("%s  %s (%s)\n", c.ID, c.DisplayName, c.Slug)
			}
			logInfo("%d collections", len(collections))
			return nil
		},
	}
}

func newItemsCmd() *cobra.Command {
	var (
		offset int
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "items <collection-id>",
		Short: "List items of a CMS collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient()
			if err != nil {
				return err
			}

			items, err := client.Items(cmd.Context(), args[0], offset, limit)
			if err != nil {
				return err
			}
			for _, it := range items {
				name, _ := it.FieldData["name"].(string)
				marks := ""
				if it.IsDraft {
					marks += " [draft]"
				}
				if it.IsArchived {
					marks += " [archived]"
				}
				fmt.Printf("%s  %s%s\n", it.ID, name, marks)
			}
			logInfo("%d items (offset %d)", len(items), offset)
			return nil
		},
	}
	cmd.Flags().IntVar(&offset, "offset", 0, "Pagination offset")
	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum items to return")
	return cmd
}
