// weft — node-preserving AI translation for hosted site content.
package main

import (
	"fmt"
	"os"

	"github.com/fluxlocale/weft"
	"github.com/fluxlocale/weft/cache"
	"github.com/fluxlocale/weft/settings"
	"github.com/fluxlocale/weft/webflow"
	"github.com/spf13/cobra"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flags — inherited by all subcommands
// ---------------------------------------------------------------------------

var (
	flagSite      string
	flagToken     string
	flagOpenAIKey string
	flagModel     string
	flagRedisURL  string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "weft",
		Short: weft.Description,
		Long: `weft — node-preserving AI translation for hosted site content.

Reads pages, components and CMS items from a Webflow site, extracts the
translatable text while keeping the node structure intact, translates it
with an AI backend, and writes the result back per secondary locale.
Brand terms are preserved verbatim; HTML markup inside rich text survives
the round trip node by node.

Commands:
  auth        Store or inspect credentials
  locales     List the site's locale configuration
  pages       List site pages
  components  List site components
  collections List CMS collections
  items       List items of a CMS collection
  translate   Translate a page, component or CMS item

Credentials resolve in order: flag, environment variable
(WEFT_WEBFLOW_TOKEN, OPENAI_API_KEY, WEFT_SITE_ID), stored auth file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagSite, "site", "", "Site ID")
	root.PersistentFlags().StringVar(&flagToken, "token", "", "Webflow API token")
	root.PersistentFlags().StringVar(&flagOpenAIKey, "openai-key", "", "OpenAI API key")
	root.PersistentFlags().StringVar(&flagModel, "model", "", "Translation model (default: gpt-4o-mini)")
	root.PersistentFlags().StringVar(&flagRedisURL, "redis", "", "Redis URL for the metadata cache (optional)")

	root.AddCommand(
		newAuthCmd(),
		newLocalesCmd(),
		newPagesCmd(),
		newComponentsCmd(),
		newCollectionsCmd(),
		newItemsCmd(),
		newTranslateCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", weft.Name, weft.Version)
			fmt.Printf("  commit:    %s\n", weft.GitCommit)
			fmt.Printf("  built:     %s\n", weft.BuildDate)
		},
	}
}

// ---------------------------------------------------------------------------
// auth (store and inspect credentials)
// ---------------------------------------------------------------------------

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Store or inspect credentials",
	}
	cmd.AddCommand(newAuthSetCmd(), newAuthStatusCmd())
	return cmd
}

func newAuthSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set",
		Short: "Store credentials from the global flags",
		Long: `Persist --site, --token and --openai-key to the auth file
(owner-only permissions, XDG data directory). Flags left unset keep
their stored value.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := settings.Load()
			if err != nil {
				return err
			}
			if flagSite != "" {
				creds.SiteID = flagSite
			}
			if flagToken != "" {
				creds.WebflowToken = flagToken
			}
			if flagOpenAIKey != "" {
				creds.OpenAIKey = flagOpenAIKey
			}
			if err := settings.Save(creds); err != nil {
				return err
			}
			path, _ := settings.Path()
			logSuccess("Credentials saved to %s", path)
			return nil
		},
	}
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which credentials are stored and verify the token",
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := settings.Load()
			if err != nil {
				return err
			}
			show := func(name, value string) {
				if value != "" {
					fmt.Fprintf(os.Stderr, "  %-12s set\n", name)
				} else {
					fmt.Fprintf(os.Stderr, "  %-12s (not set)\n", name)
				}
			}
			show("site:", creds.SiteID)
			show("token:", creds.WebflowToken)
			show("openai-key:", creds.OpenAIKey)

			token := resolveToken(creds)
			if token == "" {
				return nil
			}
			client := webflow.New(token)
			if err := client.ValidateToken(cmd.Context()); err != nil {
				logWarning("Token check failed: %v", err)
				return nil
			}
			logSuccess("Token is valid")
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// Credential and client resolution
// ---------------------------------------------------------------------------

func resolveToken(creds settings.Credentials) string {
	if flagToken != "" {
		return flagToken
	}
	if v := os.Getenv("WEFT_WEBFLOW_TOKEN"); v != "" {
		return v
	}
	return creds.WebflowToken
}

func resolveSite(creds settings.Credentials) string {
	if flagSite != "" {
		return flagSite
	}
	if v := os.Getenv("WEFT_SITE_ID"); v != "" {
		return v
	}
	return creds.SiteID
}

func resolveOpenAIKey(creds settings.Credentials) string {
	if flagOpenAIKey != "" {
		return flagOpenAIKey
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		return v
	}
	return creds.OpenAIKey
}

// newClient resolves credentials and builds the API client. The metadata
// cache is Redis when --redis is given and reachable, in-memory otherwise.
func newClient() (*webflow.Client, string, error) {
	creds, err := settings.Load()
	if err != nil {
		return nil, "", err
	}
	token := resolveToken(creds)
	if token == "" {
		return nil, "", fmt.Errorf("no Webflow token: pass --token, set WEFT_WEBFLOW_TOKEN, or run 'weft auth set'")
	}

	mc := newMetadataCache()
	client := webflow.New(token, webflow.WithCache(mc))
	return client, resolveSite(creds), nil
}

func newMetadataCache() cache.MetadataCache {
	if flagRedisURL == "" {
		return cache.NewInMemoryCache(300)
	}
	rc, err := cache.NewRedisCache(cache.RedisConfig{URL: flagRedisURL, TTL: 300})
	if err != nil {
		logWarning("Redis unavailable, using in-memory cache: %v", err)
		return cache.NewInMemoryCache(300)
	}
	return rc
}

func requireSite(siteID string) (string, error) {
	if siteID == "" {
		return "", fmt.Errorf("no site ID: pass --site, set WEFT_SITE_ID, or run 'weft auth set --site <id>'")
	}
	return siteID, nil
}
