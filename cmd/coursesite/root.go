// ABOUTME: Root cobra command, shared flags, and assembly of config, site definition, content, and site.
// ABOUTME: Flags override settings loaded from the environment, .env, and the optional config file.
package main

import (
	"fmt"

	"github.com/2389-research/coursesite/config"
	"github.com/2389-research/coursesite/content"
	"github.com/2389-research/coursesite/site"
	"github.com/2389-research/coursesite/web"
	"github.com/spf13/cobra"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	siteFile   string
	contentDir string
	cssBundle  string
}

// app is everything a subcommand needs.
type app struct {
	cfg  *config.Config
	site *site.Site
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:   "coursesite",
		Short: "Serve and inspect the course site",
		Long: `coursesite serves a small course site: an index page, a courses section
nested in a layout, and a navigation bar mounted on every page.

Settings come from COURSESITE_* environment variables, a .env file, and an
optional coursesite.yaml (or the file named by COURSESITE_CONFIG).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.siteFile, "site-file", "", "site definition YAML (default: embedded)")
	pf.StringVar(&flags.contentDir, "content-dir", "", "markdown content directory (default: embedded)")
	pf.StringVar(&flags.cssBundle, "css-bundle", "", "href of a prebuilt CSS bundle")

	root.AddCommand(
		newServeCmd(&flags),
		newRoutesCmd(&flags),
		newRenderCmd(&flags),
		newPreviewCmd(&flags),
		newVersionCmd(),
	)
	return root
}

// loadConfig reads settings and applies any flags the user set explicitly.
func loadConfig(cmd *cobra.Command, flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	fs := cmd.Flags()
	if fs.Changed("site-file") {
		cfg.SiteFile = flags.siteFile
	}
	if fs.Changed("content-dir") {
		cfg.ContentDir = flags.contentDir
	}
	if fs.Changed("css-bundle") {
		cfg.CSSBundle = flags.cssBundle
	}
	return cfg, nil
}

// buildApp loads configuration and assembles the site.
func buildApp(cmd *cobra.Command, flags *globalFlags) (*app, error) {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return nil, err
	}
	s, err := buildSite(cfg)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, site: s}, nil
}

func buildSite(cfg *config.Config) (*site.Site, error) {
	def, err := loadDefinition(cfg.SiteFile)
	if err != nil {
		return nil, err
	}

	docs, err := content.Open(content.Options{
		Dir:            cfg.ContentDir,
		HighlightStyle: def.HighlightStyle,
		CacheTTL:       cfg.CacheTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("opening content: %w", err)
	}

	opts := site.Options{Docs: docs, Bundle: cfg.CSSBundle}
	if cfg.LiveReload {
		opts.LiveReload = web.LiveReloadPath
	}
	s, err := site.Build(def, opts)
	if err != nil {
		return nil, fmt.Errorf("building site: %w", err)
	}
	return s, nil
}

func loadDefinition(path string) (*site.Definition, error) {
	if path == "" {
		return site.Default()
	}
	return site.Load(path)
}
