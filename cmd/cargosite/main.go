// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/olegiv/cargo-site/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func versionInfo() version.Info {
	return version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cargosite",
		Short: "Content API and contact-form backend of the cargo company site",
		Long: `cargosite serves page data assembled from the Directus CMS and
accepts the callback and review forms of the public site.

Configuration is read from the environment (and a .env file if present):
  DIRECTUS_URL          CMS base URL (required)
  SITE_LOCALES          Supported locales (default: ru,en)
  SITE_REDIS_URL        Redis URL for the page cache (optional)
  MAIL_HOST             SMTP host; submissions are only logged when unset`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "paths",
			Short: "Print every news detail path as JSON for prerendering",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runPaths(cmd.Context(), cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Show version information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cargosite %s\n", versionInfo())
			},
		},
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}
