package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	jwttoken "portal/internal/jwt_token"
	"portal/internal/licenses"
	"portal/internal/partner"
	"portal/internal/plans"
	"portal/internal/platform/config"
	"portal/internal/platform/wpcom"
)

// loadConfig is swapped in tests.
var loadConfig = config.Load

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "licensectl",
		Short:         "Partner portal operator tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newFetchCmd(), newTokenCmd(), newCatalogCmd())
	return root
}

func newFetchCmd() *cobra.Command {
	var (
		keyID  int64
		status string
	)
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch licenses from the licensing API and print them as JSON",
		Long: `Fetch licenses for a partner key and print the normalized records.

Without --key-id no key_id parameter is sent and the API answers for the
token's default key.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			var filter licenses.Status
			if status != "" {
				if filter, err = licenses.ParseStatus(status); err != nil {
					return err
				}
			}
			api, err := wpcom.New(cfg.WPCOM.BaseURL,
				wpcom.WithToken(cfg.WPCOM.Token),
				wpcom.WithTimeout(cfg.WPCOM.Timeout),
				wpcom.WithUserAgent("licensectl"),
			)
			if err != nil {
				return err
			}
			records, err := licenses.NewAPIClient(api).FetchLicenses(cmd.Context(), partner.KeyID(keyID))
			if err != nil {
				return fmt.Errorf("fetch licenses (%s): %w", wpcom.CategoryOf(err), err)
			}
			all := licenses.Normalize(records)
			if filter != "" {
				all = licenses.FilterByStatus(all, filter)
			}
			return writeJSON(cmd.OutOrStdout(), all)
		},
	}
	cmd.Flags().Int64Var(&keyID, "key-id", 0, "partner key id; 0 sends no key")
	cmd.Flags().StringVar(&status, "status", "", "only print attached, detached or revoked licenses")
	return cmd
}

func newTokenCmd() *cobra.Command {
	var (
		subject   string
		partnerID string
		ttl       time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a partner API bearer token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if ttl <= 0 {
				ttl = cfg.Auth.TokenTTL
			}
			svc := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)
			token, err := svc.GenerateAccessToken(subject, partnerID, ttl)
			if err != nil {
				return err
			}
			if cfg.UsesDevSigningKey() {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: signed with the development key")
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "token subject, usually the operator or user name")
	cmd.Flags().StringVar(&partnerID, "partner", "", "partner id the token is scoped to")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime; defaults to the configured TTL")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func newCatalogCmd() *cobra.Command {
	catalog := &cobra.Command{
		Use:   "catalog",
		Short: "Work with plans catalogs",
	}
	validate := &cobra.Command{
		Use:   "validate <file>",
		Short: "Parse and validate a plans catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := plans.LoadCatalog(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d plans, %d products, %d features\n",
				len(c.Plans), len(c.Products), len(c.Features))
			return err
		},
	}
	catalog.AddCommand(validate)
	return catalog
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
