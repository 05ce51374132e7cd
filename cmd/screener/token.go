package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/intellihire/internal/server"
)

var (
	tokenSubject string
	tokenScope   string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for API write access",
	Long:  "Sign a JWT with jwt.secret (JWT_SECRET). Write routes require it when a secret is configured.",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "Who the token is issued to (required)")
	tokenCmd.Flags().StringVar(&tokenScope, "scope", "write", "Token scope claim")
	_ = tokenCmd.MarkFlagRequired("subject")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	jwtCfg, err := a.cfg.RequireSecret()
	if err != nil {
		return err
	}
	token, expiresAt, err := server.NewJWTService(jwtCfg).GenerateToken(tokenSubject, tokenScope)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, token)
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expiresAt.UTC().Format(time.RFC3339))
	return nil
}
