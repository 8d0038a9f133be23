package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yoockh/languageclub/config"
	"github.com/yoockh/languageclub/internal/auth"
)

var mintEmail string

// mintTokenCmd issues the same token POST /jwt would, for operators seeding
// an admin or scripting against the API.
var mintTokenCmd = &cobra.Command{
	Use:   "mint-token",
	Short: "Print a signed access token for an email",
	RunE: func(cmd *cobra.Command, args []string) error {
		if mintEmail == "" {
			return errors.New("--email is required")
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		tok, err := auth.NewIssuer(cfg.AccessSecret).Issue(map[string]any{"email": mintEmail})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	mintTokenCmd.Flags().StringVar(&mintEmail, "email", "", "email claim to sign")
}
