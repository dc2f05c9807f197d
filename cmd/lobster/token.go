package main

import (
	"fmt"

	"github.com/aretw0/lobster/internal/auth"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for a player",
	Long:  `Signs a token with the configured JWT key, as POST /api/token does.`,
	Run: func(cmd *cobra.Command, args []string) {
		userID, _ := cmd.Flags().GetString("user")
		userName, _ := cmd.Flags().GetString("name")
		if userName == "" {
			userName = userID
		}

		if err := cfg.Validate(true); err != nil {
			fail("Invalid configuration", err)
		}
		authority, err := auth.New(auth.Config{
			Key:      []byte(cfg.JWTKey),
			Issuer:   cfg.JWTIssuer,
			Audience: cfg.JWTAudience,
			Subject:  cfg.JWTSubject,
			TTL:      cfg.JWTTTL,
		})
		if err != nil {
			fail("Error initializing auth", err)
		}

		token, err := authority.Issue(auth.Identity{UserID: userID, UserName: userName})
		if err != nil {
			fail("Error issuing token", err)
		}
		fmt.Println(auth.BearerPrefix + token)
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().StringP("user", "u", "", "Player user id (required)")
	tokenCmd.Flags().StringP("name", "n", "", "Player display name (defaults to the user id)")
	_ = tokenCmd.MarkFlagRequired("user")
}
