package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/lobster/internal/presentation/tui"
	"github.com/aretw0/lobster/pkg/ports"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage player sessions",
	Long:  `List, inspect, and remove the per-player copies of the adventure.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all players with a session",
	Run: func(cmd *cobra.Command, args []string) {
		engine, release, err := newEngine(nil, nil)
		if err != nil {
			fail("Error initializing lobster", err)
		}
		defer release()

		users, err := engine.ListSessions(cmd.Context())
		if err != nil {
			release()
			if errors.Is(err, ports.ErrKeysUnsupported) {
				fail("Error listing sessions", fmt.Errorf("backend %q cannot enumerate sessions: %w", cfg.Backend, err))
			}
			fail("Error listing sessions", err)
		}

		if len(users) == 0 {
			fmt.Println("No active sessions found.")
			return
		}

		fmt.Println("Active Sessions:")
		for _, u := range users {
			fmt.Println("- " + u)
		}
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <user-id>",
	Short: "Inspect the progress of a player",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		userID := args[0]
		engine, release, err := newEngine(nil, nil)
		if err != nil {
			fail("Error initializing lobster", err)
		}
		defer release()

		tree, err := engine.UserSession(cmd.Context(), userID)
		if err != nil {
			release()
			fail(fmt.Sprintf("Error loading session '%s'", userID), err)
		}

		fmt.Printf("Selected: %v\n", tree.SelectedIDs())
		fmt.Printf("Frontier: %v\n", tree.Frontier())
		if err := printNode(tree.Root(), "json"); err != nil {
			release()
			fail("Error printing session", err)
		}
	},
}

var sessionResultCmd = &cobra.Command{
	Use:   "result <user-id>",
	Short: "Print the path a player took",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		userID := args[0]
		format, _ := cmd.Flags().GetString("format")
		engine, release, err := newEngine(nil, nil)
		if err != nil {
			fail("Error initializing lobster", err)
		}
		defer release()

		path, err := engine.UserResult(cmd.Context(), userID)
		if err != nil {
			release()
			fail(fmt.Sprintf("Error loading result of '%s'", userID), err)
		}

		if format == "tree" {
			fmt.Print(tui.PathMarkdown(path))
			return
		}
		if err := printNode(path, format); err != nil {
			release()
			fail("Error printing result", err)
		}
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <user-id>...",
	Short: "Remove one or more sessions",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine, release, err := newEngine(nil, nil)
		if err != nil {
			fail("Error initializing lobster", err)
		}
		defer release()
		hasError := false

		for _, userID := range args {
			if err := engine.ResetUserAdventure(cmd.Context(), userID); err != nil {
				fmt.Fprintf(os.Stderr, "Error removing '%s': %v\n", userID, err)
				hasError = true
			} else {
				fmt.Printf("Removed session '%s'\n", userID)
			}
		}

		if hasError {
			release()
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionResultCmd)
	sessionCmd.AddCommand(sessionRmCmd)
	sessionResultCmd.Flags().StringP("format", "f", "tree", "Output format: tree, json or yaml")
}
