package main

import (
	"fmt"

	"github.com/aretw0/lobster/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the adventure as a Mermaid diagram",
	Long: `Outputs a Mermaid diagram (graph TD) of the adventure template. With --user,
the player's session is drawn instead, highlighting the selected path and the
choices available next.`,
	Run: func(cmd *cobra.Command, args []string) {
		userID, _ := cmd.Flags().GetString("user")

		engine, release, err := newEngine(nil, nil)
		if err != nil {
			fail("Error initializing lobster", err)
		}
		defer release()

		if userID == "" {
			root, err := engine.Adventure(cmd.Context())
			if err != nil {
				release()
				fail("Error loading adventure", err)
			}
			fmt.Print(graph.GenerateMermaid(root, nil))
			return
		}

		tree, err := engine.UserSession(cmd.Context(), userID)
		if err != nil {
			release()
			fail(fmt.Sprintf("Error loading session '%s'", userID), err)
		}
		fmt.Print(graph.GenerateMermaid(tree.Root(), graph.OverlayFromTree(tree)))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("user", "u", "", "Overlay the progress of this player")
}
