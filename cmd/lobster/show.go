package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/lobster/pkg/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current adventure template",
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")

		engine, release, err := newEngine(nil, nil)
		if err != nil {
			fail("Error initializing lobster", err)
		}
		defer release()

		root, err := engine.Adventure(cmd.Context())
		if err != nil {
			release()
			fail("Error loading adventure", err)
		}
		if err := printNode(root, format); err != nil {
			release()
			fail("Error printing adventure", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringP("format", "f", "json", "Output format: json or yaml")
}

func printNode(n *domain.Node, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(n)
	case "json":
		// Pretty print JSON
		data, err := json.MarshalIndent(n, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
