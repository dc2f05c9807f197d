package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var createCmd = &cobra.Command{
	Use:   "create <labels-file|->",
	Short: "Create the adventure from a label file",
	Long: `Reads a YAML (or JSON) list of labels and stores it as the adventure
template. Position i becomes node i; its choices are 2i+1 and 2i+2. Use null
or an empty string to leave a slot empty.

  - Enter the cave?
  - Go in
  - Walk away
  - null
  - Light a torch`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		labels, err := readLabels(args[0])
		if err != nil {
			fail("Error reading labels", err)
		}

		engine, release, err := newEngine(nil, nil)
		if err != nil {
			fail("Error initializing lobster", err)
		}
		defer release()

		root, err := engine.CreateAdventure(cmd.Context(), labels)
		if err != nil {
			release()
			fail("Error creating adventure", err)
		}
		fmt.Printf("Created adventure %q (%d labels)\n", root.Text, len(labels))
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
}

// readLabels decodes a label list from path, or stdin when path is "-".
func readLabels(path string) ([]*string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return parseLabels(data)
}

func parseLabels(data []byte) ([]*string, error) {
	var labels []*string
	if err := yaml.Unmarshal(data, &labels); err != nil {
		return nil, fmt.Errorf("labels must be a list of strings: %w", err)
	}
	return labels, nil
}
