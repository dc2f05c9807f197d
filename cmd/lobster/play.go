package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/lobster/internal/config"
	"github.com/aretw0/lobster/internal/presentation/tui"
	"github.com/aretw0/lobster/pkg/domain"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the adventure in the terminal",
	Long: `Starts (or restarts) the adventure for a player and reads choices from stdin.
Type a node id to choose, 'r' to see the path so far, or 'q' to quit.

With --labels the adventure is created from the file before playing. The
memory backend starts empty on every run, so it needs --labels.`,
	Run: func(cmd *cobra.Command, args []string) {
		userID, _ := cmd.Flags().GetString("user")
		labelsPath, _ := cmd.Flags().GetString("labels")

		interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		p := &player{
			userID: userID,
			in:     os.Stdin,
			out:    os.Stdout,
			render: func(md string) (string, error) { return md, nil },
		}
		if interactive {
			tui.PrintBanner(os.Stdout)
			p.render = tui.NewRenderer()
			p.prompt = true
		}

		if err := runPlay(cmd.Context(), labelsPath, p); err != nil {
			fail("Error playing adventure", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringP("user", "u", "player", "Player user id")
	playCmd.Flags().StringP("labels", "l", "", "Create the adventure from this YAML or JSON label file first")
}

// runPlay opens the configured backend, optionally creates the adventure
// from labelsPath and plays it with p.
func runPlay(ctx context.Context, labelsPath string, p *player) error {
	var labels []*string
	switch {
	case labelsPath == "-":
		return fmt.Errorf("%w: play reads choices from stdin, pass --labels a file", domain.ErrInvalidInput)
	case labelsPath != "":
		var err error
		if labels, err = readLabels(labelsPath); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
	case cfg.Backend == config.BackendMemory:
		return fmt.Errorf("%w: the memory backend starts empty, pass --labels", domain.ErrNoAdventure)
	}

	engine, release, err := newEngine(nil, nil)
	if err != nil {
		return err
	}
	defer release()

	if labelsPath != "" {
		if _, err := engine.CreateAdventure(ctx, labels); err != nil {
			return err
		}
	}

	p.engine = engine
	return p.run(ctx)
}

// playEngine is the subset of the engine the player loop drives.
type playEngine interface {
	StartUserAdventure(ctx context.Context, userID string) (*domain.Node, error)
	AdvanceUserAdventure(ctx context.Context, userID string, nodeID int) (*domain.Node, error)
	UserResult(ctx context.Context, userID string) (*domain.Node, error)
}

type player struct {
	engine playEngine
	userID string
	in     io.Reader
	out    io.Writer
	render func(string) (string, error)
	prompt bool
}

// run plays until a leaf is reached, the player quits or input ends.
func (p *player) run(ctx context.Context) error {
	step, err := p.engine.StartUserAdventure(ctx, p.userID)
	if err != nil {
		return err
	}
	if err := p.show(tui.StepMarkdown(step)); err != nil {
		return err
	}

	scanner := bufio.NewScanner(p.in)
	for !step.IsLeaf() {
		if p.prompt {
			fmt.Fprint(p.out, tui.Prompt(choiceIDs(step)))
		}
		if !scanner.Scan() {
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		switch input {
		case "":
			continue
		case "q", "quit", "exit":
			fmt.Fprintln(p.out, "Bye!")
			return nil
		case "r", "result":
			if err := p.showResult(ctx); err != nil {
				return err
			}
			continue
		}

		nodeID, err := strconv.Atoi(input)
		if err != nil {
			fmt.Fprintf(p.out, "Not a choice: %q\n", input)
			continue
		}

		next, err := p.engine.AdvanceUserAdventure(ctx, p.userID, nodeID)
		if errors.Is(err, domain.ErrNodeUnreachable) {
			fmt.Fprintf(p.out, "You cannot reach %d from here.\n", nodeID)
			continue
		}
		if err != nil {
			return err
		}
		step = next
		if err := p.show(tui.StepMarkdown(step)); err != nil {
			return err
		}
	}

	return p.showResult(ctx)
}

func (p *player) showResult(ctx context.Context) error {
	path, err := p.engine.UserResult(ctx, p.userID)
	if err != nil {
		return err
	}
	return p.show("Your path:\n\n" + tui.PathMarkdown(path))
}

func (p *player) show(md string) error {
	out, err := p.render(md)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(p.out, out)
	return err
}

func choiceIDs(step *domain.Node) []int {
	var ids []int
	for _, c := range step.Children() {
		ids = append(ids, c.ID)
	}
	return ids
}
