/*
Package lobster runs "choose your own adventure" stories shaped as binary trees
and tracks each user's progress through them.

# Concept

An adventure is created from a flat, ordered list of labels using heap
indexing: the label at position i becomes node i, and its choices are the
nodes 2i+1 (left) and 2i+2 (right). A missing label prunes its branch.

The created tree is the template. Starting an adventure copies the template
into the user's session and selects the root. From then on the user may only
select nodes that lie on the explored path or directly below it (the
frontier). The result is the template shape with every unexplored branch cut
off.

Storage goes through a narrow string cache (ports.Cache). Adapters for
memory, Redis and SQLite live under pkg/adapters.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/lobster"
		"github.com/aretw0/lobster/pkg/adapters/memory"
		"github.com/aretw0/lobster/pkg/domain"
	)

	func main() {
		ctx := context.Background()

		eng, err := lobster.New(memory.NewCache())
		if err != nil {
			log.Fatal(err)
		}

		if _, err := eng.CreateAdventure(ctx, domain.Labels("Enter the cave?", "Yes", "No")); err != nil {
			log.Fatal(err)
		}

		step, _ := eng.StartUserAdventure(ctx, "alice")
		fmt.Println(step.Text, step.Left.Text, step.Right.Text)

		step, _ = eng.AdvanceUserAdventure(ctx, "alice", step.Left.ID)
		fmt.Println(step.Text)

		path, _ := eng.UserResult(ctx, "alice")
		fmt.Println(path.Left.Selected, path.Right.Selected)
	}

Same-user operations are serialized (see package session). Pass WithLocker to
extend that guarantee across processes sharing one Redis.
*/
package lobster
