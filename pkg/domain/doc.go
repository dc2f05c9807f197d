/*
Package domain contains the adventure tree state machine.

It defines the tree data model, its construction from a flat list of labels,
the frontier rule that decides which node a user may select next, and the
two projections returned to callers. The package is pure: no I/O and no
persistence.

# Key Entities

  - Node: the recursive record {id, text, selected, left, right} used on the wire and at rest.
  - Tree: an arena of nodes indexed by id; node i has children 2i+1 and 2i+2.
  - LifecycleHooks: callbacks fired by the engine for observability.

# Movement

A user starts at the root. Afterwards only children of already selected
nodes can be selected, so the explored path grows one step at a time:

	tree, _ := domain.Build(domain.Labels("A", "B", "C", "D", "E"))
	tree.Start()      // selects A, offers B and C
	tree.Advance(4)   // ErrNodeUnreachable: B is not selected yet
	tree.Advance(1)   // selects B, offers D and E
	tree.Advance(4)   // selects E
*/
package domain
