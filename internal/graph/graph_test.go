// File: internal/graph/graph_test.go
package graph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactIdentity(t *testing.T) {
	t.Parallel()

	a := Artifact{GroupID: "javax.servlet", ArtifactID: "javax.servlet-api", Version: "4.0.1"}
	b := Artifact{GroupID: "javax.servlet", ArtifactID: "javax.servlet-api", Version: "3.1.0"}

	assert.Equal(t, a.Key(), b.Key(), "identity ignores version")
	assert.Equal(t, "javax.servlet:javax.servlet-api:4.0.1", a.Coordinate())
}

func TestBuilder_DeduplicatesNodesByIdentity(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	first := b.AddNode(Artifact{GroupID: "g", ArtifactID: "a", Version: "1.0"})
	second := b.AddNode(Artifact{GroupID: "g", ArtifactID: "a", Version: "2.0"})

	assert.Equal(t, first, second, "first version seen wins")

	g := b.Build()
	assert.Equal(t, 1, g.NodeCount())
	assert.Equal(t, "1.0", g.Nodes()[0].Version)
}

func TestBuilder_EdgeEndpointsAlwaysInNodeSet(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	from := Artifact{GroupID: "com.example", ArtifactID: "app", Version: "1.0"}
	to := Artifact{GroupID: "jakarta.servlet", ArtifactID: "jakarta.servlet-api", Version: "6.0.0"}
	b.AddEdge(from, to, "compile", false)

	g := b.Build()
	require.Equal(t, 2, g.NodeCount())

	for _, e := range g.Edges() {
		_, okFrom := g.Lookup(e.From.GroupID, e.From.ArtifactID)
		_, okTo := g.Lookup(e.To.GroupID, e.To.ArtifactID)
		assert.True(t, okFrom, "edge source must exist in node set")
		assert.True(t, okTo, "edge target must exist in node set")
	}
}

func TestGraph_DirectDependenciesAreDeterministic(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	root := Artifact{GroupID: "com.example", ArtifactID: "app", Version: "1.0"}
	b.AddEdge(root, Artifact{GroupID: "z.group", ArtifactID: "z", Version: "1"}, "compile", false)
	b.AddEdge(root, Artifact{GroupID: "a.group", ArtifactID: "a", Version: "1"}, "compile", false)
	g := b.Build()

	deps := g.DirectDependencies(root)
	require.Len(t, deps, 2)
	assert.Equal(t, "a.group", deps[0].GroupID, "direct dependencies sorted by identity")
	assert.Equal(t, "z.group", deps[1].GroupID)

	// Repeated calls agree.
	assert.Empty(t, cmp.Diff(deps, g.DirectDependencies(root)))
}

func TestGraph_NodesReturnsCopy(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	b.AddNode(Artifact{GroupID: "g", ArtifactID: "a", Version: "1"})
	g := b.Build()

	nodes := g.Nodes()
	nodes[0].Version = "mutated"
	assert.Equal(t, "1", g.Nodes()[0].Version, "callers cannot mutate the graph")
}
