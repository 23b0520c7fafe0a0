// File: internal/graph/graph.go
package graph

import (
	"fmt"
	"sort"
)

// Artifact is a versioned library coordinate. Identity is (GroupID, ArtifactID);
// two artifacts with the same identity but different versions are the same node.
type Artifact struct {
	GroupID    string `json:"group_id"`
	ArtifactID string `json:"artifact_id"`
	Version    string `json:"version"`
	Scope      string `json:"scope"`
	Transitive bool   `json:"transitive"`
}

// UnknownVersion is the sentinel used when a declared dependency carries no
// resolvable version. Analysis continues; only the version is degraded.
const UnknownVersion = "unknown"

// Key returns the identity of the artifact, ignoring version and scope.
func (a Artifact) Key() string {
	return a.GroupID + ":" + a.ArtifactID
}

// Coordinate returns the full group:artifact:version string.
func (a Artifact) Coordinate() string {
	return fmt.Sprintf("%s:%s:%s", a.GroupID, a.ArtifactID, a.Version)
}

// Dependency is a directed edge between two artifacts.
type Dependency struct {
	From     Artifact `json:"from"`
	To       Artifact `json:"to"`
	Scope    string   `json:"scope"`
	Optional bool     `json:"optional"`
}

// DependencyGraph is an immutable directed graph of artifacts. It is built
// once per analysis and never mutated afterward; every edge endpoint is
// guaranteed to exist in the node set, and no two nodes share an identity.
type DependencyGraph struct {
	nodes map[string]Artifact
	edges []Dependency
}

// Builder accumulates nodes and edges and seals them into a DependencyGraph.
type Builder struct {
	nodes map[string]Artifact
	edges []Dependency
}

// NewBuilder returns an empty graph builder.
func NewBuilder() *Builder {
	return &Builder{nodes: make(map[string]Artifact)}
}

// AddNode inserts an artifact, deduplicating on identity. The first version
// seen for an identity wins.
func (b *Builder) AddNode(a Artifact) Artifact {
	if existing, ok := b.nodes[a.Key()]; ok {
		return existing
	}
	b.nodes[a.Key()] = a
	return a
}

// AddEdge inserts a directed dependency. Both endpoints are added to the node
// set if missing, which preserves the endpoint invariant.
func (b *Builder) AddEdge(from, to Artifact, scope string, optional bool) {
	from = b.AddNode(from)
	to = b.AddNode(to)
	b.edges = append(b.edges, Dependency{From: from, To: to, Scope: scope, Optional: optional})
}

// Build seals the builder into an immutable graph. The builder must not be
// reused afterward.
func (b *Builder) Build() *DependencyGraph {
	g := &DependencyGraph{nodes: b.nodes, edges: b.edges}
	b.nodes = nil
	b.edges = nil
	return g
}

// Nodes returns the artifacts in a deterministic order (sorted by identity).
func (g *DependencyGraph) Nodes() []Artifact {
	out := make([]Artifact, 0, len(g.nodes))
	for _, a := range g.nodes {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// Edges returns a copy of the edge list.
func (g *DependencyGraph) Edges() []Dependency {
	out := make([]Dependency, len(g.edges))
	copy(out, g.edges)
	return out
}

// NodeCount reports the number of distinct artifacts.
func (g *DependencyGraph) NodeCount() int { return len(g.nodes) }

// Lookup returns the node with the given identity, if present.
func (g *DependencyGraph) Lookup(groupID, artifactID string) (Artifact, bool) {
	a, ok := g.nodes[groupID+":"+artifactID]
	return a, ok
}

// DirectDependencies returns the out-edge targets of the given artifact in a
// deterministic order.
func (g *DependencyGraph) DirectDependencies(of Artifact) []Artifact {
	var out []Artifact
	for _, e := range g.edges {
		if e.From.Key() == of.Key() {
			out = append(out, e.To)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}
