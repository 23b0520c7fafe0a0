// File: internal/namespace/classifier.go

// Package namespace classifies artifacts by their Java package root.
package namespace

import (
	"strings"

	"github.com/xkilldash9x/jakarta-cli/internal/graph"
	"github.com/xkilldash9x/jakarta-cli/internal/mapping"
)

// Namespace tells whether an artifact's package root is javax.*, jakarta.*,
// or neither. The enum is closed; Classify always returns one of the three.
type Namespace string

const (
	Javax   Namespace = "JAVAX"
	Jakarta Namespace = "JAKARTA"
	Unknown Namespace = "UNKNOWN"
)

// CompatibilityMap records the classification of every node in a graph,
// keyed by artifact identity. Computed once per graph.
type CompatibilityMap map[string]Namespace

// Classifier performs total, deterministic namespace classification. It holds
// a reference to the mapping table for the framework exception rules.
type Classifier struct {
	table *mapping.Table
}

// NewClassifier wires a classifier to the given mapping table.
func NewClassifier(table *mapping.Table) *Classifier {
	return &Classifier{table: table}
}

// Classify maps an artifact to exactly one Namespace. GroupID prefixes decide
// the javax and jakarta cases directly; everything else is UNKNOWN. Framework
// compatibility (Spring Boot 3+, Quarkus, WildFly 26+) does not change the
// classification, it only suppresses blockers downstream, so the result stays
// a function of the coordinate alone.
func (c *Classifier) Classify(a graph.Artifact) Namespace {
	switch {
	case strings.HasPrefix(a.GroupID, "javax."):
		return Javax
	case strings.HasPrefix(a.GroupID, "jakarta."):
		return Jakarta
	default:
		return Unknown
	}
}

// IsCompatibleFramework reports whether an UNKNOWN artifact belongs to a
// framework that already runs on the jakarta namespace.
func (c *Classifier) IsCompatibleFramework(a graph.Artifact) bool {
	return c.table.IsJakartaCompatible(a.GroupID, a.ArtifactID, a.Version)
}

// ClassifyGraph computes the namespace of every node in the graph.
func (c *Classifier) ClassifyGraph(g *graph.DependencyGraph) CompatibilityMap {
	m := make(CompatibilityMap, g.NodeCount())
	for _, node := range g.Nodes() {
		m[node.Key()] = c.Classify(node)
	}
	return m
}
