// File: internal/analysis/engine.go

// Package analysis orchestrates build-file parsing, namespace classification
// and the mapping table into a migration readiness report.
package analysis

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/jakarta-cli/internal/buildfile"
	"github.com/xkilldash9x/jakarta-cli/internal/graph"
	"github.com/xkilldash9x/jakarta-cli/internal/mapping"
	"github.com/xkilldash9x/jakarta-cli/internal/namespace"
)

// Graph size above which sheer scale becomes a risk factor.
const largeGraphThreshold = 100

// Engine runs the analysis pipeline. It is stateless per call; the only
// shared state is the read-only mapping table, so concurrent AnalyzeProject
// calls are safe.
type Engine struct {
	logger     *zap.Logger
	table      *mapping.Table
	classifier *namespace.Classifier
	builder    *buildfile.Builder
}

// NewEngine wires an analysis engine to its collaborators. The mapping table
// is passed by reference and must already be loaded.
func NewEngine(logger *zap.Logger, table *mapping.Table) *Engine {
	return &Engine{
		logger:     logger.Named("analysis"),
		table:      table,
		classifier: namespace.NewClassifier(table),
		builder:    buildfile.NewBuilder(logger),
	}
}

// AnalyzeProject parses the build file under path and produces a fresh,
// immutable report. Any parse failure aborts the whole analysis; there is no
// partial report.
func (e *Engine) AnalyzeProject(path string) (*Report, error) {
	g, err := e.builder.FromProject(path)
	if err != nil {
		return nil, fmt.Errorf("analysis aborted: %w", err)
	}

	nsMap := e.classifier.ClassifyGraph(g)
	blockers := e.DetectBlockers(g)
	recommendations := e.RecommendVersions(g.Nodes())
	conflicts := e.AnalyzeTransitiveConflicts(g)
	risk := e.riskAssessment(g, blockers, conflicts)
	readiness := e.readinessScore(g, nsMap, blockers)

	report := &Report{
		ID:              uuid.New().String(),
		GeneratedAt:     time.Now().UTC(),
		ProjectPath:     path,
		Graph:           g,
		NamespaceMap:    nsMap,
		Blockers:        blockers,
		Recommendations: recommendations,
		Conflicts:       conflicts,
		Risk:            risk,
		Readiness:       readiness,
	}

	e.logger.Info("Project analysis complete",
		zap.String("report_id", report.ID),
		zap.Int("nodes", g.NodeCount()),
		zap.Int("blockers", len(blockers)),
		zap.Int("conflicts", len(conflicts)),
		zap.Float64("readiness", readiness.Score))
	return report, nil
}

// DetectBlockers finds javax nodes with no jakarta path forward. A javax
// artifact has an equivalent when the mapping table carries a direct
// coordinate mapping or the framework compatibility rules apply. UNKNOWN
// nodes are informational and never blockers.
func (e *Engine) DetectBlockers(g *graph.DependencyGraph) []Blocker {
	var blockers []Blocker
	for _, node := range g.Nodes() {
		if e.classifier.Classify(node) != namespace.Javax {
			continue
		}
		if e.hasJakartaEquivalent(node) {
			continue
		}
		blockers = append(blockers, Blocker{
			Artifact:  node,
			Type:      BlockerNoJakartaEquivalent,
			Rationale: fmt.Sprintf("%s has no known jakarta equivalent", node.Coordinate()),
			SuggestedActions: []string{
				"search for a community-maintained jakarta fork",
				"replace the library with a jakarta-native alternative",
				"isolate the dependency behind an adapter until a replacement exists",
			},
			Confidence: 0.9,
		})
	}
	return blockers
}

// hasJakartaEquivalent is true when the mapping table reports framework
// compatibility or a direct coordinate mapping exists.
func (e *Engine) hasJakartaEquivalent(a graph.Artifact) bool {
	return e.table.IsJakartaCompatible(a.GroupID, a.ArtifactID, a.Version) ||
		e.table.HasMapping(a.GroupID, a.ArtifactID)
}

// RecommendVersions emits a coordinate update for every javax artifact with a
// mapping table entry.
func (e *Engine) RecommendVersions(artifacts []graph.Artifact) []VersionRecommendation {
	var recs []VersionRecommendation
	for _, a := range artifacts {
		if e.classifier.Classify(a) != namespace.Javax {
			continue
		}
		equivalent, ok := e.table.FindMapping(a)
		if !ok {
			continue
		}
		recs = append(recs, VersionRecommendation{
			From: a,
			To: graph.Artifact{
				GroupID:    equivalent.GroupID,
				ArtifactID: equivalent.ArtifactID,
				Version:    equivalent.Version,
				Scope:      a.Scope,
			},
			Rationale:  fmt.Sprintf("%s maps directly to %s:%s", a.Key(), equivalent.GroupID, equivalent.ArtifactID),
			Actions:    []string{"update imports", "update coordinates"},
			Confidence: 0.95,
		})
	}
	return recs
}

// AnalyzeTransitiveConflicts emits one conflict per node whose direct
// dependencies contain both a javax- and a jakarta-classified member. The
// conflicting artifact named is the first javax offender in identity order.
func (e *Engine) AnalyzeTransitiveConflicts(g *graph.DependencyGraph) []TransitiveConflict {
	var conflicts []TransitiveConflict
	for _, node := range g.Nodes() {
		deps := g.DirectDependencies(node)

		var firstJavax *graph.Artifact
		sawJakarta := false
		for i, dep := range deps {
			switch e.classifier.Classify(dep) {
			case namespace.Javax:
				if firstJavax == nil {
					firstJavax = &deps[i]
				}
			case namespace.Jakarta:
				sawJakarta = true
			}
		}

		if firstJavax != nil && sawJakarta {
			conflicts = append(conflicts, TransitiveConflict{
				DependentArtifact:   node,
				ConflictingArtifact: *firstJavax,
				Kind:                ConflictMixedNamespaces,
				Explanation: fmt.Sprintf(
					"%s depends on both javax and jakarta namespaced artifacts; %s will clash at runtime after migration",
					node.Key(), firstJavax.Key()),
			})
		}
	}
	return conflicts
}

// riskAssessment is an additive score over fixed factors, clamped to [0,1].
func (e *Engine) riskAssessment(g *graph.DependencyGraph, blockers []Blocker, conflicts []TransitiveConflict) RiskAssessment {
	risk := RiskAssessment{Factors: []string{}, Mitigations: []string{}}

	if len(blockers) > 0 {
		risk.Level += 0.3
		risk.Factors = append(risk.Factors, "dependencies without jakarta equivalents present")
		risk.Mitigations = append(risk.Mitigations, "resolve or replace blocked dependencies before migrating")
	}
	if len(conflicts) > 0 {
		risk.Level += 0.2
		risk.Factors = append(risk.Factors, "mixed javax/jakarta namespaces in the dependency tree")
		risk.Mitigations = append(risk.Mitigations, "align transitive dependencies to a single namespace")
	}
	if g.NodeCount() > largeGraphThreshold {
		risk.Level += 0.1
		risk.Factors = append(risk.Factors, "large dependency graph increases migration surface")
		risk.Mitigations = append(risk.Mitigations, "migrate module by module instead of all at once")
	}
	if risk.Level > 1.0 {
		risk.Level = 1.0
	}
	return risk
}

// readinessScore is the jakarta-compatible fraction of the graph, halved when
// any blocker exists, banded to a message. Besides jakarta-namespaced nodes,
// UNKNOWN nodes covered by the framework compatibility rules (Spring Boot 3+,
// Quarkus, WildFly 26+) count as already migrated.
func (e *Engine) readinessScore(g *graph.DependencyGraph, nsMap namespace.CompatibilityMap, blockers []Blocker) ReadinessScore {
	total := g.NodeCount()
	if total == 0 {
		return ReadinessScore{Score: 0.0, Message: "No dependencies found"}
	}

	compatible := 0
	for _, node := range g.Nodes() {
		switch nsMap[node.Key()] {
		case namespace.Jakarta:
			compatible++
		case namespace.Unknown:
			if e.classifier.IsCompatibleFramework(node) {
				compatible++
			}
		}
	}

	score := float64(compatible) / float64(total)
	if len(blockers) > 0 {
		score /= 2
	}

	var message string
	switch {
	case score >= 0.8:
		message = "Ready for migration"
	case score >= 0.5:
		message = "Mostly ready, some issues to resolve"
	case score >= 0.3:
		message = "Significant work required"
	default:
		message = "Not ready for migration"
	}
	return ReadinessScore{Score: score, Message: message}
}
