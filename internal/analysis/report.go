// File: internal/analysis/report.go
package analysis

import (
	"time"

	"github.com/xkilldash9x/jakarta-cli/internal/graph"
	"github.com/xkilldash9x/jakarta-cli/internal/namespace"
)

// BlockerType is a closed enum of reasons a dependency blocks migration.
type BlockerType string

const (
	// BlockerNoJakartaEquivalent marks a javax dependency with neither a
	// coordinate mapping nor a jakarta-compatible framework exception.
	BlockerNoJakartaEquivalent BlockerType = "NO_JAKARTA_EQUIVALENT"
)

// Blocker is a dependency that prevents migration until replaced.
type Blocker struct {
	Artifact         graph.Artifact `json:"artifact"`
	Type             BlockerType    `json:"type"`
	Rationale        string         `json:"rationale"`
	SuggestedActions []string       `json:"suggested_actions"`
	Confidence       float64        `json:"confidence"`
}

// TransitiveConflict is emitted when an artifact's direct dependencies mix
// javax- and jakarta-classified members.
type TransitiveConflict struct {
	DependentArtifact   graph.Artifact `json:"dependent_artifact"`
	ConflictingArtifact graph.Artifact `json:"conflicting_artifact"`
	Kind                string         `json:"kind"`
	Explanation         string         `json:"explanation"`
}

// ConflictMixedNamespaces is the only conflict kind currently emitted.
const ConflictMixedNamespaces = "MIXED_NAMESPACES"

// RiskAssessment scores migration risk in [0,1] with the factors that
// contributed and the mitigations that address them.
type RiskAssessment struct {
	Level       float64  `json:"level"`
	Factors     []string `json:"factors"`
	Mitigations []string `json:"mitigations"`
}

// ReadinessScore is the fraction of the graph already jakarta-compatible,
// penalized when blockers exist, banded to a human-readable message.
type ReadinessScore struct {
	Score   float64 `json:"score"`
	Message string  `json:"message"`
}

// VersionRecommendation proposes a concrete coordinate update.
type VersionRecommendation struct {
	From       graph.Artifact `json:"from"`
	To         graph.Artifact `json:"to"`
	Rationale  string         `json:"rationale"`
	Actions    []string       `json:"actions"`
	Confidence float64        `json:"confidence"`
}

// Report is the immutable aggregate produced by one AnalyzeProject call.
// It is never cached or persisted by this package; callers own that.
type Report struct {
	ID              string                     `json:"id"`
	GeneratedAt     time.Time                  `json:"generated_at"`
	ProjectPath     string                     `json:"project_path"`
	Graph           *graph.DependencyGraph     `json:"-"`
	NamespaceMap    namespace.CompatibilityMap `json:"namespace_map"`
	Blockers        []Blocker                  `json:"blockers"`
	Recommendations []VersionRecommendation    `json:"recommendations"`
	Conflicts       []TransitiveConflict       `json:"conflicts"`
	Risk            RiskAssessment             `json:"risk"`
	Readiness       ReadinessScore             `json:"readiness"`
}
