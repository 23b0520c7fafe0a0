// File: internal/mapping/table.go

// Package mapping holds the javax to jakarta coordinate mapping table and the
// framework compatibility rules. The table is loaded exactly once at
// construction time and is read-only afterward, so it is safe for unlimited
// concurrent reads. Consumers receive it by reference; there is no ambient or
// global lookup path.
package mapping

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/xkilldash9x/jakarta-cli/internal/graph"
)

//go:embed mappings.json
var defaultResource []byte

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Coordinate identifies a library without a version.
type Coordinate struct {
	GroupID    string `json:"group_id"`
	ArtifactID string `json:"artifact_id"`
}

// Entry is one row of the mapping resource: a javax coordinate, its jakarta
// replacement, and an optional javax-version to jakarta-version table.
type Entry struct {
	Javax          Coordinate        `json:"javax"`
	Jakarta        Coordinate        `json:"jakarta"`
	VersionMapping map[string]string `json:"version_mapping,omitempty"`
}

// JakartaEquivalent is the resolved replacement for a javax artifact.
type JakartaEquivalent struct {
	GroupID            string `json:"group_id"`
	ArtifactID         string `json:"artifact_id"`
	Version            string `json:"version"`
	CompatibilityLevel string `json:"compatibility_level"`
}

// Table is the immutable mapping table. Construct with Load or LoadBytes.
type Table struct {
	byKey map[string]Entry
}

// Load reads the mapping resource from the given path. An empty path selects
// the embedded default resource.
func Load(path string) (*Table, error) {
	if path == "" {
		return LoadBytes(defaultResource)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping resource %s: %w", path, err)
	}
	t, err := LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("mapping resource %s: %w", path, err)
	}
	return t, nil
}

// LoadBytes decodes a mapping resource from raw JSON bytes.
func LoadBytes(data []byte) (*Table, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode mapping resource: %w", err)
	}
	t := &Table{byKey: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		if e.Javax.GroupID == "" || e.Javax.ArtifactID == "" {
			return nil, fmt.Errorf("mapping entry missing javax coordinate: %+v", e)
		}
		t.byKey[e.Javax.GroupID+":"+e.Javax.ArtifactID] = e
	}
	return t, nil
}

// Size reports the number of mapping rows.
func (t *Table) Size() int { return len(t.byKey) }

// HasMapping reports whether a direct javax to jakarta coordinate mapping
// exists for the given identity.
func (t *Table) HasMapping(groupID, artifactID string) bool {
	_, ok := t.byKey[groupID+":"+artifactID]
	return ok
}

// FindMapping resolves the jakarta replacement for a javax artifact. The
// returned version is the mapped version for the artifact's own version when
// one exists, falling back to the canonical default (see JakartaVersion).
func (t *Table) FindMapping(a graph.Artifact) (JakartaEquivalent, bool) {
	e, ok := t.byKey[a.Key()]
	if !ok {
		return JakartaEquivalent{}, false
	}
	version, _ := t.JakartaVersion(a.GroupID, a.ArtifactID, a.Version)
	return JakartaEquivalent{
		GroupID:            e.Jakarta.GroupID,
		ArtifactID:         e.Jakarta.ArtifactID,
		Version:            version,
		CompatibilityLevel: "full",
	}, true
}

// JakartaVersion resolves the jakarta version for a javax version. An exact
// match in the entry's version table wins; otherwise the fallback is the value
// of the lexicographically smallest javax version key. Sorting the keys keeps
// the fallback reproducible across runs, which plain map iteration would not.
func (t *Table) JakartaVersion(groupID, artifactID, javaxVersion string) (string, bool) {
	e, ok := t.byKey[groupID+":"+artifactID]
	if !ok || len(e.VersionMapping) == 0 {
		return "", false
	}
	if v, ok := e.VersionMapping[javaxVersion]; ok {
		return v, true
	}
	keys := make([]string, 0, len(e.VersionMapping))
	for k := range e.VersionMapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return e.VersionMapping[keys[0]], true
}

// IsJakartaCompatible reports whether an artifact that is neither javax nor
// jakarta namespaced is known to already run on the jakarta namespace.
// Rules: any jakarta.* group; Spring Boot 3 and later; Quarkus always;
// WildFly / JBoss AS 26 and later.
func (t *Table) IsJakartaCompatible(groupID, artifactID, version string) bool {
	switch {
	case strings.HasPrefix(groupID, "jakarta."):
		return true
	case groupID == "org.springframework.boot":
		return majorVersion(version) >= 3
	case groupID == "io.quarkus":
		return true
	case groupID == "org.wildfly" || groupID == "org.jboss.as":
		return majorVersion(version) >= 26
	}
	return false
}

// majorVersion extracts the leading numeric component of a version string.
// Unparseable versions yield 0, which fails every minimum-version rule.
func majorVersion(version string) int {
	head, _, _ := strings.Cut(version, ".")
	n, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0
	}
	return n
}
