// File: internal/buildfile/gradle.go
package buildfile

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/xkilldash9x/jakarta-cli/internal/graph"
)

// Matches dependency declarations in both Groovy and Kotlin DSL forms, e.g.
//
//	implementation "org.example:foo:1.2.3"
//	testImplementation('org.example:bar:4.5.6')
//
// Longer configuration names come first in the alternation so that
// "compileOnly" is not consumed as "compile".
var gradleDepRegex = regexp.MustCompile(
	`(?m)^\s*(testImplementation|testRuntime|runtimeOnly|compileOnly|implementation|runtime|compile|api)\s*\(?\s*['"]([^'"]+)['"]\s*\)?`)

// gradleScopes maps Gradle configuration names onto Maven-style scopes.
var gradleScopes = map[string]string{
	"testImplementation": "test",
	"testRuntime":        "test",
	"runtimeOnly":        "runtime",
	"runtime":            "runtime",
	"compileOnly":        "provided",
}

// FromGradle scans a Gradle build script for dependency declarations. There
// is no script evaluation here, only pattern matching, so the result is
// necessarily approximate: lines the scanner does not recognize are ignored,
// never fatal.
func (b *Builder) FromGradle(buildFilePath string) (*graph.DependencyGraph, error) {
	data, err := os.ReadFile(buildFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, buildFilePath)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrParseFailure, buildFilePath, err)
	}

	// Gradle scripts do not declare the project's own coordinate inline, so
	// the root node is synthesized from the directory name.
	root := graph.Artifact{
		GroupID:    "project",
		ArtifactID: filepath.Base(filepath.Dir(buildFilePath)),
		Version:    graph.UnknownVersion,
		Scope:      "compile",
	}

	gb := graph.NewBuilder()
	gb.AddNode(root)

	matched := 0
	for _, m := range gradleDepRegex.FindAllStringSubmatch(string(data), -1) {
		configuration, coordinate := m[1], m[2]

		parts := strings.Split(coordinate, ":")
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
			// Version catalogs, project() references and the like.
			continue
		}

		scope, ok := gradleScopes[configuration]
		if !ok {
			scope = "compile"
		}

		child := graph.Artifact{
			GroupID:    parts[0],
			ArtifactID: parts[1],
			Version:    parts[2],
			Scope:      scope,
		}
		gb.AddEdge(root, child, scope, false)
		matched++
	}

	g := gb.Build()
	b.logger.Info("Scanned Gradle build file",
		zap.String("path", buildFilePath),
		zap.Int("declarations", matched),
		zap.Int("nodes", g.NodeCount()))
	return g, nil
}
