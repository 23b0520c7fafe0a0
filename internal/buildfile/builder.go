// File: internal/buildfile/builder.go

// Package buildfile parses Maven and Gradle build files into dependency
// graphs. Graph construction is all-or-nothing: a malformed build file aborts
// the whole parse, while an unresolvable dependency version degrades to the
// "unknown" sentinel and the parse continues.
package buildfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/xkilldash9x/jakarta-cli/internal/graph"
)

var (
	// ErrInputNotFound is returned when no recognized build file exists at
	// the requested location.
	ErrInputNotFound = errors.New("no recognized build file found")
	// ErrParseFailure wraps malformed XML or otherwise unreadable build
	// scripts. No partial graph is produced.
	ErrParseFailure = errors.New("failed to parse build file")
)

// Builder constructs dependency graphs from project build files.
type Builder struct {
	logger *zap.Logger
}

// NewBuilder creates a graph builder.
func NewBuilder(logger *zap.Logger) *Builder {
	return &Builder{logger: logger.Named("buildfile")}
}

// FromProject locates a build file under root and parses it. Recognition
// order is fixed: pom.xml, then build.gradle, then build.gradle.kts.
func (b *Builder) FromProject(root string) (*graph.DependencyGraph, error) {
	candidates := []struct {
		name  string
		parse func(string) (*graph.DependencyGraph, error)
	}{
		{"pom.xml", b.FromMaven},
		{"build.gradle", b.FromGradle},
		{"build.gradle.kts", b.FromGradle},
	}

	for _, c := range candidates {
		path := filepath.Join(root, c.name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		b.logger.Debug("Build file detected", zap.String("path", path))
		return c.parse(path)
	}
	return nil, fmt.Errorf("%w in %s", ErrInputNotFound, root)
}
