// File: internal/buildfile/maven.go
package buildfile

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/xkilldash9x/jakarta-cli/internal/graph"
)

var propertyRefRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// FromMaven parses a pom.xml into a dependency graph. The project's own
// coordinate becomes the root node, with one edge per declared dependency.
func (b *Builder) FromMaven(pomPath string) (*graph.DependencyGraph, error) {
	if _, err := os.Stat(pomPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, pomPath)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(pomPath); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParseFailure, pomPath, err)
	}

	project := doc.SelectElement("project")
	if project == nil {
		return nil, fmt.Errorf("%w: %s: missing <project> root element", ErrParseFailure, pomPath)
	}

	properties := readProperties(project)
	managed := readDependencyManagement(project, properties)
	root := readProjectCoordinate(project)

	gb := graph.NewBuilder()
	gb.AddNode(root)

	deps := project.SelectElement("dependencies")
	if deps == nil {
		return gb.Build(), nil
	}

	for _, dep := range deps.SelectElements("dependency") {
		groupID := childText(dep, "groupId")
		artifactID := childText(dep, "artifactId")
		if groupID == "" || artifactID == "" {
			// A dependency without an identity is unusable; skip it rather
			// than failing the rest of the document.
			b.logger.Warn("Skipping dependency with incomplete coordinate", zap.String("pom", pomPath))
			continue
		}

		scope := childText(dep, "scope")
		if scope == "" {
			scope = "compile"
		}
		optional := childText(dep, "optional") == "true"

		version := resolveVersion(childText(dep, "version"), groupID, artifactID, managed, properties)

		child := graph.Artifact{
			GroupID:    groupID,
			ArtifactID: artifactID,
			Version:    version,
			Scope:      scope,
		}
		gb.AddEdge(root, child, scope, optional)
	}

	g := gb.Build()
	b.logger.Info("Parsed Maven build file",
		zap.String("pom", pomPath),
		zap.String("project", root.Coordinate()),
		zap.Int("nodes", g.NodeCount()))
	return g, nil
}

// readProjectCoordinate extracts the project's own coordinate, falling back
// to the <parent> element for groupId and version when the project omits them.
func readProjectCoordinate(project *etree.Element) graph.Artifact {
	groupID := childText(project, "groupId")
	version := childText(project, "version")
	artifactID := childText(project, "artifactId")

	if parent := project.SelectElement("parent"); parent != nil {
		if groupID == "" {
			groupID = childText(parent, "groupId")
		}
		if version == "" {
			version = childText(parent, "version")
		}
	}
	if version == "" {
		version = graph.UnknownVersion
	}
	return graph.Artifact{GroupID: groupID, ArtifactID: artifactID, Version: version, Scope: "compile"}
}

// readProperties collects <properties> children as a substitution map.
func readProperties(project *etree.Element) map[string]string {
	props := make(map[string]string)
	if p := project.SelectElement("properties"); p != nil {
		for _, child := range p.ChildElements() {
			props[child.Tag] = strings.TrimSpace(child.Text())
		}
	}
	return props
}

// readDependencyManagement indexes <dependencyManagement> versions by exact
// groupId:artifactId. Managed versions may themselves be property references.
func readDependencyManagement(project *etree.Element, properties map[string]string) map[string]string {
	managed := make(map[string]string)
	dm := project.SelectElement("dependencyManagement")
	if dm == nil {
		return managed
	}
	deps := dm.SelectElement("dependencies")
	if deps == nil {
		return managed
	}
	for _, dep := range deps.SelectElements("dependency") {
		groupID := childText(dep, "groupId")
		artifactID := childText(dep, "artifactId")
		version := childText(dep, "version")
		if groupID == "" || artifactID == "" || version == "" {
			continue
		}
		managed[groupID+":"+artifactID] = version
	}
	return managed
}

// resolveVersion applies the Maven resolution chain: the declared version,
// then the dependencyManagement entry, then ${property} substitution.
// Anything still unresolved degrades to the "unknown" sentinel.
func resolveVersion(declared, groupID, artifactID string, managed, properties map[string]string) string {
	version := declared
	if version == "" {
		version = managed[groupID+":"+artifactID]
	}
	version = substituteProperty(version, properties)
	if version == "" {
		return graph.UnknownVersion
	}
	return version
}

// substituteProperty resolves every ${...} reference against the properties
// map, including references embedded in composite values like "1.${minor}".
// Any reference with no matching property makes the whole value resolve to
// empty, which the caller degrades to the sentinel.
func substituteProperty(value string, properties map[string]string) string {
	if !strings.Contains(value, "${") {
		return value
	}
	unresolved := false
	out := propertyRefRegex.ReplaceAllStringFunc(value, func(ref string) string {
		prop, ok := properties[ref[2:len(ref)-1]]
		if !ok {
			unresolved = true
		}
		return prop
	})
	if unresolved {
		return ""
	}
	return out
}

// childText returns the trimmed text of a named child element, or empty.
func childText(parent *etree.Element, tag string) string {
	if el := parent.SelectElement(tag); el != nil {
		return strings.TrimSpace(el.Text())
	}
	return ""
}
