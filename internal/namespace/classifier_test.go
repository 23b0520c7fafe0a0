// File: internal/namespace/classifier_test.go
package namespace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/jakarta-cli/internal/graph"
	"github.com/xkilldash9x/jakarta-cli/internal/mapping"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	table, err := mapping.Load("")
	require.NoError(t, err)
	return NewClassifier(table)
}

func TestClassify_IsTotalAndDeterministic(t *testing.T) {
	t.Parallel()
	c := newTestClassifier(t)

	cases := []struct {
		name     string
		artifact graph.Artifact
		expected Namespace
	}{
		{"javax prefix", graph.Artifact{GroupID: "javax.servlet", ArtifactID: "javax.servlet-api", Version: "4.0.1"}, Javax},
		{"jakarta prefix", graph.Artifact{GroupID: "jakarta.servlet", ArtifactID: "jakarta.servlet-api", Version: "6.0.0"}, Jakarta},
		{"spring boot", graph.Artifact{GroupID: "org.springframework.boot", ArtifactID: "spring-boot-starter-web", Version: "3.2.0"}, Unknown},
		{"plain library", graph.Artifact{GroupID: "com.google.guava", ArtifactID: "guava", Version: "32.1.0"}, Unknown},
		{"empty coordinate", graph.Artifact{}, Unknown},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			first := c.Classify(tc.artifact)
			assert.Equal(t, tc.expected, first)
			// Repeated calls with the same input agree.
			assert.Equal(t, first, c.Classify(tc.artifact))
		})
	}
}

func TestIsCompatibleFramework(t *testing.T) {
	t.Parallel()
	c := newTestClassifier(t)

	boot3 := graph.Artifact{GroupID: "org.springframework.boot", ArtifactID: "spring-boot-starter-parent", Version: "3.1.4"}
	boot2 := graph.Artifact{GroupID: "org.springframework.boot", ArtifactID: "spring-boot-starter-parent", Version: "2.7.18"}

	assert.True(t, c.IsCompatibleFramework(boot3))
	assert.False(t, c.IsCompatibleFramework(boot2))
	// Compatibility never changes the classification itself.
	assert.Equal(t, Unknown, c.Classify(boot3))
}

func TestClassifyGraph_CoversEveryNode(t *testing.T) {
	t.Parallel()
	c := newTestClassifier(t)

	b := graph.NewBuilder()
	root := graph.Artifact{GroupID: "com.example", ArtifactID: "app", Version: "1.0"}
	b.AddEdge(root, graph.Artifact{GroupID: "javax.inject", ArtifactID: "javax.inject", Version: "1"}, "compile", false)
	b.AddEdge(root, graph.Artifact{GroupID: "jakarta.el", ArtifactID: "jakarta.el-api", Version: "5.0.1"}, "compile", false)
	g := b.Build()

	m := c.ClassifyGraph(g)
	require.Len(t, m, g.NodeCount())
	assert.Equal(t, Unknown, m["com.example:app"])
	assert.Equal(t, Javax, m["javax.inject:javax.inject"])
	assert.Equal(t, Jakarta, m["jakarta.el:jakarta.el-api"])
}
