// File: internal/buildfile/maven_test.go
package buildfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xkilldash9x/jakarta-cli/internal/graph"
)

func writePom(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "pom.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFromMaven_BasicDependencies(t *testing.T) {
	t.Parallel()
	b := NewBuilder(zap.NewNop())

	pom := writePom(t, `<?xml version="1.0"?>
<project>
  <groupId>com.example</groupId>
  <artifactId>demo</artifactId>
  <version>1.0.0</version>
  <dependencies>
    <dependency>
      <groupId>javax.servlet</groupId>
      <artifactId>javax.servlet-api</artifactId>
      <version>4.0.1</version>
      <scope>provided</scope>
    </dependency>
    <dependency>
      <groupId>com.google.guava</groupId>
      <artifactId>guava</artifactId>
      <version>32.1.0</version>
    </dependency>
  </dependencies>
</project>`)

	g, err := b.FromMaven(pom)
	require.NoError(t, err)
	assert.Equal(t, 3, g.NodeCount(), "root plus two dependencies")

	servlet, ok := g.Lookup("javax.servlet", "javax.servlet-api")
	require.True(t, ok)
	assert.Equal(t, "4.0.1", servlet.Version)
	assert.Equal(t, "provided", servlet.Scope)

	guava, ok := g.Lookup("com.google.guava", "guava")
	require.True(t, ok)
	assert.Equal(t, "compile", guava.Scope, "scope defaults to compile")
}

func TestFromMaven_DependencyManagementResolvesVersion(t *testing.T) {
	t.Parallel()
	b := NewBuilder(zap.NewNop())

	pom := writePom(t, `<?xml version="1.0"?>
<project>
  <groupId>com.example</groupId>
  <artifactId>demo</artifactId>
  <version>1.0.0</version>
  <dependencyManagement>
    <dependencies>
      <dependency>
        <groupId>javax.mail</groupId>
        <artifactId>javax.mail-api</artifactId>
        <version>1.6.2</version>
      </dependency>
    </dependencies>
  </dependencyManagement>
  <dependencies>
    <dependency>
      <groupId>javax.mail</groupId>
      <artifactId>javax.mail-api</artifactId>
    </dependency>
  </dependencies>
</project>`)

	g, err := b.FromMaven(pom)
	require.NoError(t, err)

	mail, ok := g.Lookup("javax.mail", "javax.mail-api")
	require.True(t, ok)
	assert.Equal(t, "1.6.2", mail.Version, "managed version applies on exact groupId+artifactId match")
}

func TestFromMaven_PropertySubstitution(t *testing.T) {
	t.Parallel()
	b := NewBuilder(zap.NewNop())

	pom := writePom(t, `<?xml version="1.0"?>
<project>
  <groupId>com.example</groupId>
  <artifactId>demo</artifactId>
  <version>1.0.0</version>
  <properties>
    <servlet.version>4.0.1</servlet.version>
    <mail.minor>6.2</mail.minor>
  </properties>
  <dependencies>
    <dependency>
      <groupId>javax.servlet</groupId>
      <artifactId>javax.servlet-api</artifactId>
      <version>${servlet.version}</version>
    </dependency>
    <dependency>
      <groupId>javax.mail</groupId>
      <artifactId>javax.mail-api</artifactId>
      <version>1.${mail.minor}</version>
    </dependency>
    <dependency>
      <groupId>com.example.other</groupId>
      <artifactId>widget</artifactId>
      <version>${undefined.property}</version>
    </dependency>
    <dependency>
      <groupId>com.example.other</groupId>
      <artifactId>gadget</artifactId>
      <version>2.${undefined.minor}</version>
    </dependency>
  </dependencies>
</project>`)

	g, err := b.FromMaven(pom)
	require.NoError(t, err)

	servlet, ok := g.Lookup("javax.servlet", "javax.servlet-api")
	require.True(t, ok)
	assert.Equal(t, "4.0.1", servlet.Version)

	mail, ok := g.Lookup("javax.mail", "javax.mail-api")
	require.True(t, ok)
	assert.Equal(t, "1.6.2", mail.Version, "references inside composite values resolve too")

	widget, ok := g.Lookup("com.example.other", "widget")
	require.True(t, ok)
	assert.Equal(t, graph.UnknownVersion, widget.Version, "unresolved property degrades to sentinel, parse continues")

	gadget, ok := g.Lookup("com.example.other", "gadget")
	require.True(t, ok)
	assert.Equal(t, graph.UnknownVersion, gadget.Version, "composite value with an unresolved reference degrades to sentinel")
}

func TestFromMaven_ParentCoordinateFallback(t *testing.T) {
	t.Parallel()
	b := NewBuilder(zap.NewNop())

	pom := writePom(t, `<?xml version="1.0"?>
<project>
  <parent>
    <groupId>org.springframework.boot</groupId>
    <artifactId>spring-boot-starter-parent</artifactId>
    <version>3.2.0</version>
  </parent>
  <artifactId>demo</artifactId>
</project>`)

	g, err := b.FromMaven(pom)
	require.NoError(t, err)

	root, ok := g.Lookup("org.springframework.boot", "demo")
	require.True(t, ok, "groupId falls back to parent")
	assert.Equal(t, "3.2.0", root.Version, "version falls back to parent")
}

func TestFromMaven_MalformedXMLAbortsEntirely(t *testing.T) {
	t.Parallel()
	b := NewBuilder(zap.NewNop())

	pom := writePom(t, `<project><dependencies>`)
	g, err := b.FromMaven(pom)
	assert.Nil(t, g, "no partial graph on parse failure")
	assert.ErrorIs(t, err, ErrParseFailure)
}

func TestFromMaven_MissingFile(t *testing.T) {
	t.Parallel()
	b := NewBuilder(zap.NewNop())

	_, err := b.FromMaven(filepath.Join(t.TempDir(), "pom.xml"))
	assert.ErrorIs(t, err, ErrInputNotFound)
}

func TestFromProject_RecognitionOrder(t *testing.T) {
	t.Parallel()
	b := NewBuilder(zap.NewNop())

	t.Run("pom.xml wins over gradle", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "pom.xml"), []byte(`<?xml version="1.0"?>
<project>
  <groupId>com.example</groupId>
  <artifactId>maven-wins</artifactId>
  <version>1.0.0</version>
</project>`), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "build.gradle"), []byte(`implementation "org.example:foo:1.2.3"`), 0644))

		g, err := b.FromProject(dir)
		require.NoError(t, err)
		_, ok := g.Lookup("com.example", "maven-wins")
		assert.True(t, ok)
	})

	t.Run("no build file", func(t *testing.T) {
		t.Parallel()
		_, err := b.FromProject(t.TempDir())
		assert.ErrorIs(t, err, ErrInputNotFound)
	})
}
