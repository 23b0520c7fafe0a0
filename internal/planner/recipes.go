// File: internal/planner/recipes.go
package planner

// RecipeLibrary supplies the named mechanical rewrite operations a plan
// phase applies. The real recipe implementations live outside this module;
// the planner only needs their names.
type RecipeLibrary interface {
	// CoordinateRecipe names the recipe that rewrites dependency
	// coordinates in the given build file format ("maven" or "gradle").
	CoordinateRecipe(format string) string
	// SourceRecipes names the recipes applied to Java sources after the
	// coordinates have been updated.
	SourceRecipes() []string
}

// defaultCatalog is the built-in recipe set, mirroring the OpenRewrite-style
// recipes the migration tooling ships with.
type defaultCatalog struct{}

// DefaultCatalog returns the built-in recipe library.
func DefaultCatalog() RecipeLibrary { return defaultCatalog{} }

func (defaultCatalog) CoordinateRecipe(format string) string {
	if format == "gradle" {
		return "jakarta.gradle.UpdateCoordinates"
	}
	return "jakarta.maven.UpdateCoordinates"
}

func (defaultCatalog) SourceRecipes() []string {
	return []string{
		"jakarta.java.MigrateImports",
		"jakarta.xml.MigrateDescriptors",
	}
}
