// File: internal/planner/planner.go

// Package planner turns an analysis report into an ordered, time-estimated
// sequence of refactoring phases.
package planner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/jakarta-cli/internal/analysis"
)

// Duration heuristics. Minutes, scaled by recommendation and file count.
const (
	coordinatePhaseBase   = 10 * time.Minute
	perRecommendation     = 3 * time.Minute
	sourcePhaseBase       = 15 * time.Minute
	perSourceFile         = 2 * time.Minute
	maxSourceFilesPerScan = 5000
)

// RefactoringPhase is one ordered step of the plan. Indices are contiguous
// 1..N; a recipe that depends on a coordinate change never appears before the
// phase performing that change.
type RefactoringPhase struct {
	Index       int           `json:"index"`
	Description string        `json:"description"`
	TargetFiles []string      `json:"target_files"`
	RecipeNames []string      `json:"recipe_names"`
	Duration    time.Duration `json:"duration"`
}

// MigrationPlan is the ordered phase sequence plus plan-wide aggregates.
// TotalDuration always equals the sum of the phase durations, and Risk is
// carried over from the analysis unchanged.
type MigrationPlan struct {
	ID             string                  `json:"id"`
	ProjectPath    string                  `json:"project_path"`
	Phases         []RefactoringPhase      `json:"phases"`
	AllFiles       []string                `json:"all_files"`
	TotalDuration  time.Duration           `json:"total_duration"`
	Risk           analysis.RiskAssessment `json:"risk"`
	RecipesApplied []string                `json:"recipes_applied"`
}

// Planner builds migration plans from analysis reports.
type Planner struct {
	logger         *zap.Logger
	recipes        RecipeLibrary
	maxSourceFiles int
}

// NewPlanner wires a planner to a recipe library. A nil library selects the
// built-in catalog; a non-positive maxSourceFiles selects the default scan
// bound.
func NewPlanner(logger *zap.Logger, recipes RecipeLibrary, maxSourceFiles int) *Planner {
	if recipes == nil {
		recipes = DefaultCatalog()
	}
	if maxSourceFiles <= 0 {
		maxSourceFiles = maxSourceFilesPerScan
	}
	return &Planner{
		logger:         logger.Named("planner"),
		recipes:        recipes,
		maxSourceFiles: maxSourceFiles,
	}
}

// CreatePlan groups the report's recommended changes into ordered phases:
// first the build-coordinate updates, then source-level namespace rewrites
// grouped by module directory.
func (p *Planner) CreatePlan(projectPath string, report *analysis.Report) (*MigrationPlan, error) {
	if report == nil {
		return nil, fmt.Errorf("cannot plan without an analysis report")
	}

	buildFile, format := detectBuildFile(projectPath)
	sourcesByModule := p.collectSources(projectPath)

	var phases []RefactoringPhase
	var allFiles []string
	recipeSet := make(map[string]struct{})

	// Phase 1: coordinate updates in the build file. Every later recipe
	// assumes the jakarta coordinates are already on the classpath.
	if len(report.Recommendations) > 0 && buildFile != "" {
		recipe := p.recipes.CoordinateRecipe(format)
		phases = append(phases, RefactoringPhase{
			Description: fmt.Sprintf("Update %d dependency coordinate(s) to jakarta equivalents", len(report.Recommendations)),
			TargetFiles: []string{buildFile},
			RecipeNames: []string{recipe},
			Duration:    coordinatePhaseBase + time.Duration(len(report.Recommendations))*perRecommendation,
		})
		allFiles = append(allFiles, buildFile)
		recipeSet[recipe] = struct{}{}
	}

	// Subsequent phases: source rewrites, one phase per module directory so
	// large trees migrate incrementally.
	modules := make([]string, 0, len(sourcesByModule))
	for module := range sourcesByModule {
		modules = append(modules, module)
	}
	sort.Strings(modules)

	for _, module := range modules {
		files := sourcesByModule[module]
		recipes := p.recipes.SourceRecipes()
		phases = append(phases, RefactoringPhase{
			Description: fmt.Sprintf("Rewrite javax namespaces in module %q (%d file(s))", module, len(files)),
			TargetFiles: files,
			RecipeNames: recipes,
			Duration:    sourcePhaseBase + time.Duration(len(files))*perSourceFile,
		})
		allFiles = append(allFiles, files...)
		for _, r := range recipes {
			recipeSet[r] = struct{}{}
		}
	}

	// Seal the ordering invariant: indices are assigned last, contiguously.
	var total time.Duration
	for i := range phases {
		phases[i].Index = i + 1
		total += phases[i].Duration
	}

	applied := make([]string, 0, len(recipeSet))
	for r := range recipeSet {
		applied = append(applied, r)
	}
	sort.Strings(applied)

	plan := &MigrationPlan{
		ID:             uuid.New().String(),
		ProjectPath:    projectPath,
		Phases:         phases,
		AllFiles:       allFiles,
		TotalDuration:  total,
		Risk:           report.Risk,
		RecipesApplied: applied,
	}

	p.logger.Info("Migration plan created",
		zap.String("plan_id", plan.ID),
		zap.Int("phases", len(phases)),
		zap.Duration("total_duration", total))
	return plan, nil
}

// detectBuildFile finds the project's build file and its format, mirroring
// the graph builder's recognition order.
func detectBuildFile(projectPath string) (path, format string) {
	for _, c := range []struct{ name, format string }{
		{"pom.xml", "maven"},
		{"build.gradle", "gradle"},
		{"build.gradle.kts", "gradle"},
	} {
		candidate := filepath.Join(projectPath, c.name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, c.format
		}
	}
	return "", ""
}

// collectSources walks the project tree for Java sources and groups them by
// their top-level module directory. The walk is bounded so a pathological
// tree cannot stall planning.
func (p *Planner) collectSources(projectPath string) map[string][]string {
	byModule := make(map[string][]string)
	count := 0

	err := filepath.WalkDir(projectPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if d.IsDir() {
			name := d.Name()
			if name == ".git" || name == "target" || name == "build" || name == "node_modules" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".java") {
			return nil
		}
		if count >= p.maxSourceFiles {
			return filepath.SkipAll
		}
		count++

		rel, relErr := filepath.Rel(projectPath, path)
		if relErr != nil {
			rel = path
		}
		module := "."
		if parts := strings.SplitN(rel, string(filepath.Separator), 2); len(parts) == 2 {
			module = parts[0]
		}
		byModule[module] = append(byModule[module], path)
		return nil
	})
	if err != nil {
		p.logger.Warn("Source scan ended early", zap.Error(err))
	}

	for _, files := range byModule {
		sort.Strings(files)
	}
	return byModule
}
