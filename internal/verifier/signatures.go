// File: internal/verifier/signatures.go
package verifier

import "regexp"

// ErrorCategory is a closed enum of known runtime failure classes.
type ErrorCategory string

const (
	CategoryMissingJavaxClass    ErrorCategory = "MISSING_JAVAX_CLASS"
	CategoryNamespaceMismatch    ErrorCategory = "NAMESPACE_METHOD_MISMATCH"
	CategoryMissingClass         ErrorCategory = "MISSING_CLASS"
	CategoryMissingMainClass     ErrorCategory = "MISSING_MAIN_CLASS"
	CategoryClassVersionMismatch ErrorCategory = "CLASS_VERSION_MISMATCH"
	CategoryOutOfMemory          ErrorCategory = "OUT_OF_MEMORY"
	CategoryUnknown              ErrorCategory = "UNKNOWN"
)

// failureSignature pairs an output pattern with its classification. The
// signature list is ordered: the first match wins, so namespace-specific
// patterns must precede their generic counterparts.
type failureSignature struct {
	pattern        *regexp.Regexp
	category       ErrorCategory
	confidence     float64
	suggestedFixes []string
}

var failureSignatures = []failureSignature{
	{
		pattern:    regexp.MustCompile(`(ClassNotFoundException|NoClassDefFoundError)\S*[:\s].*javax[./]`),
		category:   CategoryMissingJavaxClass,
		confidence: 0.95,
		suggestedFixes: []string{
			"a javax.* class is referenced after migration; rewrite remaining javax imports to jakarta",
			"check for a stale dependency still compiled against the javax namespace",
		},
	},
	{
		pattern:    regexp.MustCompile(`NoSuchMethodError\S*[:\s].*javax[./]`),
		category:   CategoryNamespaceMismatch,
		confidence: 0.95,
		suggestedFixes: []string{
			"a library resolves javax method signatures against jakarta classes; align all dependencies to one namespace",
		},
	},
	{
		pattern:    regexp.MustCompile(`Could not find or load main class`),
		category:   CategoryMissingMainClass,
		confidence: 0.9,
		suggestedFixes: []string{
			"verify the Main-Class manifest attribute survived repackaging",
		},
	},
	{
		pattern:    regexp.MustCompile(`UnsupportedClassVersionError`),
		category:   CategoryClassVersionMismatch,
		confidence: 0.9,
		suggestedFixes: []string{
			"the artifact targets a newer JVM than the one running it; align toolchain versions",
		},
	},
	{
		pattern:    regexp.MustCompile(`java\.lang\.OutOfMemoryError`),
		category:   CategoryOutOfMemory,
		confidence: 0.85,
		suggestedFixes: []string{
			"raise the JVM heap limit for verification runs",
		},
	},
	{
		pattern:    regexp.MustCompile(`ClassNotFoundException|NoClassDefFoundError`),
		category:   CategoryMissingClass,
		confidence: 0.7,
		suggestedFixes: []string{
			"a class is missing from the packaged artifact; inspect the dependency shading configuration",
		},
	},
}

// classifyOutput scans buffered process output against the ordered signature
// list. No match yields the low-confidence UNKNOWN category.
func classifyOutput(lines []string) ErrorAnalysis {
	for _, line := range lines {
		for _, sig := range failureSignatures {
			if sig.pattern.MatchString(line) {
				return ErrorAnalysis{
					Category:        sig.category,
					Message:         line,
					MatchedPatterns: []string{sig.pattern.String()},
					SuggestedFixes:  sig.suggestedFixes,
					Confidence:      sig.confidence,
				}
			}
		}
	}
	return ErrorAnalysis{
		Category:       CategoryUnknown,
		Message:        "process exited abnormally without a recognized failure signature",
		SuggestedFixes: []string{"inspect the captured stderr for application-specific errors"},
		Confidence:     0.2,
	}
}
