// Package languages provides language-specific implementations for pre-commit hook environments
package languages

// Constants for language package functionality
const (
	// testModeEnvValue is the value to check for in GO_PRE_COMMIT_TEST_MODE environment variable
	// This is used by other language implementations for backwards compatibility
	testModeEnvValue = "true"
)
