// Package testutil guards test runs against the wrong environment. The
// suites seed and rewrite whatever database the configuration points at,
// so they must only ever run with GO_ENV=test.
package testutil

import (
	"os"
	"testing"
)

// RequireTestEnvironment fails the test immediately unless GO_ENV is "test".
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	if env := os.Getenv("GO_ENV"); env != "test" {
		t.Fatalf("refusing to run with GO_ENV=%q, set GO_ENV=test first", env)
	}
}

// MustSetTestEnvironment forces GO_ENV to "test" for the current process.
// Meant for suite setup, where the process runs nothing but tests.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("failed to set GO_ENV=test: %v", err)
	}
}
