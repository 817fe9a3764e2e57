package config

import (
	"fmt"
	"os"
	"testing"
)

// TestMain refuses to run the package tests outside the test environment.
// The seed tests write to whatever database the configuration points at.
func TestMain(m *testing.M) {
	if env := os.Getenv("GO_ENV"); env != "test" {
		fmt.Fprintf(os.Stderr, "config tests refuse to run with GO_ENV=%q; run GO_ENV=test go test ./...\n", env)
		os.Exit(1)
	}

	os.Exit(m.Run())
}
