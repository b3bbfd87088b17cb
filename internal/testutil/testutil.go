// Package testutil holds helpers shared by package tests
package testutil

import (
	"runtime"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/osutil"
)

// CompareGoldenFile verifies that output matches testdata/<name>.golden. Run
// the tests with -update to rewrite the fixtures.
func CompareGoldenFile(t *testing.T, name string, output []byte) {
	t.Helper()

	if runtime.GOOS == osutil.Windows {
		// golden files are stored with LF line endings
		t.Skip("skipping golden file test in Windows")
	}

	g := goldie.New(
		t,
		goldie.WithFixtureDir("testdata"),
	)

	g.Assert(t, name, output)
}
