package worker

import (
	"context"
	"testing"

	"github.com/robinjoseph08/golib/logger"
	"github.com/shishobooks/removecrud/internal/testgen"
	"github.com/shishobooks/removecrud/pkg/config"
)

// testContext holds all the dependencies needed for testing the worker.
type testContext struct {
	t      *testing.T
	ctx    context.Context
	dir    string
	config *config.Config
	worker *Worker
}

// newTestContext creates a download directory and a worker configured to
// clean it up.
func newTestContext(t *testing.T) *testContext {
	t.Helper()

	dir := testgen.TempDownloadDir(t)
	cfg := config.NewForTest(dir)

	return &testContext{
		t:      t,
		ctx:    logger.New().WithContext(context.Background()),
		dir:    dir,
		config: cfg,
		worker: New(cfg),
	}
}

func (tc *testContext) createFiles(relPaths ...string) []string {
	tc.t.Helper()
	return testgen.CreateFiles(tc.t, tc.dir, relPaths...)
}

func (tc *testContext) listFiles() []string {
	tc.t.Helper()
	return testgen.ListFiles(tc.t, tc.dir)
}
