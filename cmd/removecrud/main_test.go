package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shishobooks/removecrud/internal/testgen"
	"github.com/shishobooks/removecrud/pkg/config"
	"github.com/shishobooks/removecrud/pkg/errcodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE",
		"NZBPP_DIRECTORY", "NZBPP_NZBNAME", "NZBPP_CATEGORY",
		"NZBPO_ENABLED", "NZBPO_LOGLEVEL", "NZBPO_DRYRUN", "NZBPO_REPORTFILE", "NZBPO_METRICSFILE",
	} {
		t.Setenv(key, "")
	}
}

func TestRun_FromEnvironment(t *testing.T) {
	clearEnv(t)
	dir := testgen.TempDownloadDir(t)
	testgen.CreateFiles(t, dir, "show.s01e01.mkv.xyz123")
	t.Setenv("NZBPP_DIRECTORY", dir)
	t.Setenv("NZBPP_NZBNAME", "show.s01e01")
	t.Setenv("NZBPO_ENABLED", "yes")

	status := run(context.Background(), []string{"removecrud"})

	assert.Equal(t, errcodes.StatusOK, status)
	assert.Equal(t, []string{"show.s01e01.mkv"}, testgen.ListFiles(t, dir))
}

func TestRun_PositionalDirectoryWins(t *testing.T) {
	clearEnv(t)
	dir := testgen.TempDownloadDir(t)
	testgen.CreateFiles(t, dir, "movie.mp4.part")
	t.Setenv("NZBPP_DIRECTORY", filepath.Join(dir, "elsewhere"))

	status := run(context.Background(), []string{"removecrud", dir})

	assert.Equal(t, errcodes.StatusOK, status)
	assert.Equal(t, []string{"movie.mp4"}, testgen.ListFiles(t, dir))
}

func TestRun_DisabledFlag(t *testing.T) {
	clearEnv(t)
	dir := testgen.TempDownloadDir(t)
	testgen.CreateFiles(t, dir, "movie.mp4.part")
	t.Setenv("NZBPO_ENABLED", "yes")

	status := run(context.Background(), []string{"removecrud", "--enabled=false", "--directory", dir})

	assert.Equal(t, errcodes.StatusDisabled, status)
	assert.Equal(t, []string{"movie.mp4.part"}, testgen.ListFiles(t, dir))
}

func TestRun_DryRunFlagAndReport(t *testing.T) {
	clearEnv(t)
	dir := testgen.TempDownloadDir(t)
	testgen.CreateFiles(t, dir, "movie.mp4.part")
	out := testgen.TempDir(t, "removecrud-out-*")
	report := filepath.Join(out, "report.json")

	status := run(context.Background(), []string{"removecrud", "--dry-run", "--report-file", report, "-d", dir})

	assert.Equal(t, errcodes.StatusOK, status)
	assert.Equal(t, []string{"movie.mp4.part"}, testgen.ListFiles(t, dir))
	assert.True(t, testgen.FileExists(report))
}

func TestRun_DirectoryNotFound(t *testing.T) {
	clearEnv(t)
	dir := testgen.TempDownloadDir(t)

	status := run(context.Background(), []string{"removecrud", filepath.Join(dir, "missing")})

	assert.Equal(t, errcodes.StatusDirNotFound, status)
}

func TestRun_InvalidOption(t *testing.T) {
	clearEnv(t)
	dir := testgen.TempDownloadDir(t)
	t.Setenv("NZBPO_LOGLEVEL", "loud")

	status := run(context.Background(), []string{"removecrud", dir})

	assert.Equal(t, errcodes.StatusError, status)
}

func TestRun_UnknownFlag(t *testing.T) {
	clearEnv(t)

	status := run(context.Background(), []string{"removecrud", "--bogus"})

	assert.Equal(t, errcodes.StatusError, status)
}

func TestRun_HelpAndVersionDoNoWork(t *testing.T) {
	for _, flag := range []string{"--help", "--version"} {
		t.Run(flag, func(t *testing.T) {
			clearEnv(t)
			dir := testgen.TempDownloadDir(t)
			testgen.CreateFiles(t, dir, "movie.mp4.part")
			t.Setenv("NZBPP_DIRECTORY", dir)

			status := run(context.Background(), []string{"removecrud", flag})

			assert.Equal(t, errcodes.StatusError, status)
			assert.Equal(t, []string{"movie.mp4.part"}, testgen.ListFiles(t, dir))
		})
	}
}

func TestOverridesFrom_UnsetBoolsStayNil(t *testing.T) {
	var captured bool
	app := newApp(func(c *cli.Context, o config.Overrides) error {
		captured = true
		assert.Nil(t, o.Enabled)
		assert.Nil(t, o.DryRun)
		assert.Equal(t, "/downloads/x", o.Directory)
		return nil
	})

	require.NoError(t, app.Run([]string{"removecrud", "/downloads/x"}))
	assert.True(t, captured)
}
