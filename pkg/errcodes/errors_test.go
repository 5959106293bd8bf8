package errcodes

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestExitStatusValues(t *testing.T) {
	assert.Equal(t, 90, int(StatusOK))
	assert.Equal(t, 91, int(StatusError))
	assert.Equal(t, 93, int(StatusDirNotFound))
	assert.Equal(t, 94, int(StatusDisabled))
}

func TestExitStatusString(t *testing.T) {
	assert.Equal(t, "OK", StatusOK.String())
	assert.Equal(t, "DIR_NOT_FOUND", StatusDirNotFound.String())
	assert.Equal(t, "ExitStatus(7)", ExitStatus(7).String())
}

func TestExitStatusCode(t *testing.T) {
	assert.Equal(t, "ok", StatusOK.Code())
	assert.Equal(t, "error", StatusError.Code())
	assert.Equal(t, "dir_not_found", StatusDirNotFound.Code())
	assert.Equal(t, "disabled", StatusDisabled.Code())
}

func TestWorse(t *testing.T) {
	assert.Equal(t, StatusOK, Worse(StatusOK, StatusOK))
	assert.Equal(t, StatusError, Worse(StatusOK, StatusError))
	assert.Equal(t, StatusError, Worse(StatusError, StatusOK))
	assert.Equal(t, StatusDirNotFound, Worse(StatusError, StatusDirNotFound))
	assert.Equal(t, StatusDirNotFound, Worse(StatusDirNotFound, StatusError))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, StatusOK, StatusOf(nil))
	assert.Equal(t, StatusDirNotFound, StatusOf(DirectoryNotFound("/downloads/x")))
	assert.Equal(t, StatusDirNotFound, StatusOf(errors.Wrap(DirectoryNotFound("/x"), "processing")))
	assert.Equal(t, StatusError, StatusOf(MissingDirectory()))
	assert.Equal(t, StatusError, StatusOf(errors.New("boom")))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, "directory_not_found", CodeOf(DirectoryNotFound("/x")))
	assert.Equal(t, "validation_error", CodeOf(errors.WithStack(ValidationError("bad"))))
	assert.Equal(t, "unexpected_error", CodeOf(errors.New("boom")))
}

func TestErrorIs(t *testing.T) {
	err := errors.WithStack(DirectoryNotFound("/x"))
	assert.True(t, errors.Is(err, DirectoryNotFound("/x")))
	assert.False(t, errors.Is(err, DirectoryNotFound("/y")))
}
