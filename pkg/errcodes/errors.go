package errcodes

import (
	"fmt"

	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"
)

// ExitStatus is the terminal code the process hands back to the host.
type ExitStatus int

const (
	// StatusOK means the run succeeded, including when there was nothing to do.
	StatusOK ExitStatus = 90
	// StatusError means the run failed unexpectedly or was misconfigured.
	StatusError ExitStatus = 91
	// StatusDirNotFound means the target directory does not exist.
	StatusDirNotFound ExitStatus = 93
	// StatusDisabled means the extension is turned off and did nothing.
	StatusDisabled ExitStatus = 94
)

var statusNames = map[ExitStatus]string{
	StatusOK:          "OK",
	StatusError:       "ERROR",
	StatusDirNotFound: "DIR_NOT_FOUND",
	StatusDisabled:    "DISABLED",
}

// severity orders statuses for aggregation. Disabled never mixes with the
// others since a disabled run does no work.
var severity = map[ExitStatus]int{
	StatusDisabled:    0,
	StatusOK:          1,
	StatusError:       2,
	StatusDirNotFound: 3,
}

func (s ExitStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("ExitStatus(%d)", int(s))
}

// Code returns the snake_case form of the status name, e.g. "dir_not_found".
func (s ExitStatus) Code() string {
	return strcase.ToSnake(s.String())
}

// Worse returns whichever of a and b is the more severe status.
func Worse(a, b ExitStatus) ExitStatus {
	if severity[b] > severity[a] {
		return b
	}
	return a
}

type Error struct {
	Status  ExitStatus
	Message string
	Code    string
}

func (err *Error) Error() string {
	return err.Message
}

func (err *Error) As(target interface{}) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	te.Status = err.Status
	te.Message = err.Message
	te.Code = err.Code
	return true
}

func (err *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return te.Status == err.Status &&
		te.Message == err.Message &&
		te.Code == err.Code
}

// DirectoryNotFound returns an error for a target directory that doesn't
// exist.
func DirectoryNotFound(dir string) error {
	return &Error{
		StatusDirNotFound,
		fmt.Sprintf("Directory %q not found.", dir),
		"directory_not_found",
	}
}

// MissingDirectory returns an error for a run started without a directory.
func MissingDirectory() error {
	return &Error{
		StatusError,
		"Directory not provided.",
		"missing_directory",
	}
}

func ConfigurationError(msg string) error {
	return &Error{
		StatusError,
		msg,
		"configuration_error",
	}
}

func ValidationError(msg string) error {
	return &Error{
		StatusError,
		msg,
		"validation_error",
	}
}

// StatusOf maps err to the status the process should exit with. Errors that
// aren't *Error are unexpected and map to StatusError.
func StatusOf(err error) ExitStatus {
	if err == nil {
		return StatusOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return StatusError
}

// CodeOf returns the code of err, or "unexpected_error" for errors that
// aren't *Error.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return "unexpected_error"
}
