package errcodes

import (
	"context"

	"github.com/robinjoseph08/golib/logger"
)

// Handle logs err the way its status warrants and returns the status the
// process should exit with. Unexpected errors are logged with their stack.
func Handle(ctx context.Context, err error) ExitStatus {
	if err == nil {
		return StatusOK
	}
	log := logger.FromContext(ctx)

	status := StatusOf(err)
	data := logger.Data{"status": status.String(), "exit_code": int(status), "code": CodeOf(err)}

	switch status {
	case StatusDirNotFound:
		log.Err(err).Warn("directory not found", data)
	default:
		log.Err(err).Error("run failed", data)
	}
	return status
}
