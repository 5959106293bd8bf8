package joblogs

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/robinjoseph08/golib/logger"
)

const maxDataValueLen = 1024

// JobLogger wraps logging to both stdout and the run report.
type JobLogger struct {
	report *Report
	log    logger.Logger
}

// NewJobLogger creates a JobLogger that records into report. Log lines carry
// the report's run id.
func NewJobLogger(ctx context.Context, report *Report) *JobLogger {
	return &JobLogger{
		report: report,
		log:    logger.FromContext(ctx).Data(logger.Data{"run_id": report.RunID}),
	}
}

// Logger returns the underlying logger with the run id attached.
func (l *JobLogger) Logger() logger.Logger {
	return l.log
}

// Report returns the report being recorded into.
func (l *JobLogger) Report() *Report {
	return l.report
}

// Debug logs a debug-level message. Debug lines aren't kept in the report.
func (l *JobLogger) Debug(msg string, data logger.Data) {
	l.log.Debug(msg, data)
}

// Info logs an info-level message.
func (l *JobLogger) Info(msg string, data logger.Data) {
	l.log.Info(msg, data)
	l.persist(LevelInfo, msg, data, nil)
}

// Warn logs a warning-level message.
func (l *JobLogger) Warn(msg string, data logger.Data) {
	l.log.Warn(msg, data)
	l.persist(LevelWarn, msg, data, nil)
}

// Error logs an error-level message with automatic stack trace.
func (l *JobLogger) Error(msg string, err error, data logger.Data) {
	l.log.Err(err).Error(msg, data)
	data = withError(data, err)
	stack := string(debug.Stack())
	l.persist(LevelError, msg, data, &stack)
}

// Fatal logs a fatal-level message with automatic stack trace (for panics).
// Unlike logger.Fatal it doesn't exit the process.
func (l *JobLogger) Fatal(msg string, err error, data logger.Data) {
	data = withError(data, err)
	l.log.Error(msg, data)
	stack := string(debug.Stack())
	l.persist(LevelFatal, msg, data, &stack)
}

// RecordFile adds the outcome of one file to the report.
func (l *JobLogger) RecordFile(entry FileEntry) {
	l.report.Files = append(l.report.Files, entry)
	l.report.Totals[entry.Outcome]++
}

// Finish stamps the report with the terminal status.
func (l *JobLogger) Finish(status int, statusCode string) {
	now := time.Now()
	l.report.FinishedAt = &now
	l.report.Status = status
	l.report.StatusCode = statusCode
}

func (l *JobLogger) persist(level, msg string, data logger.Data, stackTrace *string) {
	var truncatedData map[string]interface{}
	if len(data) > 0 {
		truncatedData = make(map[string]interface{}, len(data))
		for k, v := range data {
			s, ok := v.(string)
			if ok && len(s) > maxDataValueLen {
				truncatedData[k] = truncateMiddle(s, maxDataValueLen)
			} else {
				truncatedData[k] = v
			}
		}
	}

	l.report.Logs = append(l.report.Logs, LogEntry{
		Level:      level,
		Message:    msg,
		Data:       truncatedData,
		StackTrace: stackTrace,
		CreatedAt:  time.Now(),
	})
}

// withError returns a copy of data with the error message added.
func withError(data logger.Data, err error) logger.Data {
	out := make(logger.Data, len(data)+1)
	for k, v := range data {
		out[k] = v
	}
	if err != nil {
		out["error"] = err.Error()
	}
	return out
}

func truncateMiddle(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	half := (maxLen - 5) / 2
	return s[:half] + " ... " + s[len(s)-half:]
}
