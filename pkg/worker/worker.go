package worker

import (
	"context"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/shishobooks/removecrud/pkg/config"
	"github.com/shishobooks/removecrud/pkg/errcodes"
	"github.com/shishobooks/removecrud/pkg/fileutils"
	"github.com/shishobooks/removecrud/pkg/joblogs"
	"github.com/shishobooks/removecrud/pkg/mediafile"
	"github.com/shishobooks/removecrud/pkg/metrics"
)

type Worker struct {
	config  *config.Config
	metrics *metrics.Recorder
}

func New(cfg *config.Config) *Worker {
	return &Worker{
		config:  cfg,
		metrics: metrics.New(),
	}
}

// Metrics returns the recorder the worker reports into.
func (w *Worker) Metrics() *metrics.Recorder {
	return w.metrics
}

// Run performs one invocation: it honors the enable toggle, processes the
// configured directory, and writes the report and metrics files when they're
// configured. It always returns one of the four exit statuses.
func (w *Worker) Run(ctx context.Context) (*joblogs.Report, errcodes.ExitStatus) {
	report := joblogs.NewReport(w.config.Directory)
	report.NZBName = w.config.NZBName
	report.Category = w.config.Category
	report.DryRun = w.config.DryRun

	jl := joblogs.NewJobLogger(ctx, report)
	ctx = jl.Logger().WithContext(ctx)

	status := w.run(ctx, jl)

	jl.Finish(int(status), status.Code())
	w.metrics.ObserveRun(int(status), status.Code(), w.config.Category, report.StartedAt, report.Duration())
	w.writeOutputs(jl)

	return report, status
}

// ProcessDirectory cleans up the file names under dir and returns the exit
// status of the pass.
func (w *Worker) ProcessDirectory(ctx context.Context, dir string) errcodes.ExitStatus {
	jl := joblogs.NewJobLogger(ctx, joblogs.NewReport(dir))
	return w.process(jl.Logger().WithContext(ctx), jl, dir)
}

func (w *Worker) run(ctx context.Context, jl *joblogs.JobLogger) errcodes.ExitStatus {
	if !w.config.Enabled {
		jl.Info("removecrud is disabled", nil)
		return errcodes.StatusDisabled
	}
	if w.config.Directory == "" {
		err := errcodes.MissingDirectory()
		jl.Error("directory not provided", err, nil)
		return errcodes.StatusOf(err)
	}
	return w.process(ctx, jl, w.config.Directory)
}

func (w *Worker) process(ctx context.Context, jl *joblogs.JobLogger, dir string) (status errcodes.ExitStatus) {
	defer func() {
		if r := recover(); r != nil {
			jl.Fatal("error processing directory", errors.Errorf("panic: %v", r), logger.Data{"directory": dir})
			status = errcodes.StatusError
		}
	}()

	isDir, err := fileutils.IsDir(dir)
	if err != nil {
		jl.Error("error checking directory", err, logger.Data{"directory": dir})
		return errcodes.StatusError
	}
	if !isDir {
		err := errcodes.DirectoryNotFound(dir)
		jl.Error("directory does not exist", err, logger.Data{"directory": dir})
		return errcodes.StatusOf(err)
	}

	jl.Info("processing directory", logger.Data{"directory": dir, "dry_run": w.config.DryRun})

	scan := Scan(ctx, dir)
	w.metrics.ObserveScan(len(scan.Files))

	status = errcodes.StatusOK
	if scan.Err != nil {
		jl.Error("error getting supported files", scan.Err, logger.Data{"directory": dir})
		status = errcodes.Worse(status, errcodes.StatusError)
	}
	if len(scan.Files) == 0 {
		jl.Info("no supported files found in directory", logger.Data{"directory": dir})
		return status
	}

	for _, entry := range scan.Files {
		result := w.processFile(jl, entry)
		jl.RecordFile(result.reportEntry())
		w.metrics.ObserveFile(string(result.Outcome))
	}

	jl.Info("finished processing directory", logger.Data{
		"directory": dir,
		"files":     len(scan.Files),
		"renamed":   jl.Report().Totals[string(OutcomeRenamed)],
		"failed":    jl.Report().Totals[string(OutcomeFailed)],
	})
	return status
}

func (w *Worker) processFile(jl *joblogs.JobLogger, entry FileEntry) (result Result) {
	result = Result{Entry: entry}
	data := logger.Data{"path": entry.Path, "filename": entry.Name}

	defer func() {
		if r := recover(); r != nil {
			result.Outcome = OutcomeFailed
			result.Err = errors.Errorf("panic: %v", r)
			jl.Error("error processing file", result.Err, data)
		}
	}()

	jl.Debug("processing file", data)

	// The file may have been moved or deleted since the scan.
	exists, err := fileutils.Exists(entry.Path)
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Err = err
		jl.Error("error checking file", err, data)
		return result
	}
	if !exists {
		result.Outcome = OutcomeMissing
		jl.Warn("file does not exist", data)
		return result
	}

	cleanName := fileutils.CleanName(entry.Name)
	if cleanName == entry.Name {
		if _, ok := mediafile.Recognize(entry.Name); !ok {
			result.Outcome = OutcomeUnsupported
			jl.Debug("unsupported extension", data)
			return result
		}
		result.Outcome = OutcomeNoChange
		jl.Debug("no changes needed", data)
		return result
	}

	newPath := fileutils.SiblingPath(entry.Path, cleanName)
	result.NewPath = newPath
	data["new_path"] = newPath

	exists, err = fileutils.Exists(newPath)
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Err = err
		jl.Error("error checking target file", err, data)
		return result
	}
	if exists {
		result.Outcome = OutcomeTargetExists
		jl.Warn("target file already exists", data)
		return result
	}

	if w.config.DryRun {
		result.Outcome = OutcomeDryRun
		jl.Info("would rename file", data)
		return result
	}

	err = fileutils.RenameNoOverwrite(entry.Path, newPath)
	switch {
	case errors.Is(err, fileutils.ErrTargetExists):
		result.Outcome = OutcomeTargetExists
		jl.Warn("target file already exists", data)
	case err != nil:
		result.Outcome = OutcomeFailed
		result.Err = err
		jl.Error("error renaming file", err, data)
	default:
		result.Outcome = OutcomeRenamed
		jl.Info("renamed file", data)
	}
	return result
}

func (w *Worker) writeOutputs(jl *joblogs.JobLogger) {
	log := jl.Logger()

	if w.config.ReportFile != "" {
		if err := jl.Report().WriteFile(w.config.ReportFile); err != nil {
			log.Err(err).Error("failed to write report", logger.Data{"path": w.config.ReportFile})
		}
	}
	if w.config.MetricsFile != "" {
		if err := w.metrics.WriteTextfile(w.config.MetricsFile); err != nil {
			log.Err(err).Error("failed to write metrics", logger.Data{"path": w.config.MetricsFile})
		}
	}
}
