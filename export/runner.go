package export

import (
	"context"
	"fmt"
	"time"

	"github.com/alex-pricope/eurovision-scoreboard/logging"
	"github.com/alex-pricope/eurovision-scoreboard/metrics"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	StatusGenerating = "generating"
	StatusComplete   = "complete"
	StatusError      = "error"

	jobIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	jobIDLength   = 10
)

type Progress struct {
	JobID    string `json:"jobId"`
	Current  int    `json:"current"`
	Total    int    `json:"total"`
	Filename string `json:"filename"`
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
}

type Result struct {
	JobID    string        `json:"jobId"`
	Files    []string      `json:"files"`
	Duration time.Duration `json:"duration"`
}

// Runner renders units one after another into a sink. Step i+1 starts only after
// step i has been captured and written.
type Runner struct {
	OnProgress func(Progress)
}

func NewJobID() string {
	id, err := gonanoid.Generate(jobIDAlphabet, jobIDLength)
	if err != nil {
		return fmt.Sprintf("job%d", time.Now().UnixNano())
	}
	return id
}

// Run stops at the first failed unit and returns its error; no partial result is reported
// as success. The context is checked before every unit.
func (r *Runner) Run(ctx context.Context, units []Unit, renderer Renderer, sink Sink) (Result, error) {
	start := time.Now()
	result := Result{JobID: NewJobID()}
	total := len(units)
	logging.Log.Infof("EXPORT: job %s started with %d units", result.JobID, total)

	fail := func(i int, u Unit, err error) (Result, error) {
		metrics.RecordExportUnit(err)
		r.report(Progress{JobID: result.JobID, Current: i + 1, Total: total, Filename: u.Filename, Status: StatusError, Message: err.Error()})
		logging.Log.Errorf("EXPORT: job %s failed at %s: %v", result.JobID, u.Filename, err)
		_ = sink.Close()
		return result, err
	}

	for i, u := range units {
		if err := ctx.Err(); err != nil {
			return fail(i, u, err)
		}
		r.report(Progress{JobID: result.JobID, Current: i + 1, Total: total, Filename: u.Filename, Status: StatusGenerating})

		data, err := renderer.Render(ctx, u)
		if err != nil {
			return fail(i, u, err)
		}
		if err := sink.Put(u.Filename, data); err != nil {
			return fail(i, u, fmt.Errorf("write %s: %w", u.Filename, err))
		}
		metrics.RecordExportUnit(nil)
		result.Files = append(result.Files, u.Filename)
	}

	if err := sink.Close(); err != nil {
		logging.Log.Errorf("EXPORT: job %s could not finalise output: %v", result.JobID, err)
		return result, err
	}

	result.Duration = time.Since(start)
	metrics.RecordExportRun(result.Duration)
	r.report(Progress{JobID: result.JobID, Current: total, Total: total, Status: StatusComplete})
	logging.Log.Infof("EXPORT: job %s wrote %d files in %s", result.JobID, len(result.Files), result.Duration)
	return result, nil
}

func (r *Runner) report(p Progress) {
	if r.OnProgress != nil {
		r.OnProgress(p)
	}
}
