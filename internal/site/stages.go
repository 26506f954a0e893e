package site

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// Stage is a discrete unit of work in the site build.
type Stage func(bs *BuildState) error

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal   StageErrorKind = "fatal"   // Build must abort.
	StageErrorWarning StageErrorKind = "warning" // Non-fatal; record and continue.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}

func newWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}

// asStageError classifies a stage failure. Classified errors below fatal
// severity are recorded as warnings.
func asStageError(stage StageName, err error) *StageError {
	var se *StageError
	if errors.As(err, &se) {
		return se
	}
	if ce, ok := err.(*ferrors.ClassifiedError); ok {
		err = ce.WithContext("stage", string(stage))
	}
	if ce, ok := ferrors.AsClassified(err); ok && !ce.IsFatal() {
		return newWarnStageError(stage, err)
	}
	return newFatalStageError(stage, err)
}

// runStages executes stages in order, recording timing and stopping on the first fatal error.
func runStages(bs *BuildState, stages []StageDef) error {
	for _, st := range stages {
		t0 := time.Now()
		err := st.Fn(bs)
		dur := time.Since(t0)

		bs.Report.StageDurations[st.Name] = dur
		bs.recorder.ObserveStageDuration(string(st.Name), dur)

		if err == nil {
			bs.Report.recordStageResult(st.Name, StageResultSuccess, bs.recorder)
			slog.Debug("Stage completed",
				logfields.BuildID(bs.Report.BuildID),
				logfields.Stage(string(st.Name)),
				logfields.DurationMS(float64(dur.Microseconds())/1000))
			continue
		}

		se := asStageError(st.Name, err)
		bs.Report.StageErrorKinds[st.Name] = se.Kind

		if se.Kind == StageErrorWarning {
			bs.Report.Warnings = append(bs.Report.Warnings, se)
			bs.Report.recordStageResult(st.Name, StageResultWarning, bs.recorder)
			slog.Warn("Stage completed with warning",
				logfields.BuildID(bs.Report.BuildID),
				logfields.Stage(string(st.Name)),
				logfields.Error(se.Err))
			continue
		}

		bs.Report.Errors = append(bs.Report.Errors, se)
		bs.Report.recordStageResult(st.Name, StageResultFatal, bs.recorder)
		return se
	}
	return nil
}
