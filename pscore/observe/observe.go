/*
   Copyright 2025 The PatternSaver Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package observe

import (
	stderrors "errors"

	"github.com/google/uuid"

	"patternsaver.dev/patterns/pscore/errors"
	"patternsaver.dev/patterns/pscore/model"
)

// Recorder logs and counts validation outcomes. A nil Logger or Metrics
// disables that half.
type Recorder struct {
	log     *Logger
	metrics *Metrics
	newID   func() string
}

// NewRecorder returns a Recorder writing to log and m.
func NewRecorder(log *Logger, m *Metrics) *Recorder {
	if log == nil {
		log = Nop()
	}
	return &Recorder{log: log, metrics: m, newID: uuid.NewString}
}

// Observe runs build under a fresh request ID and records its outcome under
// aggregate. The result and error of build are returned unchanged.
//
// A DefectError panic is logged and counted as "defect" before it is
// re-raised; any other panic passes through untouched.
func Observe[T model.Loggable](r *Recorder, aggregate string, build func() (T, error)) (T, error) {
	id := r.newID()
	log := r.log.With("request_id", id, "aggregate", aggregate)

	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		if err, ok := rec.(error); ok {
			var de *errors.DefectError
			if stderrors.As(err, &de) {
				log.Error("validation defect", "error", de.Error())
				r.count(aggregate, OutcomeDefect)
			}
		}
		panic(rec)
	}()

	v, err := build()
	if err != nil {
		kind := errors.Kind(err)
		log.Info("validation rejected", "outcome", kind, "recoverable", errors.IsRecoverable(err), "error", err.Error())
		r.count(aggregate, kind)
		return v, err
	}
	log.Info("validation accepted", "outcome", OutcomeOK, "value", v.Redacted())
	r.count(aggregate, OutcomeOK)
	return v, nil
}

func (r *Recorder) count(aggregate, outcome string) {
	if r.metrics == nil {
		return
	}
	r.metrics.Validation(aggregate, outcome).Inc()
}
