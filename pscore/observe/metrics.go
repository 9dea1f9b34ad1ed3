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
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels of the validations counter. OutcomeScalar, OutcomeSchema
// and OutcomeInvariant match the labels returned by errors.Kind.
const (
	OutcomeOK        = "ok"
	OutcomeScalar    = "scalar"
	OutcomeSchema    = "schema"
	OutcomeInvariant = "invariant"
	OutcomeOther     = "other"
	OutcomeDefect    = "defect"
)

// Metrics owns a private registry so several instances (one per test, one
// per process) never collide on registration.
type Metrics struct {
	registry    *prometheus.Registry
	validations *prometheus.CounterVec
}

// NewMetrics creates and registers the validation collectors.
func NewMetrics() *Metrics {
	validations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pscore",
		Name:      "validations_total",
		Help:      "Validations performed, labeled by aggregate and outcome.",
	}, []string{"aggregate", "outcome"})

	reg := prometheus.NewRegistry()
	reg.MustRegister(validations)
	return &Metrics{registry: reg, validations: validations}
}

// Validation returns the counter for one aggregate/outcome pair.
func (m *Metrics) Validation(aggregate, outcome string) prometheus.Counter {
	return m.validations.WithLabelValues(aggregate, outcome)
}

// Gatherer exposes the underlying registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes every collected metric to path in the text
// exposition format, replacing the file atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
