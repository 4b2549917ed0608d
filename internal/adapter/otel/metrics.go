package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "manuald"

// Metrics holds all manuald metric instruments.
type Metrics struct {
	ImportsRun       metric.Int64Counter
	SectionsImported metric.Int64Counter
	ImportFailures   metric.Int64Counter
	Reorders         metric.Int64Counter
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.ImportsRun, err = meter.Int64Counter("manuald.imports.run",
		metric.WithDescription("Number of import attempts"))
	if err != nil {
		return nil, err
	}

	m.SectionsImported, err = meter.Int64Counter("manuald.sections.imported",
		metric.WithDescription("Number of sections created by import"))
	if err != nil {
		return nil, err
	}

	m.ImportFailures, err = meter.Int64Counter("manuald.imports.failed",
		metric.WithDescription("Number of import attempts ending in an error message"))
	if err != nil {
		return nil, err
	}

	m.Reorders, err = meter.Int64Counter("manuald.sections.reordered",
		metric.WithDescription("Number of reorder submissions applied"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
