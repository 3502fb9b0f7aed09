package output

import (
	"io"

	"github.com/pagertrace/pagertrace/internal/analysis"
	"github.com/pagertrace/pagertrace/internal/pagerduty"
)

// Formatter renders analysis results for one output mode.
type Formatter interface {
	IncidentReport(r *analysis.IncidentReport, w io.Writer) error
	ServiceReport(r *analysis.ServiceReport, w io.Writer) error
	IncidentList(incidents []analysis.Incident, w io.Writer) error
	OnCallList(oncalls []pagerduty.OnCall, w io.Writer) error
}

// NewFormatter selects the formatter for the requested mode.
func NewFormatter(jsonMode bool) Formatter {
	if jsonMode {
		return &JSONFormatter{}
	}
	return &TextFormatter{}
}
