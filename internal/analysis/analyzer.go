package analysis

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	pterrors "github.com/pagertrace/pagertrace/internal/errors"
)

// Analyzer runs the one-shot correlation pipeline: resolve incident(s),
// compute the lookback window, gather in-window changes, classify, and
// compose recommendations. Each invocation is synchronous and holds no
// state between runs.
type Analyzer struct {
	incidents  IncidentSource
	changes    ChangeSource
	classifier *Classifier
	lookback   time.Duration
	logger     *logrus.Logger
}

// NewAnalyzer wires the pipeline. A zero lookback falls back to
// DefaultLookback.
func NewAnalyzer(incidents IncidentSource, changes ChangeSource, rules RuleSet, lookback time.Duration, logger *logrus.Logger) *Analyzer {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Analyzer{
		incidents:  incidents,
		changes:    changes,
		classifier: NewClassifier(rules),
		lookback:   lookback,
		logger:     logger,
	}
}

// IncidentReport is the complete output of single-incident analysis.
type IncidentReport struct {
	Incident        *Incident
	Correlation     CorrelationResult
	Categories      []Category
	Recommendations []RecommendationBlock

	// Detail is the stat/diff text of the most relevant change; nil
	// when there is no in-window change. DetailNote carries the
	// explanatory placeholder when detail retrieval failed.
	Detail     *ChangeDetail
	DetailNote string

	// ChangeHistoryNote is set when the change backend failed and the
	// analysis proceeded with an empty change set.
	ChangeHistoryNote string
}

// ServiceReport is the output of service-mode analysis.
type ServiceReport struct {
	ServiceName string
	Since       time.Time
	Incidents   []Incident
	Counts      AggregateCounts
}

// AnalyzeIncident runs the full single-incident pipeline. A failing
// change backend degrades to an empty correlation (the baseline
// recommendation still fires); every other failure is terminal.
func (a *Analyzer) AnalyzeIncident(ctx context.Context, incidentID string) (*IncidentReport, error) {
	incident, err := a.incidents.Incident(ctx, incidentID)
	if err != nil {
		return nil, err
	}

	window, err := ComputeWindow(incident.CreatedAt, a.lookback)
	if err != nil {
		return nil, err
	}
	a.logger.WithFields(logrus.Fields{
		"incident": incident.ID,
		"since":    window.Since,
		"until":    window.Until,
	}).Debug("computed correlation window")

	report := &IncidentReport{Incident: incident}

	changes, err := a.changes.ChangesBetween(ctx, window.Since, window.Until)
	if err != nil {
		if !errors.Is(err, pterrors.ErrChangeHistoryUnavailable) {
			return nil, err
		}
		a.logger.WithError(err).Warn("change history unavailable, continuing with empty change set")
		report.ChangeHistoryNote = "change history was unavailable; no changes could be correlated"
		changes = nil
	}

	report.Correlation = Correlate(window, changes)
	report.Categories = a.classifier.Classify(incident)
	report.Recommendations = Recommend(incident, report.Correlation, report.Categories)

	if mr := report.Correlation.MostRelevant; mr != nil {
		detail, err := a.changes.ChangeDetail(ctx, mr.ID)
		if err != nil {
			// Truncated history is a legitimate terminal state for a
			// single change; substitute a placeholder and move on.
			a.logger.WithError(err).WithField("change", mr.ShortID()).Warn("change detail unavailable")
			report.DetailNote = "details for change " + mr.ShortID() + " could not be retrieved"
		} else {
			report.Detail = detail
		}
	}

	return report, nil
}

// AnalyzeService lists a service's incidents since the given instant
// and aggregates them by status and urgency. An unresolved service name
// yields an empty report, not an error.
func (a *Analyzer) AnalyzeService(ctx context.Context, serviceName string, since time.Time) (*ServiceReport, error) {
	incidents, err := a.incidents.ListIncidents(ctx, ListFilter{
		ServiceName: serviceName,
		Since:       since,
	})
	if err != nil {
		return nil, err
	}

	return &ServiceReport{
		ServiceName: serviceName,
		Since:       since,
		Incidents:   incidents,
		Counts:      Aggregate(incidents),
	}, nil
}
