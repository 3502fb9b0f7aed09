package output

import (
	"encoding/json"
	"io"

	"github.com/pagertrace/pagertrace/internal/analysis"
	"github.com/pagertrace/pagertrace/internal/pagerduty"
)

// JSONFormatter renders machine-readable output for scripting.
type JSONFormatter struct{}

type jsonIncidentReport struct {
	Incident        *analysis.Incident             `json:"incident"`
	Window          analysis.Window                `json:"window"`
	Changes         []analysis.Change              `json:"changes"`
	MostRelevant    *analysis.Change               `json:"most_relevant_change,omitempty"`
	Categories      []analysis.Category            `json:"categories"`
	Recommendations []analysis.RecommendationBlock `json:"recommendations"`
	Detail          *analysis.ChangeDetail         `json:"change_detail,omitempty"`
	Notes           []string                       `json:"notes,omitempty"`
}

func (f *JSONFormatter) IncidentReport(r *analysis.IncidentReport, w io.Writer) error {
	doc := jsonIncidentReport{
		Incident:        r.Incident,
		Window:          r.Correlation.Window,
		Changes:         r.Correlation.Changes,
		MostRelevant:    r.Correlation.MostRelevant,
		Categories:      r.Categories,
		Recommendations: r.Recommendations,
		Detail:          r.Detail,
	}
	if doc.Changes == nil {
		doc.Changes = []analysis.Change{}
	}
	if doc.Categories == nil {
		doc.Categories = []analysis.Category{}
	}
	if r.ChangeHistoryNote != "" {
		doc.Notes = append(doc.Notes, r.ChangeHistoryNote)
	}
	if r.DetailNote != "" {
		doc.Notes = append(doc.Notes, r.DetailNote)
	}
	return encode(w, doc)
}

type jsonServiceReport struct {
	Service   string                   `json:"service"`
	Since     string                   `json:"since"`
	Incidents []analysis.Incident      `json:"incidents"`
	ByStatus  map[analysis.Status]int  `json:"by_status"`
	ByUrgency map[analysis.Urgency]int `json:"by_urgency"`
	Total     int                      `json:"total"`
}

func (f *JSONFormatter) ServiceReport(r *analysis.ServiceReport, w io.Writer) error {
	doc := jsonServiceReport{
		Service:   r.ServiceName,
		Since:     r.Since.Format("2006-01-02"),
		Incidents: r.Incidents,
		ByStatus:  r.Counts.ByStatus,
		ByUrgency: r.Counts.ByUrgency,
		Total:     r.Counts.Total,
	}
	if doc.Incidents == nil {
		doc.Incidents = []analysis.Incident{}
	}
	return encode(w, doc)
}

func (f *JSONFormatter) IncidentList(incidents []analysis.Incident, w io.Writer) error {
	if incidents == nil {
		incidents = []analysis.Incident{}
	}
	return encode(w, map[string]any{"incidents": incidents})
}

func (f *JSONFormatter) OnCallList(oncalls []pagerduty.OnCall, w io.Writer) error {
	if oncalls == nil {
		oncalls = []pagerduty.OnCall{}
	}
	return encode(w, map[string]any{"oncalls": oncalls})
}

func encode(w io.Writer, doc any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
