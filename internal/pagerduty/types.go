package pagerduty

import (
	"time"

	"github.com/pagertrace/pagertrace/internal/analysis"
)

// Wire types for the PagerDuty REST v2 API. Only the fields the
// analyzer consumes are mapped.

type incidentEnvelope struct {
	Incident apiIncident `json:"incident"`
}

type incidentListEnvelope struct {
	Incidents []apiIncident `json:"incidents"`
}

type serviceListEnvelope struct {
	Services []apiService `json:"services"`
}

type oncallListEnvelope struct {
	OnCalls []apiOnCall `json:"oncalls"`
}

type apiIncident struct {
	ID             string          `json:"id"`
	IncidentNumber int             `json:"incident_number"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Status         string          `json:"status"`
	Urgency        string          `json:"urgency"`
	CreatedAt      time.Time       `json:"created_at"`
	LastChangeAt   time.Time       `json:"last_status_change_at"`
	Service        apiRef          `json:"service"`
	Assignments    []apiAssignment `json:"assignments"`
	HTMLURL        string          `json:"html_url"`
}

type apiRef struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Summary string `json:"summary"`
}

type apiAssignment struct {
	Assignee apiRef `json:"assignee"`
}

type apiService struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Summary string `json:"summary"`
}

type apiOnCall struct {
	User             apiRef `json:"user"`
	Schedule         apiRef `json:"schedule"`
	EscalationPolicy apiRef `json:"escalation_policy"`
	EscalationLevel  int    `json:"escalation_level"`
	Start            string `json:"start"`
	End              string `json:"end"`
}

// OnCall describes one current on-call entry.
type OnCall struct {
	User            string
	Schedule        string
	Policy          string
	EscalationLevel int
}

func (i apiIncident) toAnalysis() analysis.Incident {
	inc := analysis.Incident{
		ID:          i.ID,
		Number:      i.IncidentNumber,
		Title:       i.Title,
		Description: i.Description,
		Status:      analysis.ParseStatus(i.Status),
		Urgency:     analysis.ParseUrgency(i.Urgency),
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.LastChangeAt,
		Service: analysis.ServiceRef{
			ID:   i.Service.ID,
			Name: i.Service.Summary,
		},
		HTMLURL: i.HTMLURL,
	}
	for _, a := range i.Assignments {
		inc.Assignments = append(inc.Assignments, analysis.Assignment{
			Assignee: a.Assignee.Summary,
			Type:     a.Assignee.Type,
		})
	}
	return inc
}
