package pagerduty

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagertrace/pagertrace/internal/analysis"
	"github.com/pagertrace/pagertrace/internal/errors"
)

const incidentJSON = `{
  "incident": {
    "id": "PABC123",
    "incident_number": 42,
    "title": "ads-demo-service is down",
    "description": "Container OOMKilled by kubelet",
    "status": "triggered",
    "urgency": "high",
    "created_at": "2025-10-10T12:00:00Z",
    "last_status_change_at": "2025-10-10T12:05:00Z",
    "service": {"id": "PSVC1", "type": "service_reference", "summary": "ads-demo-service"},
    "assignments": [{"assignee": {"id": "PU1", "type": "user_reference", "summary": "Jordan Oncall"}}],
    "html_url": "https://example.pagerduty.com/incidents/PABC123"
  }
}`

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-token", server.URL, 100, nil)
}

func TestIncident(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/incidents/PABC123", r.URL.Path)
		assert.Equal(t, "Token token=test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/vnd.pagerduty+json;version=2", r.Header.Get("Accept"))
		fmt.Fprint(w, incidentJSON)
	}))

	incident, err := client.Incident(context.Background(), "PABC123")
	require.NoError(t, err)

	assert.Equal(t, "PABC123", incident.ID)
	assert.Equal(t, 42, incident.Number)
	assert.Equal(t, analysis.StatusTriggered, incident.Status)
	assert.Equal(t, analysis.UrgencyHigh, incident.Urgency)
	assert.Equal(t, "ads-demo-service", incident.Service.Name)
	require.Len(t, incident.Assignments, 1)
	assert.Equal(t, "Jordan Oncall", incident.Assignments[0].Assignee)
	assert.False(t, incident.CreatedAt.IsZero())
}

func TestIncidentAuthFailure(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		_, err := client.Incident(context.Background(), "PABC123")
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrAuthFailure, "HTTP %d must map to AuthFailure", status)
		assert.NotEmpty(t, errors.HintOf(err), "auth failures carry a remediation hint")
	}
}

func TestIncidentNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.Incident(context.Background(), "PMISSING")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestIncidentBackendUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on
	client := NewClient("test-token", server.URL, 100, nil)

	_, err := client.Incident(context.Background(), "PABC123")
	assert.ErrorIs(t, err, errors.ErrBackendUnavailable)
}

func TestListIncidentsDefaultsToOpenStatuses(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/incidents", r.URL.Path)
		statuses := r.URL.Query()["statuses[]"]
		assert.ElementsMatch(t, []string{"triggered", "acknowledged"}, statuses)
		fmt.Fprint(w, `{"incidents": []}`)
	}))

	incidents, err := client.ListIncidents(context.Background(), analysis.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, incidents)
}

func TestListIncidentsResolvesServiceByExactName(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/services":
			assert.Equal(t, "ads-demo-service", r.URL.Query().Get("query"))
			fmt.Fprint(w, `{"services": [
				{"id": "POTHER", "name": "ads-demo-service-staging"},
				{"id": "PSVC1", "name": "ads-demo-service"}
			]}`)
		case "/incidents":
			assert.Equal(t, []string{"PSVC1"}, r.URL.Query()["service_ids[]"])
			fmt.Fprint(w, `{"incidents": [{"id": "P1", "status": "triggered", "urgency": "low",
				"created_at": "2025-10-09T08:00:00Z"}]}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	incidents, err := client.ListIncidents(context.Background(), analysis.ListFilter{
		ServiceName: "ads-demo-service",
	})
	require.NoError(t, err)
	require.Len(t, incidents, 1)
	assert.Equal(t, "P1", incidents[0].ID)
}

func TestListIncidentsUnknownServiceYieldsEmpty(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/services", r.URL.Path, "no incident listing should happen")
		fmt.Fprint(w, `{"services": []}`)
	}))

	incidents, err := client.ListIncidents(context.Background(), analysis.ListFilter{
		ServiceName: "no-such-service",
	})
	require.NoError(t, err, "an unresolved service name is not an error")
	assert.Empty(t, incidents)
}

func TestListOnCalls(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oncalls", r.URL.Path)
		fmt.Fprint(w, `{"oncalls": [{
			"user": {"summary": "Jordan Oncall"},
			"schedule": {"summary": "Primary"},
			"escalation_policy": {"summary": "Ads Demo EP"},
			"escalation_level": 1
		}]}`)
	}))

	oncalls, err := client.ListOnCalls(context.Background())
	require.NoError(t, err)
	require.Len(t, oncalls, 1)
	assert.Equal(t, "Jordan Oncall", oncalls[0].User)
	assert.Equal(t, "Ads Demo EP", oncalls[0].Policy)
	assert.Equal(t, 1, oncalls[0].EscalationLevel)
}

func TestUnknownStatusAndUrgencyParseToUnknown(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"incident": {"id": "P1", "status": "mystery", "urgency": "",
			"created_at": "2025-10-10T12:00:00Z"}}`)
	}))

	incident, err := client.Incident(context.Background(), "P1")
	require.NoError(t, err)
	assert.Equal(t, analysis.StatusUnknown, incident.Status)
	assert.Equal(t, analysis.UrgencyUnknown, incident.Urgency)
}
