package pagerduty

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/pagertrace/pagertrace/internal/analysis"
	"github.com/pagertrace/pagertrace/internal/errors"
)

// Client talks to the PagerDuty REST v2 API with client-side rate
// limiting. It implements analysis.IncidentSource. All calls are
// blocking; timeout policy lives in the injected http.Client.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	token       string
	logger      *logrus.Logger
}

// NewClient creates a PagerDuty client. rateLimit is requests per
// second; zero falls back to 10.
func NewClient(token, baseURL string, rateLimit int, logger *logrus.Logger) *Client {
	if rateLimit <= 0 {
		rateLimit = 10
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), 1),
		baseURL:     baseURL,
		token:       token,
		logger:      logger,
	}
}

// get performs one authenticated GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Token token="+c.token)
	req.Header.Set("Accept", "application/vnd.pagerduty+json;version=2")
	req.Header.Set("Content-Type", "application/json")

	c.logger.WithField("endpoint", endpoint).Debug("pagerduty request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.BackendUnavailable(endpoint, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errors.AuthFailure(fmt.Sprintf("pagerduty rejected the API token (HTTP %d)", resp.StatusCode)).
			WithHint("verify PAGERDUTY_API_TOKEN is a valid REST API token with read access")
	case resp.StatusCode == http.StatusNotFound:
		return errors.NotFoundf("pagerduty resource not found: %s", endpoint)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return errors.BackendUnavailable(endpoint, fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.BackendUnavailable(endpoint, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// Incident fetches a single incident by id.
func (c *Client) Incident(ctx context.Context, id string) (*analysis.Incident, error) {
	var envelope incidentEnvelope
	if err := c.get(ctx, "/incidents/"+url.PathEscape(id), &envelope); err != nil {
		return nil, err
	}
	if envelope.Incident.ID == "" {
		return nil, errors.NotFoundf("incident %s not found", id)
	}
	inc := envelope.Incident.toAnalysis()
	return &inc, nil
}

// ListIncidents fetches incidents matching the filter. An unresolvable
// service name yields an empty list, not an error. Statuses default to
// open incidents (triggered and acknowledged).
func (c *Client) ListIncidents(ctx context.Context, filter analysis.ListFilter) ([]analysis.Incident, error) {
	params := url.Values{}

	statuses := filter.Statuses
	if len(statuses) == 0 {
		statuses = []analysis.Status{analysis.StatusTriggered, analysis.StatusAcknowledged}
	}
	for _, s := range statuses {
		params.Add("statuses[]", string(s))
	}
	if !filter.Since.IsZero() {
		params.Add("since", filter.Since.Format(time.RFC3339))
	}
	if !filter.Until.IsZero() {
		params.Add("until", filter.Until.Format(time.RFC3339))
	}

	if filter.ServiceName != "" {
		serviceID, ok, err := c.resolveService(ctx, filter.ServiceName)
		if err != nil {
			return nil, err
		}
		if !ok {
			c.logger.WithField("service", filter.ServiceName).Debug("service name did not resolve")
			return nil, nil
		}
		params.Add("service_ids[]", serviceID)
	}

	var envelope incidentListEnvelope
	if err := c.get(ctx, "/incidents?"+params.Encode(), &envelope); err != nil {
		return nil, err
	}

	incidents := make([]analysis.Incident, 0, len(envelope.Incidents))
	for _, raw := range envelope.Incidents {
		incidents = append(incidents, raw.toAnalysis())
	}
	return incidents, nil
}

// resolveService looks a service name up in the service directory.
// Exact name match wins; otherwise the first query result is taken
// since the backend's query is already a fuzzy search.
func (c *Client) resolveService(ctx context.Context, name string) (string, bool, error) {
	var envelope serviceListEnvelope
	if err := c.get(ctx, "/services?query="+url.QueryEscape(name), &envelope); err != nil {
		return "", false, err
	}
	if len(envelope.Services) == 0 {
		return "", false, nil
	}
	for _, svc := range envelope.Services {
		if svc.Name == name {
			return svc.ID, true, nil
		}
	}
	return envelope.Services[0].ID, true, nil
}

// ListOnCalls returns who is currently on call across escalation
// policies.
func (c *Client) ListOnCalls(ctx context.Context) ([]OnCall, error) {
	var envelope oncallListEnvelope
	if err := c.get(ctx, "/oncalls", &envelope); err != nil {
		return nil, err
	}

	oncalls := make([]OnCall, 0, len(envelope.OnCalls))
	for _, raw := range envelope.OnCalls {
		oncalls = append(oncalls, OnCall{
			User:            raw.User.Summary,
			Schedule:        raw.Schedule.Summary,
			Policy:          raw.EscalationPolicy.Summary,
			EscalationLevel: raw.EscalationLevel,
		})
	}
	return oncalls, nil
}
