package analysis

import (
	"context"
	"strings"
	"time"
)

// Status is the lifecycle state of an incident as reported by the
// incident-management backend.
type Status string

const (
	StatusTriggered    Status = "triggered"
	StatusAcknowledged Status = "acknowledged"
	StatusResolved     Status = "resolved"
	StatusUnknown      Status = "unknown"
)

// ParseStatus maps a raw backend value to a Status, bucketing anything
// unrecognized under StatusUnknown so aggregate totals stay consistent.
func ParseStatus(s string) Status {
	switch Status(strings.ToLower(s)) {
	case StatusTriggered, StatusAcknowledged, StatusResolved:
		return Status(strings.ToLower(s))
	default:
		return StatusUnknown
	}
}

// Urgency is the backend-assigned urgency of an incident.
type Urgency string

const (
	UrgencyHigh    Urgency = "high"
	UrgencyLow     Urgency = "low"
	UrgencyUnknown Urgency = "unknown"
)

// ParseUrgency maps a raw backend value to an Urgency.
func ParseUrgency(s string) Urgency {
	switch Urgency(strings.ToLower(s)) {
	case UrgencyHigh, UrgencyLow:
		return Urgency(strings.ToLower(s))
	default:
		return UrgencyUnknown
	}
}

// ServiceRef identifies the service an incident belongs to.
type ServiceRef struct {
	ID   string
	Name string
}

// Assignment records one assignee on an incident.
type Assignment struct {
	Assignee string
	Type     string
}

// Incident is a tracked operational event. Immutable once fetched;
// there is no write-back to the backend.
type Incident struct {
	ID          string
	Number      int
	Title       string
	Description string
	Status      Status
	Urgency     Urgency
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Service     ServiceRef
	Assignments []Assignment
	HTMLURL     string
}

// Change is one recorded modification to source code, typically a commit.
type Change struct {
	ID          string // content hash
	Author      string
	AuthorEmail string
	Timestamp   time.Time
	Message     string
}

// ShortID returns an abbreviated change identifier for display.
func (c Change) ShortID() string {
	if len(c.ID) > 8 {
		return c.ID[:8]
	}
	return c.ID
}

// ChangeDetail is the lazily fetched stat/diff text for one change.
type ChangeDetail struct {
	ChangeID string
	Text     string
}

// Window is the lookback interval examined for correlated changes.
// Invariant: Since < Until. Until is exclusive.
type Window struct {
	Since time.Time
	Until time.Time
}

// Contains reports whether t falls inside the window ([Since, Until)).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Since) && t.Before(w.Until)
}

// CorrelationResult joins an incident's lookback window with the changes
// found inside it. MostRelevant is the newest in-window change, nil when
// the window is empty — an explicit empty state, not an error.
type CorrelationResult struct {
	Window       Window
	Changes      []Change
	MostRelevant *Change
}

// RecommendationBlock is one group of remediation guidance: a heading,
// optional probable causes, and ordered action items.
type RecommendationBlock struct {
	Title   string
	Causes  []string
	Actions []string
}

// AggregateCounts buckets a fixed incident list by status and urgency.
// Rebuilt fully on each service-mode run.
type AggregateCounts struct {
	ByStatus  map[Status]int
	ByUrgency map[Urgency]int
	Total     int
}

// ListFilter narrows an incident listing. Zero-value time bounds mean
// unbounded; empty Statuses defaults to open incidents (triggered and
// acknowledged) at the source.
type ListFilter struct {
	ServiceName string
	Since       time.Time
	Until       time.Time
	Statuses    []Status
}

// IncidentSource fetches incidents from the incident-management backend.
type IncidentSource interface {
	Incident(ctx context.Context, id string) (*Incident, error)
	ListIncidents(ctx context.Context, filter ListFilter) ([]Incident, error)
}

// ChangeSource fetches change history. Implementations must return
// changes newest-first; the correlator trusts that ordering.
type ChangeSource interface {
	ChangesBetween(ctx context.Context, since, until time.Time) ([]Change, error)
	ChangeDetail(ctx context.Context, id string) (*ChangeDetail, error)
}
