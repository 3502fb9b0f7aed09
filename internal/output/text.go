package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pagertrace/pagertrace/internal/analysis"
	"github.com/pagertrace/pagertrace/internal/pagerduty"
)

const rule = "================================================================================"

// TextFormatter renders human-readable console reports.
type TextFormatter struct{}

func (f *TextFormatter) IncidentReport(r *analysis.IncidentReport, w io.Writer) error {
	inc := r.Incident

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Incident #%d - %s\n", inc.Number, inc.ID)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Title:        %s\n", inc.Title)
	fmt.Fprintf(w, "Status:       %s\n", inc.Status)
	fmt.Fprintf(w, "Urgency:      %s\n", inc.Urgency)
	fmt.Fprintf(w, "Service:      %s\n", orNA(inc.Service.Name))
	fmt.Fprintf(w, "Created:      %s\n", inc.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Last Updated: %s\n", inc.UpdatedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "URL:          %s\n", inc.HTMLURL)
	if inc.Description != "" {
		fmt.Fprintf(w, "Description:  %s\n", inc.Description)
	}
	if len(inc.Assignments) > 0 {
		fmt.Fprintln(w, "\nAssignments:")
		for _, a := range inc.Assignments {
			fmt.Fprintf(w, "  - %s (%s)\n", a.Assignee, a.Type)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Changes from %s to %s\n",
		r.Correlation.Window.Since.Format(time.RFC3339),
		r.Correlation.Window.Until.Format(time.RFC3339))
	fmt.Fprintln(w, rule)

	if r.ChangeHistoryNote != "" {
		fmt.Fprintf(w, "\nNote: %s\n", r.ChangeHistoryNote)
	}

	if n := len(r.Correlation.Changes); n > 0 {
		fmt.Fprintf(w, "\nFound %d change(s) in the lookback window:\n\n", n)
		for _, c := range r.Correlation.Changes {
			fmt.Fprintf(w, "  %s  %s <%s>\n", c.ShortID(), c.Author, c.AuthorEmail)
			fmt.Fprintf(w, "    Date:    %s\n", c.Timestamp.Format(time.RFC3339))
			fmt.Fprintf(w, "    Message: %s\n\n", c.Message)
		}
	} else if r.ChangeHistoryNote == "" {
		fmt.Fprintln(w, "\nNo changes found in the lookback window")
	}

	if r.Detail != nil {
		fmt.Fprintln(w, rule)
		fmt.Fprintln(w, "Most Relevant Change:")
		fmt.Fprintln(w, rule)
		fmt.Fprintln(w, r.Detail.Text)
	} else if r.DetailNote != "" {
		fmt.Fprintf(w, "Note: %s\n", r.DetailNote)
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Recommendations:")
	fmt.Fprintln(w, rule)
	for _, block := range r.Recommendations {
		fmt.Fprintf(w, "\n%s\n", block.Title)
		if len(block.Causes) > 0 {
			fmt.Fprintln(w, "  Potential causes:")
			for _, cause := range block.Causes {
				fmt.Fprintf(w, "  - %s\n", cause)
			}
			fmt.Fprintln(w, "  Suggested actions:")
		}
		for i, action := range block.Actions {
			fmt.Fprintf(w, "  %d. %s\n", i+1, action)
		}
	}
	return nil
}

func (f *TextFormatter) ServiceReport(r *analysis.ServiceReport, w io.Writer) error {
	fmt.Fprintf(w, "Incidents for service: %s (since %s)\n",
		r.ServiceName, r.Since.Format("2006-01-02"))
	fmt.Fprintln(w, rule)

	if len(r.Incidents) == 0 {
		fmt.Fprintln(w, "No incidents found")
		return nil
	}

	fmt.Fprintf(w, "\nFound %d incident(s):\n\n", len(r.Incidents))
	for _, inc := range r.Incidents {
		writeIncidentSummary(w, inc)
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Incident Patterns:")
	fmt.Fprintln(w, rule)

	fmt.Fprintln(w, "\nBy Status:")
	for _, status := range []analysis.Status{
		analysis.StatusTriggered, analysis.StatusAcknowledged,
		analysis.StatusResolved, analysis.StatusUnknown,
	} {
		if count := r.Counts.ByStatus[status]; count > 0 {
			fmt.Fprintf(w, "  %s: %d\n", status, count)
		}
	}

	fmt.Fprintln(w, "\nBy Urgency:")
	for _, urgency := range []analysis.Urgency{
		analysis.UrgencyHigh, analysis.UrgencyLow, analysis.UrgencyUnknown,
	} {
		if count := r.Counts.ByUrgency[urgency]; count > 0 {
			fmt.Fprintf(w, "  %s: %d\n", urgency, count)
		}
	}
	return nil
}

func (f *TextFormatter) IncidentList(incidents []analysis.Incident, w io.Writer) error {
	if len(incidents) == 0 {
		fmt.Fprintln(w, "No open incidents")
		return nil
	}
	fmt.Fprintf(w, "Open incidents: %d\n\n", len(incidents))
	for _, inc := range incidents {
		writeIncidentSummary(w, inc)
	}
	return nil
}

func (f *TextFormatter) OnCallList(oncalls []pagerduty.OnCall, w io.Writer) error {
	if len(oncalls) == 0 {
		fmt.Fprintln(w, "No on-call entries found")
		return nil
	}

	// Group by escalation policy, preserving first-seen order.
	byPolicy := make(map[string][]pagerduty.OnCall)
	var policies []string
	for _, oc := range oncalls {
		if _, seen := byPolicy[oc.Policy]; !seen {
			policies = append(policies, oc.Policy)
		}
		byPolicy[oc.Policy] = append(byPolicy[oc.Policy], oc)
	}

	for _, policy := range policies {
		fmt.Fprintf(w, "%s\n", orNA(policy))
		for _, oc := range byPolicy[policy] {
			line := fmt.Sprintf("  L%d: %s", oc.EscalationLevel, orNA(oc.User))
			if oc.Schedule != "" {
				line += fmt.Sprintf(" (schedule: %s)", oc.Schedule)
			}
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func writeIncidentSummary(w io.Writer, inc analysis.Incident) {
	fmt.Fprintf(w, "  #%d - %s - %s\n", inc.Number, inc.Status, inc.Urgency)
	fmt.Fprintf(w, "    %s\n", inc.Title)
	if inc.Service.Name != "" {
		fmt.Fprintf(w, "    Service: %s\n", inc.Service.Name)
	}
	fmt.Fprintf(w, "    Created: %s\n", inc.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "    URL: %s\n\n", inc.HTMLURL)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
