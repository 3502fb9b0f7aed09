package analysis

import "fmt"

// categoryAdvice holds the canned diagnostic block emitted when a
// category matches.
type categoryAdvice struct {
	title   string
	causes  []string
	actions []string
}

var adviceByCategory = map[Category]categoryAdvice{
	CategoryMemoryPressure: {
		title: "Memory-related incident detected",
		causes: []string{
			"Memory leak in the application",
			"Insufficient memory limits in the deployment manifest",
			"Allocation without a matching release on a hot path",
		},
		actions: []string{
			"Review recent changes to memory allocation patterns",
			"Check container memory limits in the deployment configuration",
			"Run a memory profiler against the affected workload",
			"Consider raising limits or fixing the leak before re-deploying",
		},
	},
	CategoryDeploymentRelated: {
		title: "Deployment-related incident detected",
		causes: []string{
			"A recent rollout introduced a regression",
			"Configuration drift between environments",
		},
		actions: []string{
			"Compare incident start time against the deployment timeline",
			"Diff the deployed configuration against the last known-good state",
			"Roll back to the previous release if the correlation is strong",
		},
	},
	CategoryLatency: {
		title: "Latency incident detected",
		causes: []string{
			"A slow downstream dependency or exhausted connection pool",
			"An unindexed query or N+1 access pattern in a recent change",
		},
		actions: []string{
			"Check p95/p99 dashboards for the affected endpoints",
			"Inspect downstream dependency latency and timeout settings",
			"Profile the hottest request path introduced or modified recently",
		},
	},
	CategoryErrorRate: {
		title: "Elevated error rate detected",
		causes: []string{
			"An unhandled exception path shipped in a recent change",
			"A contract change in an upstream or downstream service",
		},
		actions: []string{
			"Group application errors by type and first-seen time",
			"Check whether the error onset aligns with a deploy or config change",
			"Add or restore handling for the failing path",
		},
	},
	CategoryCapacity: {
		title: "Capacity incident detected",
		causes: []string{
			"CPU throttling or disk saturation on the affected nodes",
			"Traffic growth outpacing the current replica count",
		},
		actions: []string{
			"Check CPU, disk, and network saturation for the affected workload",
			"Review autoscaling thresholds and current replica counts",
			"Scale out before debugging further if the service is degraded",
		},
	},
}

// Recommend composes remediation guidance from the three analysis
// inputs. Block order is fixed and stable: one block per matched
// category in rule-enumeration order, then a correlated-changes block
// when the window is non-empty, then the unconditional baseline block,
// always last. Same inputs produce the same ordered output.
func Recommend(incident *Incident, result CorrelationResult, categories []Category) []RecommendationBlock {
	var blocks []RecommendationBlock

	for _, cat := range categories {
		advice, ok := adviceByCategory[cat]
		if !ok {
			// Categories from a custom rule set without canned advice
			// still get a named block pointing at the matched text.
			blocks = append(blocks, RecommendationBlock{
				Title:   fmt.Sprintf("Incident matched category %q", cat),
				Actions: []string{"Review the incident text against this category's runbook"},
			})
			continue
		}
		blocks = append(blocks, RecommendationBlock{
			Title:   advice.title,
			Causes:  advice.causes,
			Actions: advice.actions,
		})
	}

	if n := len(result.Changes); n > 0 {
		noun := "changes"
		if n == 1 {
			noun = "change"
		}
		blocks = append(blocks, RecommendationBlock{
			Title: fmt.Sprintf("%d correlated %s found in the lookback window", n, noun),
			Actions: []string{
				"Review the correlated changes for potentially problematic modifications",
				"Consider reverting the most recent change if the correlation is strong",
				"Run the test suite against the state before these changes",
			},
		})
	}

	blocks = append(blocks, RecommendationBlock{
		Title: "Next steps",
		Actions: []string{
			"Acknowledge the incident if not already done",
			"Correlate the incident time with deployment times",
			"Check application logs for error patterns",
			fmt.Sprintf("Open a remediation item: [Incident #%d] Fix for %s", incident.Number, incident.Title),
			"Tag on-call team members for review",
		},
	})

	return blocks
}
