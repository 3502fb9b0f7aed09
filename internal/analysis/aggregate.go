package analysis

// Aggregate buckets incidents by status and urgency in a single pass.
// Missing or unrecognized values land in the explicit unknown bucket,
// so each mapping's counts always sum to len(incidents). Idempotent
// given the same input list.
func Aggregate(incidents []Incident) AggregateCounts {
	counts := AggregateCounts{
		ByStatus:  make(map[Status]int),
		ByUrgency: make(map[Urgency]int),
		Total:     len(incidents),
	}

	for _, inc := range incidents {
		status := inc.Status
		if status == "" {
			status = StatusUnknown
		}
		urgency := inc.Urgency
		if urgency == "" {
			urgency = UrgencyUnknown
		}
		counts.ByStatus[status]++
		counts.ByUrgency[urgency]++
	}

	return counts
}
