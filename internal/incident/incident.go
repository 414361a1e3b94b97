// Package incident holds the incident domain model shared by the tool
// surface and the notification layer.
package incident

// Severity classifies incident impact.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// SeverityOrder lists severities from most to least urgent. Used wherever
// incidents are presented grouped by severity.
var SeverityOrder = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// Incident is a single incident record. Instances are assembled by the
// calling agent from documents it fetched and parsed through this server;
// the server itself never populates them.
type Incident struct {
	// Title is a short human-readable summary.
	Title string `json:"title"`

	// Severity is one of critical, high, medium, low.
	Severity Severity `json:"severity"`

	// Status is free-form, e.g. "open", "mitigated", "resolved".
	Status string `json:"status,omitempty"`

	// Description is the full incident narrative.
	Description string `json:"description,omitempty"`

	// AffectedSystems names impacted services or components.
	AffectedSystems []string `json:"affected_systems,omitempty"`

	// Timestamp is when the incident occurred, as reported by the source.
	Timestamp string `json:"timestamp,omitempty"`

	// Source points at the document the incident was extracted from.
	Source string `json:"source,omitempty"`
}

// Report is the extraction result envelope returned by the
// extract-incident-data tool.
type Report struct {
	Incidents []Incident `json:"incidents"`
	Summary   string     `json:"summary"`
}

// EmptyTemplate returns the always-empty report the extraction tool hands
// back. Extraction is deliberately delegated to the calling agent; the
// template only documents the expected shape. Adding server-side extraction
// here would change the documented contract with callers.
func EmptyTemplate() Report {
	return Report{Incidents: []Incident{}}
}

// GroupBySeverity buckets incidents by severity. Unknown severities are
// grouped under SeverityLow so nothing silently disappears from a digest.
func GroupBySeverity(incidents []Incident) map[Severity][]Incident {
	groups := make(map[Severity][]Incident)
	for _, inc := range incidents {
		severity := inc.Severity
		if !KnownSeverity(severity) {
			severity = SeverityLow
		}
		groups[severity] = append(groups[severity], inc)
	}
	return groups
}

// KnownSeverity reports whether s is one of the defined severities.
func KnownSeverity(s Severity) bool {
	for _, known := range SeverityOrder {
		if s == known {
			return true
		}
	}
	return false
}
