package render

import "claimdesk/internal/claim"

// Alerts holds the alert lists for one analysis.
type Alerts struct {
	Missing      []string
	Inconsistent []string
}

// AlertsFor extracts the alert lists from a.
func AlertsFor(a *claim.Analysis) Alerts {
	return Alerts{
		Missing:      a.MissingFields,
		Inconsistent: a.InconsistentFields,
	}
}

// ShowContainer reports whether the alert box is shown at all.
func (al Alerts) ShowContainer() bool {
	return al.ShowMissing() || al.ShowInconsistent()
}

// ShowMissing reports whether the missing-fields section is shown.
func (al Alerts) ShowMissing() bool { return len(al.Missing) > 0 }

// ShowInconsistent reports whether the inconsistency section is shown.
func (al Alerts) ShowInconsistent() bool { return len(al.Inconsistent) > 0 }
