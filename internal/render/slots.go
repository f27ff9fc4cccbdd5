// Package render maps a claim analysis onto display slots and renders them
// for the terminal.
package render

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"claimdesk/internal/claim"
)

// Fallback texts shown when a field is absent.
const (
	FallbackMissing       = "Missing"
	FallbackPendingReview = "Pending Review"
	FallbackPending       = "Pending"
	FallbackClaimType     = "Collision"
	FallbackNoThirdParty  = "None Identified"
	FallbackNotApplicable = "N/A"
	FallbackNoDescription = "No description extracted."
)

// Slot is one labelled value in the extracted-fields panel.
type Slot struct {
	ID       string
	Label    string
	Value    string
	Fallback bool // Value is the fallback text, not server data
}

// Slot IDs, in display order.
const (
	SlotPolicy     = "policy"
	SlotHolder     = "holder"
	SlotDates      = "dates"
	SlotLossDT     = "loss_dt"
	SlotLossLoc    = "loss_loc"
	SlotType       = "type"
	SlotClaimant   = "claimant"
	SlotThird      = "third"
	SlotContact    = "contact"
	SlotVIN        = "vin"
	SlotEstimate   = "estimate"
	SlotInitialEst = "initial_est"
	SlotDesc       = "desc"
)

// Slots returns the display slots for a, with fallbacks substituted for
// empty fields.
func Slots(a *claim.Analysis) []Slot {
	f := a.ExtractedFields
	lossDT := strings.TrimSpace(f.Loss.Date + " " + f.Loss.Time)

	return []Slot{
		text(SlotPolicy, "Policy Number", f.Policy.PolicyNumber, FallbackMissing),
		text(SlotHolder, "Policyholder", f.Policy.PolicyholderName, FallbackMissing),
		text(SlotDates, "Effective Dates", f.Policy.EffectiveDates, FallbackPendingReview),
		text(SlotLossDT, "Date / Time of Loss", lossDT, FallbackPending),
		text(SlotLossLoc, "Location", f.Loss.Location, FallbackMissing),
		text(SlotType, "Claim Type", f.ClaimType, FallbackClaimType),
		text(SlotClaimant, "Claimant", f.Parties.Claimant, FallbackMissing),
		text(SlotThird, "Third Parties", f.Parties.ThirdParties, FallbackNoThirdParty),
		text(SlotContact, "Contact Details", f.Parties.ContactDetails, FallbackMissing),
		text(SlotVIN, "Asset ID (VIN)", f.Asset.AssetID, FallbackMissing),
		amount(SlotEstimate, "Estimated Damage", f.Asset.EstimatedDamage, FallbackMissing),
		amount(SlotInitialEst, "Initial Estimate", f.InitialEstimate, FallbackNotApplicable),
		text(SlotDesc, "Description", f.Loss.Description, FallbackNoDescription),
	}
}

func text(id, label, value, fallback string) Slot {
	if value == "" {
		return Slot{ID: id, Label: label, Value: fallback, Fallback: true}
	}
	return Slot{ID: id, Label: label, Value: value}
}

// amount treats nil and zero alike: neither is a usable estimate.
func amount(id, label string, v *float64, fallback string) Slot {
	if v == nil || *v == 0 || math.IsNaN(*v) {
		return Slot{ID: id, Label: label, Value: fallback, Fallback: true}
	}
	return Slot{ID: id, Label: label, Value: FormatAmount(*v)}
}

// FormatAmount renders v as a dollar amount with thousands separators and
// at most three fraction digits, trailing zeros dropped.
func FormatAmount(v float64) string {
	rounded := math.Round(v*1000) / 1000
	if rounded < 0 {
		return "-$" + humanize.Commaf(-rounded)
	}
	return "$" + humanize.Commaf(rounded)
}
