// Package claim defines the claim analysis returned by the claims-processing
// endpoint and the route vocabulary used to present it.
package claim

import (
	"bytes"
	"encoding/json"
	"errors"

	"claimdesk/internal/jsonutil"
)

// PolicyInfo holds the policy section of the extracted fields.
type PolicyInfo struct {
	PolicyNumber     string `json:"policy_number"`
	PolicyholderName string `json:"policyholder_name"`
	EffectiveDates   string `json:"effective_dates"`
	Carrier          string `json:"carrier,omitempty"`
	LineOfBusiness   string `json:"line_of_business,omitempty"`
}

// InsuredInfo holds the insured party's contact block.
type InsuredInfo struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	DOB     string `json:"dob,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// LossInfo describes when, where and how the loss happened.
type LossInfo struct {
	Date            string `json:"date"`
	Time            string `json:"time"`
	Location        string `json:"location"`
	Description     string `json:"description"`
	PoliceContacted string `json:"police_contacted,omitempty"`
	ReportNumber    string `json:"report_number,omitempty"`
}

// PartyInfo lists the people involved in the claim.
type PartyInfo struct {
	Claimant       string `json:"claimant"`
	ThirdParties   string `json:"third_parties"`
	ContactDetails string `json:"contact_details"`
}

// AssetInfo identifies the damaged asset. EstimatedDamage is nil when the
// server could not extract an amount.
type AssetInfo struct {
	AssetType       string   `json:"asset_type,omitempty"`
	AssetID         string   `json:"asset_id"`
	EstimatedDamage *float64 `json:"estimated_damage"`
}

// ExtractedFields is the nested record of everything the server pulled out of
// the claim text.
type ExtractedFields struct {
	Policy          PolicyInfo  `json:"policy"`
	Insured         InsuredInfo `json:"insured"`
	Loss            LossInfo    `json:"loss"`
	Parties         PartyInfo   `json:"parties"`
	Asset           AssetInfo   `json:"asset"`
	ClaimType       string      `json:"claim_type"`
	Attachments     string      `json:"attachments,omitempty"`
	InitialEstimate *float64    `json:"initial_estimate"`
}

// Analysis is one claim analysis result. Raw keeps the response body exactly
// as received so exports round-trip fields this client does not model.
type Analysis struct {
	RecommendedRoute   Route           `json:"recommendedRoute"`
	Reasoning          string          `json:"reasoning"`
	MissingFields      []string        `json:"missingFields"`
	InconsistentFields []string        `json:"inconsistentFields"`
	ExtractedFields    ExtractedFields `json:"extractedFields"`

	Raw json.RawMessage `json:"-"`
}

// ErrNoExtractedFields is returned by Decode when the body has no
// extractedFields object.
var ErrNoExtractedFields = errors.New("analysis has no extractedFields")

// Decode parses a response body into an Analysis and retains a copy of the
// body in Raw.
func Decode(data []byte) (*Analysis, error) {
	var probe struct {
		ExtractedFields json.RawMessage `json:"extractedFields"`
	}
	if err := jsonutil.UnmarshalWithContext(data, &probe, "decode analysis"); err != nil {
		return nil, err
	}
	if len(probe.ExtractedFields) == 0 || bytes.Equal(probe.ExtractedFields, []byte("null")) {
		return nil, ErrNoExtractedFields
	}

	var a Analysis
	if err := jsonutil.UnmarshalWithContext(data, &a, "decode analysis"); err != nil {
		return nil, err
	}
	a.Raw = append(json.RawMessage(nil), data...)
	return &a, nil
}

// HasAlerts reports whether the analysis carries any missing or inconsistent
// field entries.
func (a *Analysis) HasAlerts() bool {
	return len(a.MissingFields) > 0 || len(a.InconsistentFields) > 0
}
