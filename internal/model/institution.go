// Package model defines the institution record and the derived analysis
// types produced by the scoring pipeline.
package model

import "time"

// InstitutionType classifies an institution by charter.
type InstitutionType string

const (
	CreditUnion   InstitutionType = "credit_union"
	CommunityBank InstitutionType = "community_bank"
)

// LeadStatus tracks where an institution sits in the sales workflow.
// It lives on the CRM overlay, not in the public feed data.
type LeadStatus string

const (
	StatusNew       LeadStatus = "new"
	StatusContacted LeadStatus = "contacted"
	StatusQualified LeadStatus = "qualified"
	StatusProposal  LeadStatus = "proposal"
	StatusWon       LeadStatus = "won"
	StatusLost      LeadStatus = "lost"
)

// Institution is a single credit union or community bank as reported by the
// public regulatory feeds, plus the CRM overlay fields merged on by the
// caller. All dollar amounts are whole dollars. Members is zero for banks;
// scoring code must never divide by it without a guard.
type Institution struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        InstitutionType `json:"type"`
	City        string          `json:"city"`
	State       string          `json:"state"`
	TotalAssets int64           `json:"total_assets"`
	Members     int64           `json:"members"`
	Deposits    int64           `json:"deposits"`
	ROA         float64         `json:"roa_pct"`
	Branches    int             `json:"branches"`

	// CRM overlay (user-edited, merged by id).
	Status    LeadStatus `json:"status,omitempty"`
	Contact   string     `json:"contact,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	LastTouch *time.Time `json:"last_touch,omitempty"`
}

// IsCreditUnion reports whether the institution is a credit union.
func (i *Institution) IsCreditUnion() bool { return i.Type == CreditUnion }

// EffectiveCustomers estimates the customer count. Credit unions report
// members directly; banks are estimated from assets.
func (i *Institution) EffectiveCustomers() int64 {
	if i.Members > 0 {
		return i.Members
	}
	per := int64(40_000)
	if i.Type == CreditUnion {
		per = 20_000
	}
	return i.TotalAssets / per
}

// CRMOverlay is the small record of user-edited sales-workflow fields kept
// per institution id. Merging the same overlay twice is a no-op.
type CRMOverlay struct {
	InstitutionID string     `json:"institution_id"`
	Status        LeadStatus `json:"status,omitempty"`
	Contact       string     `json:"contact,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	LastTouch     *time.Time `json:"last_touch,omitempty"`
}
