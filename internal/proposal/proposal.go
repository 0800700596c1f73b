// Package proposal defines the change-management vocabulary: change kinds,
// their typed value payloads, proposal statuses, and review outcomes.
package proposal

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Kind string

const (
	KindBidAdjustment      Kind = "bid_adjustment"
	KindStateChange        Kind = "state_change"
	KindBudgetChange       Kind = "budget_change"
	KindAddNegativeKeyword Kind = "add_negative_keyword"
)

func ParseKind(raw string) (Kind, error) {
	k := Kind(strings.TrimSpace(strings.ToLower(raw)))
	switch k {
	case KindBidAdjustment, KindStateChange, KindBudgetChange, KindAddNegativeKeyword:
		return k, nil
	}
	return "", fmt.Errorf("unknown change kind %q", raw)
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusExecuted Status = "executed"
	StatusFailed   Status = "failed"
)

// Outcome is what a review operation reports back to the caller.
type Outcome string

const (
	// OutcomeApproved means the proposal was approved with no execution
	// backend configured: recorded for manual application, not an error.
	OutcomeApproved Outcome = "approved"
	OutcomeExecuted Outcome = "executed"
	OutcomeFailed   Outcome = "failed"
	OutcomeRejected Outcome = "rejected"
)

// Target references the entity a change applies to.
type Target struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

func (t Target) Validate() error {
	switch strings.TrimSpace(t.Kind) {
	case "campaign", "keyword":
	default:
		return fmt.Errorf("unknown target kind %q", t.Kind)
	}
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("target id is required")
	}
	return nil
}

type BidValue struct {
	Bid decimal.Decimal `json:"bid"`
}

type StateValue struct {
	State string `json:"state"`
}

type BudgetValue struct {
	Budget decimal.Decimal `json:"budget"`
}

type NegativeKeywordValue struct {
	KeywordText string `json:"keyword_text"`
	MatchType   string `json:"match_type"`
}

// Value is the tagged union carried by a proposal's current/proposed
// snapshots: exactly one variant is set, and it must match the change kind.
type Value struct {
	Bid             *BidValue             `json:"bid,omitempty"`
	State           *StateValue           `json:"state,omitempty"`
	Budget          *BudgetValue          `json:"budget,omitempty"`
	NegativeKeyword *NegativeKeywordValue `json:"negative_keyword,omitempty"`
}

func (v Value) Validate(kind Kind) error {
	set := 0
	if v.Bid != nil {
		set++
	}
	if v.State != nil {
		set++
	}
	if v.Budget != nil {
		set++
	}
	if v.NegativeKeyword != nil {
		set++
	}
	if set != 1 {
		return fmt.Errorf("change value must set exactly one variant, got %d", set)
	}
	switch kind {
	case KindBidAdjustment:
		if v.Bid == nil {
			return fmt.Errorf("change kind %s requires a bid value", kind)
		}
	case KindStateChange:
		if v.State == nil {
			return fmt.Errorf("change kind %s requires a state value", kind)
		}
	case KindBudgetChange:
		if v.Budget == nil {
			return fmt.Errorf("change kind %s requires a budget value", kind)
		}
	case KindAddNegativeKeyword:
		if v.NegativeKeyword == nil {
			return fmt.Errorf("change kind %s requires a negative keyword value", kind)
		}
	default:
		return fmt.Errorf("unknown change kind %q", kind)
	}
	return nil
}

func EncodeValue(v Value) (datatypes.JSON, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func DecodeValue(raw datatypes.JSON) (Value, error) {
	var v Value
	if len(raw) == 0 {
		return v, fmt.Errorf("empty change value payload")
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, err
	}
	return v, nil
}
