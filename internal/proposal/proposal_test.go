package proposal

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Bid_Adjustment ")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if k != KindBidAdjustment {
		t.Fatalf("kind=%q want %q", k, KindBidAdjustment)
	}
	if _, err := ParseKind("pause_everything"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestTargetValidate(t *testing.T) {
	if err := (Target{Kind: "campaign", ID: "123"}).Validate(); err != nil {
		t.Fatalf("err=%v", err)
	}
	if err := (Target{Kind: "keyword", ID: "456"}).Validate(); err != nil {
		t.Fatalf("err=%v", err)
	}
	if err := (Target{Kind: "adgroup", ID: "1"}).Validate(); err == nil {
		t.Fatalf("expected error for unknown target kind")
	}
	if err := (Target{Kind: "campaign"}).Validate(); err == nil {
		t.Fatalf("expected error for missing target id")
	}
}

func TestValueValidate_ExactlyOneVariant(t *testing.T) {
	bid := &BidValue{Bid: decimal.NewFromFloat(0.45)}
	if err := (Value{Bid: bid}).Validate(KindBidAdjustment); err != nil {
		t.Fatalf("err=%v", err)
	}
	if err := (Value{}).Validate(KindBidAdjustment); err == nil {
		t.Fatalf("expected error for empty value")
	}
	two := Value{Bid: bid, State: &StateValue{State: "paused"}}
	if err := two.Validate(KindBidAdjustment); err == nil {
		t.Fatalf("expected error for two variants")
	}
}

func TestValueValidate_VariantMustMatchKind(t *testing.T) {
	v := Value{State: &StateValue{State: "paused"}}
	if err := v.Validate(KindBidAdjustment); err == nil {
		t.Fatalf("expected mismatch error")
	}
	if err := v.Validate(KindStateChange); err != nil {
		t.Fatalf("err=%v", err)
	}
	nk := Value{NegativeKeyword: &NegativeKeywordValue{KeywordText: "free books", MatchType: "exact"}}
	if err := nk.Validate(KindAddNegativeKeyword); err != nil {
		t.Fatalf("err=%v", err)
	}
}

func TestEncodeDecodeValue(t *testing.T) {
	in := Value{Budget: &BudgetValue{Budget: decimal.NewFromFloat(15.50)}}
	raw, err := EncodeValue(in)
	if err != nil {
		t.Fatalf("encode err=%v", err)
	}
	out, err := DecodeValue(raw)
	if err != nil {
		t.Fatalf("decode err=%v", err)
	}
	if out.Budget == nil || !out.Budget.Budget.Equal(in.Budget.Budget) {
		t.Fatalf("decoded=%+v want budget 15.5", out)
	}
	if _, err := DecodeValue(nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}

func TestIsConflict(t *testing.T) {
	err := error(&ConflictError{Status: StatusExecuted})
	if !IsConflict(err) {
		t.Fatalf("IsConflict should match ConflictError")
	}
	if err.Error() != "proposal already executed" {
		t.Fatalf("message=%q", err.Error())
	}
	if IsConflict(errors.New("boom")) {
		t.Fatalf("IsConflict matched unrelated error")
	}
	if IsConflict(ErrNotFound) {
		t.Fatalf("IsConflict matched ErrNotFound")
	}
}
