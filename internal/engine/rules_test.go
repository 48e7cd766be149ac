package engine

import (
	"context"
	"errors"
	"testing"

	"ruleguard/internal/identity"
)

func TestAddRuleDefaults(t *testing.T) {
	eng, _, cleanup := newTestEngine(t)
	defer cleanup()
	ctx := context.Background()

	r, err := eng.AddRule(ctx, "  Take profits at target  ", []string{"Exits", "exits", ""}, RuleCategory("bogus"))
	if err != nil {
		t.Fatalf("AddRule: %v", err)
	}
	if r.ID == "" {
		t.Fatalf("rule id empty")
	}
	if r.Text != "Take profits at target" {
		t.Fatalf("text=%q", r.Text)
	}
	if !r.Active {
		t.Fatalf("new rule not active")
	}
	if r.Category != string(DefaultCategory) {
		t.Fatalf("category=%q, want default %q", r.Category, DefaultCategory)
	}
	if len(r.Tags) != 1 || r.Tags[0] != "exits" {
		t.Fatalf("tags=%v, want [exits]", r.Tags)
	}

	if _, err := eng.AddRule(ctx, "   ", nil, CategoryRisk); err == nil {
		t.Fatalf("expected error for blank rule text")
	}
}

func TestEditToggleDeleteRule(t *testing.T) {
	eng, st, cleanup := newTestEngine(t)
	defer cleanup()
	ctx := context.Background()

	r, err := eng.AddRule(ctx, "No shorting into support", []string{"levels"}, CategoryEntry)
	if err != nil {
		t.Fatalf("AddRule: %v", err)
	}

	if err := eng.EditRule(ctx, r.ID, "No shorting into major support"); err != nil {
		t.Fatalf("EditRule: %v", err)
	}
	active, err := eng.ToggleRule(ctx, r.ID)
	if err != nil {
		t.Fatalf("ToggleRule: %v", err)
	}
	if active {
		t.Fatalf("toggle should deactivate")
	}

	cat := CategoryExit
	if err := eng.UpdateRuleMeta(ctx, r.ID, RuleMetaPatch{Category: &cat}); err != nil {
		t.Fatalf("UpdateRuleMeta: %v", err)
	}

	// Each mutation persisted the whole collection.
	reloaded, err := New(ctx, st, identity.NewLocal("Tester"), testLogger())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	rules := reloaded.Rules()
	if len(rules) != 1 {
		t.Fatalf("rules=%d, want 1", len(rules))
	}
	if rules[0].Text != "No shorting into major support" || rules[0].Active || rules[0].Category != string(CategoryExit) {
		t.Fatalf("persisted rule=%+v", rules[0])
	}

	if err := eng.DeleteRule(ctx, r.ID); err != nil {
		t.Fatalf("DeleteRule: %v", err)
	}
	if len(eng.Rules()) != 0 {
		t.Fatalf("rule not deleted")
	}
	var nferr NotFoundError
	if err := eng.DeleteRule(ctx, r.ID); !errors.As(err, &nferr) {
		t.Fatalf("second delete err=%v, want NotFoundError", err)
	}
}

func TestDeleteRuleLeavesHistoryDangling(t *testing.T) {
	eng, _, cleanup := newTestEngine(t)
	defer cleanup()
	ctx := context.Background()

	freezeTime(eng, testDay)
	r, err := eng.AddRule(ctx, "No oversized positions", nil, CategoryRisk)
	if err != nil {
		t.Fatalf("AddRule: %v", err)
	}
	if _, err := eng.RecordViolation(ctx, r.ID); err != nil {
		t.Fatalf("violation: %v", err)
	}
	if err := eng.DeleteRule(ctx, r.ID); err != nil {
		t.Fatalf("DeleteRule: %v", err)
	}

	// The violation entry survives with its now-orphaned rule id.
	entries := eng.ActivityLog(ctx)
	if len(entries) != 1 || entries[0].RuleID != r.ID {
		t.Fatalf("entries=%+v, want dangling reference to %s", entries, r.ID)
	}
}

func TestUpdateRuleMetaRejectsUnknownCategory(t *testing.T) {
	eng, _, cleanup := newTestEngine(t)
	defer cleanup()
	ctx := context.Background()

	r, err := eng.AddRule(ctx, "Journal every trade", nil, CategoryProcess)
	if err != nil {
		t.Fatalf("AddRule: %v", err)
	}
	bad := RuleCategory("vibes")
	var verr ValidationError
	if err := eng.UpdateRuleMeta(ctx, r.ID, RuleMetaPatch{Category: &bad}); !errors.As(err, &verr) {
		t.Fatalf("err=%v, want ValidationError", err)
	}
}
