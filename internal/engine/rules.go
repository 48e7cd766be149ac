package engine

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"

	"ruleguard/internal/storage"
)

// The rule registry. Every mutation persists the entire rule collection
// atomically (one blob under user_rules). Deleting a rule leaves its
// historical activity-log entries dangling; those are display-only.

func normalizeRuleText(text string) (string, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return "", errors.New("rule text is required")
	}
	return t, nil
}

// normalizeTags dedupes and sorts tags, dropping empties.
func normalizeTags(tags []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range tags {
		t = strings.TrimSpace(strings.ToLower(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func (e *Engine) findRule(id string) *storage.Rule {
	for i := range e.rules {
		if e.rules[i].ID == id {
			return &e.rules[i]
		}
	}
	return nil
}

// AddRule creates an active rule with a fresh id.
func (e *Engine) AddRule(ctx context.Context, text string, tags []string, category RuleCategory) (*storage.Rule, error) {
	t, err := normalizeRuleText(text)
	if err != nil {
		return nil, ValidationError{Field: "text", Reason: "is required"}
	}
	if !category.IsValid() {
		category = DefaultCategory
	}

	r := storage.Rule{
		Version:  storage.SchemaVersion,
		ID:       uuid.NewString(),
		Text:     t,
		Active:   true,
		Tags:     normalizeTags(tags),
		Category: string(category),
	}
	e.rules = append(e.rules, r)
	e.persistRules(ctx)
	return &r, nil
}

// EditRule replaces the rule's text.
func (e *Engine) EditRule(ctx context.Context, id, text string) error {
	t, err := normalizeRuleText(text)
	if err != nil {
		return ValidationError{Field: "text", Reason: "is required"}
	}
	r := e.findRule(id)
	if r == nil {
		return NotFoundError{Kind: "rule", ID: id}
	}
	r.Text = t
	e.persistRules(ctx)
	return nil
}

// RuleMetaPatch is a partial metadata update; nil fields are untouched.
type RuleMetaPatch struct {
	Tags     *[]string
	Category *RuleCategory
	Active   *bool
}

func (e *Engine) UpdateRuleMeta(ctx context.Context, id string, patch RuleMetaPatch) error {
	r := e.findRule(id)
	if r == nil {
		return NotFoundError{Kind: "rule", ID: id}
	}
	if patch.Tags != nil {
		r.Tags = normalizeTags(*patch.Tags)
	}
	if patch.Category != nil {
		if !patch.Category.IsValid() {
			return ValidationError{Field: "category", Reason: "unknown category"}
		}
		r.Category = string(*patch.Category)
	}
	if patch.Active != nil {
		r.Active = *patch.Active
	}
	e.persistRules(ctx)
	return nil
}

func (e *Engine) ToggleRule(ctx context.Context, id string) (active bool, err error) {
	r := e.findRule(id)
	if r == nil {
		return false, NotFoundError{Kind: "rule", ID: id}
	}
	r.Active = !r.Active
	e.persistRules(ctx)
	return r.Active, nil
}

func (e *Engine) DeleteRule(ctx context.Context, id string) error {
	for i := range e.rules {
		if e.rules[i].ID == id {
			e.rules = append(e.rules[:i], e.rules[i+1:]...)
			e.persistRules(ctx)
			return nil
		}
	}
	return NotFoundError{Kind: "rule", ID: id}
}
