package model_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/probmark/probmark/pkg/model"
)

func TestValidationChainExtends(t *testing.T) {
	root := &model.CommandSpec{Name: "content", Rule: model.NonEmptyRule()}
	leaf := &model.CommandSpec{
		Name:       "essay",
		Parent:     root,
		Validation: model.ValidationExtends,
		Rule:       model.MinLengthRule(10),
	}

	rules, err := model.ValidationChain(leaf)
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}

	// Short but non-empty content passes the root rule and fails the leaf's.
	err = model.CheckContent("essay", rules, "short")
	var invalid *model.InvalidContentError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidContentError, got %v", err)
	}
	if !strings.Contains(invalid.Constraint, "at least 10") {
		t.Fatalf("wrong failing rule: %q", invalid.Constraint)
	}

	if err := model.CheckContent("essay", rules, "long enough now"); err != nil {
		t.Fatalf("valid content rejected: %v", err)
	}
}

func TestValidationChainReplaces(t *testing.T) {
	root := &model.CommandSpec{Name: "content", Rule: model.NonEmptyRule()}
	leaf := &model.CommandSpec{
		Name:       "raw",
		Parent:     root,
		Validation: model.ValidationReplaces,
		Rule: &model.ContentRule{
			Description: "anything goes",
			Accept:      func(string) bool { return true },
		},
	}

	rules, err := model.ValidationChain(leaf)
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("expected the inherited rule discarded, got %d rules", len(rules))
	}

	// Empty content would fail the root rule; replaces dropped it.
	if err := model.CheckContent("raw", rules, ""); err != nil {
		t.Fatalf("replaced chain rejected content: %v", err)
	}
}

func TestValidationChainOrderIsRootFirst(t *testing.T) {
	var order []string
	mk := func(name string) *model.ContentRule {
		return &model.ContentRule{
			Description: name,
			Accept: func(string) bool {
				order = append(order, name)
				return true
			},
		}
	}
	root := &model.CommandSpec{Name: "content", Rule: mk("root")}
	mid := &model.CommandSpec{Name: "mid", Parent: root, Rule: mk("mid")}
	leaf := &model.CommandSpec{Name: "leaf", Parent: mid, Rule: mk("leaf")}

	rules, err := model.ValidationChain(leaf)
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	if err := model.CheckContent("leaf", rules, "x"); err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(order) != 3 || order[0] != "root" || order[2] != "leaf" {
		t.Fatalf("rules ran out of order: %v", order)
	}
}
