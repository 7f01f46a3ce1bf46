package model

import (
	"strconv"
	"strings"
)

// NonEmptyRule is the baseline content rule carried by the content root:
// content must be a non-empty string after trimming whitespace.
func NonEmptyRule() *ContentRule {
	return &ContentRule{
		Description: "content must not be empty",
		Accept: func(content string) bool {
			return strings.TrimSpace(content) != ""
		},
	}
}

// MinLengthRule accepts content whose trimmed length is at least n runes.
func MinLengthRule(n int) *ContentRule {
	return &ContentRule{
		Description: "content must be at least " + strconv.Itoa(n) + " characters",
		Accept: func(content string) bool {
			return len([]rune(strings.TrimSpace(content))) >= n
		},
	}
}

// ValidationChain composes the content rules for spec. Rules compose
// additively down the specialization chain: an extending variant appends its
// rule after its ancestors'; a replacing variant discards everything
// inherited so far.
func ValidationChain(spec *CommandSpec) ([]ContentRule, error) {
	chain, err := ancestorChain(spec)
	if err != nil {
		return nil, err
	}
	var rules []ContentRule
	for _, level := range chain {
		if level.Validation == ValidationReplaces {
			rules = rules[:0]
		}
		if level.Rule != nil {
			rules = append(rules, *level.Rule)
		}
	}
	return rules, nil
}

// CheckContent runs content through the composed chain, returning
// InvalidContentError for the first rule that rejects it.
func CheckContent(command string, rules []ContentRule, content string) error {
	for _, rule := range rules {
		if rule.Accept == nil {
			continue
		}
		if !rule.Accept(content) {
			return &InvalidContentError{Command: command, Constraint: rule.Description}
		}
	}
	return nil
}
