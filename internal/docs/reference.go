package docs

import (
	"sort"

	"github.com/aabha-lang/aabhalint/internal/lint"
	"github.com/aabha-lang/aabhalint/internal/meta"
)

// BuildReference turns a rule catalog into the render-ready reference
// model. Rule order follows the catalog; message templates are sorted by
// ID so output is deterministic.
func BuildReference(rules []*lint.Rule, toolVersion string) *Reference {
	ref := &Reference{
		ToolVersion: toolVersion,
		Rules:       make([]*RuleDoc, 0, len(rules)),
		Kinds:       make([]*KindDoc, 0, len(meta.Kinds)),
	}

	for _, rule := range rules {
		ref.Rules = append(ref.Rules, buildRuleDoc(rule))
	}

	for _, kind := range meta.Kinds {
		doc := &KindDoc{
			Name:   kind,
			Fields: meta.KnownFields(kind),
		}
		for _, rule := range rules {
			if rule.AppliesTo(kind) {
				doc.Rules = append(doc.Rules, rule.ID)
			}
		}
		ref.Kinds = append(ref.Kinds, doc)
	}

	return ref
}

func buildRuleDoc(rule *lint.Rule) *RuleDoc {
	doc := &RuleDoc{
		ID:          rule.ID,
		Description: rule.Description,
		Kinds:       rule.Kinds,
		Severity:    string(rule.Severity),
		Fixable:     rule.Fixable,
		Messages:    make([]*MessageDoc, 0, len(rule.Messages)),
	}

	ids := make([]string, 0, len(rule.Messages))
	for id := range rule.Messages {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		doc.Messages = append(doc.Messages, &MessageDoc{
			ID:       id,
			Template: rule.Messages[id],
		})
	}

	return doc
}

// AppliesToAll reports whether the rule inspects every decorator kind
func (d *RuleDoc) AppliesToAll() bool {
	return len(d.Kinds) == 0
}
