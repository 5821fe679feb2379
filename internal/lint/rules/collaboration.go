package rules

import (
	"github.com/aabha-lang/aabhalint/internal/lint"
	"github.com/aabha-lang/aabhalint/internal/meta"
)

var collaborationParticipants = &lint.Rule{
	ID:          "collaboration-participants",
	Description: "check that a collaboration names enough participants and a coordinator among them",
	Kinds:       []string{meta.KindCollaboration},
	Severity:    lint.SeverityProblem,
	Messages: map[string]string{
		"missingParticipants":       "@{{kind}} '{{class}}' is missing a 'participants' list",
		"tooFewParticipants":        "@{{kind}} '{{class}}' names {{count}} participant(s); a collaboration needs at least {{min}}",
		"coordinatorNotParticipant": "coordinator '{{coordinator}}' of @{{kind}} '{{class}}' is not listed in 'participants'",
	},
	Check: checkParticipants,
}

func checkParticipants(ctx *lint.Context, record *meta.Record) {
	participants, ok := record.GetList("participants")
	if !ok {
		ctx.Report(record, "missingParticipants", nil)
		return
	}

	min := ctx.Options.Int("minParticipants", 2)
	if len(participants.Items) < min {
		ctx.Report(record, "tooFewParticipants", lint.Data(
			"count", formatCount(len(participants.Items)),
			"min", formatCount(min),
		))
	}

	coordinator, hasCoordinator := record.GetRef("coordinator")
	if !hasCoordinator {
		return
	}
	for _, item := range participants.Items {
		if ref, isRef := item.(*meta.RefValue); isRef && ref.Name == coordinator {
			return
		}
	}
	ctx.Report(record, "coordinatorNotParticipant", lint.Data("coordinator", coordinator))
}
