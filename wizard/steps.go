package wizard

import (
	"fmt"

	"github.com/cloudx-io/auctionwizard/core"
)

// StepID names the logic that runs on a wizard screen.
type StepID string

const (
	StepCategory      StepID = "category"
	StepCopies        StepID = "copies"
	StepWinners       StepID = "winners"
	StepTiers         StepID = "tiers"
	StepSaleType      StepID = "sale_type"
	StepPrice         StepID = "price"
	StepInitialPhase  StepID = "initial_phase"
	StepEndingPhase   StepID = "ending_phase"
	StepParticipation StepID = "participation"
	StepReview        StepID = "review"
	StepPublish       StepID = "publish"
	StepCongrats      StepID = "congrats"
)

// Step is one entry of a category's sequence. Steps without a label are not shown in the
// progress list.
type Step struct {
	Label string
	ID    StepID
}

var (
	stepCategory      = Step{"Category", StepCategory}
	stepCopies        = Step{"Copies", StepCopies}
	stepWinners       = Step{"Winners", StepWinners}
	stepTiers         = Step{"Tiers", StepTiers}
	stepSaleType      = Step{"Sale Type", StepSaleType}
	stepPrice         = Step{"Price", StepPrice}
	stepInitialPhase  = Step{"Initial Phase", StepInitialPhase}
	stepEndingPhase   = Step{"Ending Phase", StepEndingPhase}
	stepParticipation = Step{"Participation NFT", StepParticipation}
	stepReview        = Step{"Review", StepReview}
	stepPublish       = Step{"Publish", StepPublish}
	stepCongrats      = Step{"", StepCongrats}
)

var sequences = map[core.Category][]Step{
	core.CategoryLimited: {
		stepCategory, stepCopies, stepSaleType, stepPrice, stepInitialPhase, stepEndingPhase,
		stepParticipation, stepReview, stepPublish, stepCongrats,
	},
	core.CategorySingle: {
		stepCategory, stepCopies, stepPrice, stepInitialPhase, stepEndingPhase,
		stepParticipation, stepReview, stepPublish, stepCongrats,
	},
	core.CategoryOpen: {
		stepCategory, stepCopies, stepPrice, stepInitialPhase, stepEndingPhase,
		stepReview, stepPublish, stepCongrats,
	},
	core.CategoryTiered: {
		stepCategory, stepWinners, stepTiers, stepPrice, stepInitialPhase, stepEndingPhase,
		stepParticipation, stepReview, stepPublish, stepCongrats,
	},
}

// Steps returns the ordered sequence of a category. Unknown categories only have the
// category step.
func Steps(category core.Category) []Step {
	steps, ok := sequences[category]
	if !ok {
		return []Step{stepCategory}
	}
	return append([]Step(nil), steps...)
}

// StepAt resolves the step at index of a category's sequence.
func StepAt(category core.Category, index int) (Step, error) {
	steps := Steps(category)
	if index < 0 || index >= len(steps) {
		return Step{}, fmt.Errorf("%w: %d (%s has %d steps)", ErrStepOutOfRange, index, category, len(steps))
	}
	return steps[index], nil
}

// VisibleLabels returns the labels shown in the progress list.
func VisibleLabels(category core.Category) []string {
	labels := []string{}
	for _, s := range Steps(category) {
		if s.Label != "" {
			labels = append(labels, s.Label)
		}
	}
	return labels
}
