package wizard

import (
	"fmt"

	"github.com/cloudx-io/auctionwizard/core"
)

// SelectCategory sets the listing category and advances. It is only available on the
// category step; on error the receiver is returned unchanged.
func (s Session) SelectCategory(c core.Category) (Session, error) {
	if step, err := StepAt(s.Attributes.Category, s.Step); err != nil || step.ID != StepCategory {
		return s, fmt.Errorf("%w: category on step %d", ErrWrongStep, s.Step)
	}
	next := s.Clone()
	next.Attributes.Category = c
	next, err := next.Confirm()
	if err != nil {
		return s, err
	}
	return next, nil
}

// SelectItems stores the item chosen on the copies step. Only the first selected draft is kept
// and it must pass the category's copies filter. Selecting nothing clears the choice.
func (s Session) SelectItems(selected []core.SafetyDepositDraft) (Session, error) {
	next := s.Clone()
	d, ok := core.FirstSelected(selected)
	if !ok {
		next.Attributes.Items = []core.SafetyDepositDraft{}
		return next, nil
	}
	if !core.CopiesFilter(s.Attributes.Category)(d) {
		return s, fmt.Errorf("%w: %s for %s copies", core.ErrIneligibleDraft, d.Key(), s.Attributes.Category)
	}
	next.Attributes.Items = []core.SafetyDepositDraft{d}
	return next, nil
}

// SetEditions sets how many prints a limited listing sells.
func (s Session) SetEditions(raw string) Session {
	next := s.Clone()
	next.Attributes.Editions = core.ParseCount(raw)
	return next
}

// SetWinnersCount sets the number of ranked winners of a tiered listing.
func (s Session) SetWinnersCount(raw string) Session {
	next := s.Clone()
	next.Attributes.WinnersCount = core.ParseCount(raw)
	return next
}

// SelectParticipationNFT stores the participation prize. Selecting nothing removes it.
func (s Session) SelectParticipationNFT(selected []core.SafetyDepositDraft) (Session, error) {
	next := s.Clone()
	d, ok := core.FirstSelected(selected)
	if !ok {
		next.Attributes.ParticipationNFT = nil
		return next, nil
	}
	if !core.ParticipationFilter()(d) {
		return s, fmt.Errorf("%w: %s as participation NFT", core.ErrIneligibleDraft, d.Key())
	}
	next.Attributes.ParticipationNFT = &d
	return next, nil
}

// SetParticipationFixedPrice sets what non-winners pay for the participation NFT.
func (s Session) SetParticipationFixedPrice(raw string) Session {
	next := s.Clone()
	next.Attributes.ParticipationFixedPrice = core.ParseAmount(raw)
	return next
}
