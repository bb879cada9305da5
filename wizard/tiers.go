package wizard

import (
	"fmt"

	"github.com/cloudx-io/auctionwizard/core"
)

func (s Session) winnersCount() int {
	if s.Attributes.WinnersCount == nil {
		return 0
	}
	return *s.Attributes.WinnersCount
}

func (s Session) withTiered(tiered core.TieredAuctionState, err error) (Session, error) {
	if err != nil {
		return s, err
	}
	next := s.Clone()
	next.Tiered = tiered
	return next, nil
}

// AddTier appends an empty tier.
func (s Session) AddTier() Session {
	next := s.Clone()
	next.Tiered = next.Tiered.AddTier()
	return next
}

// AddTierSlot appends an empty slot to tier t.
func (s Session) AddTierSlot(t int) (Session, error) {
	return s.withTiered(s.Tiered.AddSlot(t))
}

// SetTierWinningSpots sets the zero-based winner ranks receiving tier t.
func (s Session) SetTierWinningSpots(t int, spots []int) (Session, error) {
	return s.withTiered(s.Tiered.SetWinningSpots(t, spots, s.winnersCount()))
}

// SelectTierItem fills slot (t, i) with the first selected draft. Selecting nothing clears a
// filled slot and leaves an empty one alone.
func (s Session) SelectTierItem(t, i int, selected []core.SafetyDepositDraft) (Session, error) {
	d, ok := core.FirstSelected(selected)
	if !ok {
		inRange := t >= 0 && t < len(s.Tiered.Tiers) && i >= 0 && i < len(s.Tiered.Tiers[t].Slots)
		if inRange && s.Tiered.Tiers[t].Slots[i].IsEmpty() {
			return s, nil
		}
		return s.withTiered(s.Tiered.ClearSlot(t, i))
	}
	if !core.TierFilter()(d) {
		return s, fmt.Errorf("%w: %s for tier slot", core.ErrIneligibleDraft, d.Key())
	}
	return s.withTiered(s.Tiered.AssignItem(t, i, d))
}

// ClearTierSlot removes slot (t, i), pruning the tier and the pool as needed.
func (s Session) ClearTierSlot(t, i int) (Session, error) {
	return s.withTiered(s.Tiered.ClearSlot(t, i))
}

// SetTierSlotType changes how the item in slot (t, i) is transferred.
func (s Session) SetTierSlotType(t, i int, configType core.WinningConfigType) (Session, error) {
	return s.withTiered(s.Tiered.SetSlotType(t, i, configType))
}

// SetTierSlotAmount changes how many units of slot (t, i) each winner gets.
func (s Session) SetTierSlotAmount(t, i int, raw string) (Session, error) {
	return s.withTiered(s.Tiered.SetSlotAmount(t, i, core.ParseCount(raw)))
}
