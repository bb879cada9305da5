package core

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrTierOutOfRange = errors.New("tier index out of range")
	ErrSlotOutOfRange = errors.New("slot index out of range")
	ErrEmptySlot      = errors.New("slot has no item")
	ErrSpotOutOfRange = errors.New("winning spot out of range")
)

// Slot is a position inside a tier. It is either empty, waiting for the seller to pick an
// item, or filled with a prize unit.
type Slot struct {
	item   WinningConfigItem
	filled bool
}

// EmptySlot returns a placeholder slot.
func EmptySlot() Slot {
	return Slot{}
}

// FilledSlot returns a slot holding item.
func FilledSlot(item WinningConfigItem) Slot {
	return Slot{item: item, filled: true}
}

// Item returns the prize unit and true when the slot is filled.
func (s Slot) Item() (WinningConfigItem, bool) {
	return s.item, s.filled
}

// IsEmpty reports whether no item was picked yet.
func (s Slot) IsEmpty() bool {
	return !s.filled
}

// Tier is a prize basket shared by the winner ranks in WinningSpots.
type Tier struct {
	Slots        []Slot
	WinningSpots []int
}

// FilledItems returns the prize units of the tier, skipping empty slots.
func (t Tier) FilledItems() []WinningConfigItem {
	items := make([]WinningConfigItem, 0, len(t.Slots))
	for _, s := range t.Slots {
		if item, ok := s.Item(); ok {
			items = append(items, item)
		}
	}
	return items
}

func (t Tier) clone() Tier {
	return Tier{
		Slots:        append([]Slot{}, t.Slots...),
		WinningSpots: append([]int{}, t.WinningSpots...),
	}
}

// TieredAuctionState holds the item pool of a tiered auction and the tiers pointing into it.
//
// Every filled slot stores an index into Items. All operations return a new state and keep
// that index valid: pool entries are matched by identity key, never duplicated, and removed
// once no slot references them, shifting later indices down.
type TieredAuctionState struct {
	Items []SafetyDepositDraft
	Tiers []Tier
}

// NewTieredAuctionState returns an empty pool with no tiers.
func NewTieredAuctionState() TieredAuctionState {
	return TieredAuctionState{
		Items: []SafetyDepositDraft{},
		Tiers: []Tier{},
	}
}

// Clone deep-copies the tiers and their slots. Pool entries are copied by value.
func (s TieredAuctionState) Clone() TieredAuctionState {
	c := TieredAuctionState{
		Items: append([]SafetyDepositDraft{}, s.Items...),
		Tiers: make([]Tier, len(s.Tiers)),
	}
	for i, t := range s.Tiers {
		c.Tiers[i] = t.clone()
	}
	return c
}

// IndexOf returns the pool index of the draft with the given identity key, or -1.
func (s TieredAuctionState) IndexOf(key string) int {
	return slices.IndexFunc(s.Items, func(d SafetyDepositDraft) bool {
		return d.Key() == key
	})
}

// AddTier appends a tier with no slots and no winning spots.
func (s TieredAuctionState) AddTier() TieredAuctionState {
	next := s.Clone()
	next.Tiers = append(next.Tiers, Tier{Slots: []Slot{}, WinningSpots: []int{}})
	return next
}

// AddSlot appends an empty slot to a tier.
func (s TieredAuctionState) AddSlot(tier int) (TieredAuctionState, error) {
	if err := s.checkTier(tier); err != nil {
		return s, err
	}
	next := s.Clone()
	next.Tiers[tier].Slots = append(next.Tiers[tier].Slots, EmptySlot())
	return next, nil
}

// SetWinningSpots replaces the winner ranks receiving a tier. Spots must lie in
// [0, winnersCount); they are stored sorted without duplicates.
func (s TieredAuctionState) SetWinningSpots(tier int, spots []int, winnersCount int) (TieredAuctionState, error) {
	if err := s.checkTier(tier); err != nil {
		return s, err
	}
	for _, spot := range spots {
		if spot < 0 || spot >= winnersCount {
			return s, fmt.Errorf("%w: %d not in [0, %d)", ErrSpotOutOfRange, spot, winnersCount)
		}
	}

	normalized := append([]int{}, spots...)
	slices.Sort(normalized)
	normalized = slices.Compact(normalized)

	next := s.Clone()
	next.Tiers[tier].WinningSpots = normalized
	return next, nil
}

// AssignItem puts d into slot (tier, slot). The draft is appended to the pool unless an entry
// with the same identity key exists, in which case that entry is reused. The slot gets amount 1
// and Printing for master editions, TokenOnlyTransfer otherwise.
// If the slot held another pool entry that nothing else references, that entry is compacted.
func (s TieredAuctionState) AssignItem(tier, slot int, d SafetyDepositDraft) (TieredAuctionState, error) {
	if err := s.checkSlot(tier, slot); err != nil {
		return s, err
	}
	next := s.Clone()

	index := next.IndexOf(d.Key())
	if index < 0 {
		next.Items = append(next.Items, d)
		index = len(next.Items) - 1
	}

	configType := WinningConfigTypeTokenOnlyTransfer
	if d.MasterEdition != nil {
		configType = WinningConfigTypePrinting
	}

	previous := next.Tiers[tier].Slots[slot]
	next.Tiers[tier].Slots[slot] = FilledSlot(WinningConfigItem{
		SafetyDepositBoxIndex: index,
		Amount:                1,
		WinningConfigType:     configType,
	})

	if old, ok := previous.Item(); ok && old.SafetyDepositBoxIndex != index {
		next.release(old.SafetyDepositBoxIndex)
	}
	return next, nil
}

// ClearSlot removes slot (tier, slot). A tier left without slots is removed too. When the
// cleared item was the last reference to its pool entry, the entry is removed and every slot
// index above it is decremented by one.
func (s TieredAuctionState) ClearSlot(tier, slot int) (TieredAuctionState, error) {
	if err := s.checkSlot(tier, slot); err != nil {
		return s, err
	}
	next := s.Clone()
	cleared := next.Tiers[tier].Slots[slot]

	next.Tiers[tier].Slots = slices.Delete(next.Tiers[tier].Slots, slot, slot+1)
	if len(next.Tiers[tier].Slots) == 0 {
		next.Tiers = slices.Delete(next.Tiers, tier, tier+1)
	}

	if item, ok := cleared.Item(); ok {
		next.release(item.SafetyDepositBoxIndex)
	}
	return next, nil
}

// SetSlotType changes the transfer mode of a filled slot.
func (s TieredAuctionState) SetSlotType(tier, slot int, configType WinningConfigType) (TieredAuctionState, error) {
	return s.updateItem(tier, slot, func(item *WinningConfigItem) {
		item.WinningConfigType = configType
	})
}

// SetSlotAmount changes the per-winner quantity of a filled slot. A nil or non-positive amount
// resets it to 1.
func (s TieredAuctionState) SetSlotAmount(tier, slot int, amount *int) (TieredAuctionState, error) {
	return s.updateItem(tier, slot, func(item *WinningConfigItem) {
		item.Amount = 1
		if amount != nil && *amount > 0 {
			item.Amount = *amount
		}
	})
}

// CheckInvariants verifies that every filled slot resolves into the pool, that the pool has
// no duplicate identity keys and that every pool entry is referenced.
func (s TieredAuctionState) CheckInvariants() error {
	var errs []error

	seen := make(map[string]int, len(s.Items))
	for i, d := range s.Items {
		if first, dup := seen[d.Key()]; dup {
			errs = append(errs, fmt.Errorf("pool entries %d and %d share key %s", first, i, d.Key()))
			continue
		}
		seen[d.Key()] = i
	}

	referenced := make([]bool, len(s.Items))
	for t, tier := range s.Tiers {
		for i, slot := range tier.Slots {
			item, ok := slot.Item()
			if !ok {
				continue
			}
			if item.SafetyDepositBoxIndex < 0 || item.SafetyDepositBoxIndex >= len(s.Items) {
				errs = append(errs, fmt.Errorf("tier %d slot %d points at pool index %d, pool has %d items",
					t, i, item.SafetyDepositBoxIndex, len(s.Items)))
				continue
			}
			referenced[item.SafetyDepositBoxIndex] = true
		}
	}
	for i, ok := range referenced {
		if !ok {
			errs = append(errs, fmt.Errorf("pool entry %d (%s) is not referenced by any tier", i, s.Items[i].Key()))
		}
	}

	return errors.Join(errs...)
}

func (s TieredAuctionState) updateItem(tier, slot int, update func(*WinningConfigItem)) (TieredAuctionState, error) {
	if err := s.checkSlot(tier, slot); err != nil {
		return s, err
	}
	item, ok := s.Tiers[tier].Slots[slot].Item()
	if !ok {
		return s, fmt.Errorf("%w: tier %d slot %d", ErrEmptySlot, tier, slot)
	}
	update(&item)

	next := s.Clone()
	next.Tiers[tier].Slots[slot] = FilledSlot(item)
	return next, nil
}

// release drops pool entry index when no slot references it any more. Must only be called on
// a state owned by the caller.
func (s *TieredAuctionState) release(index int) {
	if s.references(index) {
		return
	}
	if index < 0 || index >= len(s.Items) {
		return
	}
	s.Items = slices.Delete(s.Items, index, index+1)

	for t := range s.Tiers {
		for i, slot := range s.Tiers[t].Slots {
			item, ok := slot.Item()
			if !ok || item.SafetyDepositBoxIndex <= index {
				continue
			}
			item.SafetyDepositBoxIndex--
			s.Tiers[t].Slots[i] = FilledSlot(item)
		}
	}
}

func (s TieredAuctionState) references(index int) bool {
	for _, tier := range s.Tiers {
		for _, slot := range tier.Slots {
			if item, ok := slot.Item(); ok && item.SafetyDepositBoxIndex == index {
				return true
			}
		}
	}
	return false
}

func (s TieredAuctionState) checkTier(tier int) error {
	if tier < 0 || tier >= len(s.Tiers) {
		return fmt.Errorf("%w: %d (have %d tiers)", ErrTierOutOfRange, tier, len(s.Tiers))
	}
	return nil
}

func (s TieredAuctionState) checkSlot(tier, slot int) error {
	if err := s.checkTier(tier); err != nil {
		return err
	}
	if slot < 0 || slot >= len(s.Tiers[tier].Slots) {
		return fmt.Errorf("%w: %d (tier %d has %d slots)", ErrSlotOutOfRange, slot, tier, len(s.Tiers[tier].Slots))
	}
	return nil
}
