package core

import (
	"errors"
	"testing"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
)

// tieredWith builds a state with one tier per entry of slots, each with that many empty slots.
func tieredWith(t *testing.T, slots ...int) TieredAuctionState {
	t.Helper()
	s := NewTieredAuctionState()
	for tier, n := range slots {
		s = s.AddTier()
		for i := 0; i < n; i++ {
			var err error
			s, err = s.AddSlot(tier)
			assert.NoError(t, err)
		}
	}
	return s
}

func mustAssign(t *testing.T, s TieredAuctionState, tier, slot int, d SafetyDepositDraft) TieredAuctionState {
	t.Helper()
	next, err := s.AssignItem(tier, slot, d)
	assert.NoError(t, err)
	return next
}

func TestAssignItem_SameItemTwoSlotsSharesPoolEntry(t *testing.T) {
	s := tieredWith(t, 1, 1)
	d := testDraft(1)

	s = mustAssign(t, s, 0, 0, d)
	s = mustAssign(t, s, 1, 0, d)

	check.Equal(t, 1, len(s.Items))
	check.Equal(t, [][]int{{0}, {0}}, slotIndices(s))
	check.NoError(t, s.CheckInvariants())
}

func TestAssignItem_SetsAmountAndType(t *testing.T) {
	s := tieredWith(t, 2)

	s = mustAssign(t, s, 0, 0, testDraft(1, withOpenSupply()))
	s = mustAssign(t, s, 0, 1, testDraft(2))

	printing, ok := s.Tiers[0].Slots[0].Item()
	check.True(t, ok)
	check.Equal(t, WinningConfigItem{SafetyDepositBoxIndex: 0, Amount: 1, WinningConfigType: WinningConfigTypePrinting}, printing)

	tokenOnly, ok := s.Tiers[0].Slots[1].Item()
	check.True(t, ok)
	check.Equal(t, WinningConfigItem{SafetyDepositBoxIndex: 1, Amount: 1, WinningConfigType: WinningConfigTypeTokenOnlyTransfer}, tokenOnly)
}

func TestAssignItem_DoesNotModifyReceiver(t *testing.T) {
	before := tieredWith(t, 1)

	after := mustAssign(t, before, 0, 0, testDraft(1))

	check.Equal(t, 0, len(before.Items))
	check.True(t, before.Tiers[0].Slots[0].IsEmpty())
	check.Equal(t, 1, len(after.Items))
	check.False(t, after.Tiers[0].Slots[0].IsEmpty())
}

func TestAssignItem_ReassignCompactsOrphan(t *testing.T) {
	s := tieredWith(t, 3)
	s = mustAssign(t, s, 0, 0, testDraft(1))
	s = mustAssign(t, s, 0, 1, testDraft(2))
	s = mustAssign(t, s, 0, 2, testDraft(3))

	// draft 1 is only referenced by slot 0; replacing it must drop it from the pool
	s = mustAssign(t, s, 0, 0, testDraft(4))

	check.Equal(t, []string{testDraft(2).Key(), testDraft(3).Key(), testDraft(4).Key()}, poolKeys(s))
	check.Equal(t, [][]int{{2, 0, 1}}, slotIndices(s))
	check.NoError(t, s.CheckInvariants())
}

func TestAssignItem_ReassignKeepsSharedEntry(t *testing.T) {
	s := tieredWith(t, 2)
	s = mustAssign(t, s, 0, 0, testDraft(1))
	s = mustAssign(t, s, 0, 1, testDraft(1))

	s = mustAssign(t, s, 0, 0, testDraft(2))

	check.Equal(t, []string{testDraft(1).Key(), testDraft(2).Key()}, poolKeys(s))
	check.Equal(t, [][]int{{1, 0}}, slotIndices(s))
}

func TestClearSlot_CompactsPoolAndShiftsIndices(t *testing.T) {
	// pool: [d0 d1 d2 d3], d1 referenced once
	s := tieredWith(t, 2, 3)
	s = mustAssign(t, s, 0, 0, testDraft(10))
	s = mustAssign(t, s, 0, 1, testDraft(11))
	s = mustAssign(t, s, 1, 0, testDraft(12))
	s = mustAssign(t, s, 1, 1, testDraft(13))
	s = mustAssign(t, s, 1, 2, testDraft(10))
	check.Equal(t, [][]int{{0, 1}, {2, 3, 0}}, slotIndices(s))

	cleared, err := s.ClearSlot(0, 1)
	assert.NoError(t, err)

	check.Equal(t, 3, len(cleared.Items))
	check.Equal(t, []string{testDraft(10).Key(), testDraft(12).Key(), testDraft(13).Key()}, poolKeys(cleared))
	// indices above 1 drop by one, index 0 is untouched
	check.Equal(t, [][]int{{0}, {1, 2, 0}}, slotIndices(cleared))
	check.NoError(t, cleared.CheckInvariants())

	// receiver unchanged
	check.Equal(t, 4, len(s.Items))
	check.Equal(t, [][]int{{0, 1}, {2, 3, 0}}, slotIndices(s))
}

func TestClearSlot_KeepsEntryReferencedElsewhere(t *testing.T) {
	s := tieredWith(t, 1, 1)
	s = mustAssign(t, s, 0, 0, testDraft(1))
	s = mustAssign(t, s, 1, 0, testDraft(1))

	cleared, err := s.ClearSlot(0, 0)
	assert.NoError(t, err)

	check.Equal(t, 1, len(cleared.Items))
	check.Equal(t, 1, len(cleared.Tiers))
	check.Equal(t, [][]int{{0}}, slotIndices(cleared))
}

func TestClearSlot_PrunesEmptyTier(t *testing.T) {
	s := tieredWith(t, 1, 1, 1)
	s = mustAssign(t, s, 0, 0, testDraft(1))
	s = mustAssign(t, s, 1, 0, testDraft(2))
	s = mustAssign(t, s, 2, 0, testDraft(3))

	cleared, err := s.ClearSlot(1, 0)
	assert.NoError(t, err)

	check.Equal(t, 2, len(cleared.Tiers))
	check.Equal(t, [][]int{{0}, {1}}, slotIndices(cleared))
	check.Equal(t, []string{testDraft(1).Key(), testDraft(3).Key()}, poolKeys(cleared))
}

func TestClearSlot_EmptySlotLeavesPool(t *testing.T) {
	s := tieredWith(t, 2)
	s = mustAssign(t, s, 0, 0, testDraft(1))

	cleared, err := s.ClearSlot(0, 1)
	assert.NoError(t, err)

	check.Equal(t, 1, len(cleared.Items))
	check.Equal(t, [][]int{{0}}, slotIndices(cleared))
}

func TestClearSlot_LastItemEmptiesEverything(t *testing.T) {
	s := tieredWith(t, 1)
	s = mustAssign(t, s, 0, 0, testDraft(1))

	cleared, err := s.ClearSlot(0, 0)
	assert.NoError(t, err)

	check.Equal(t, 0, len(cleared.Items))
	check.Equal(t, 0, len(cleared.Tiers))
	check.NoError(t, cleared.CheckInvariants())
}

func TestTierOperations_IndexErrors(t *testing.T) {
	s := tieredWith(t, 1)

	_, err := s.AddSlot(1)
	check.True(t, errors.Is(err, ErrTierOutOfRange))

	_, err = s.AssignItem(0, 1, testDraft(1))
	check.True(t, errors.Is(err, ErrSlotOutOfRange))

	_, err = s.ClearSlot(-1, 0)
	check.True(t, errors.Is(err, ErrTierOutOfRange))

	_, err = s.SetSlotType(0, 0, WinningConfigTypePrinting)
	check.True(t, errors.Is(err, ErrEmptySlot))

	_, err = s.SetSlotAmount(0, 0, intPtr(2))
	check.True(t, errors.Is(err, ErrEmptySlot))
}

func TestSetWinningSpots(t *testing.T) {
	s := tieredWith(t, 1)

	next, err := s.SetWinningSpots(0, []int{2, 0, 2, 1}, 3)
	assert.NoError(t, err)
	check.Equal(t, []int{0, 1, 2}, next.Tiers[0].WinningSpots)
	check.Equal(t, []int{}, s.Tiers[0].WinningSpots)

	_, err = s.SetWinningSpots(0, []int{3}, 3)
	check.True(t, errors.Is(err, ErrSpotOutOfRange))

	_, err = s.SetWinningSpots(0, []int{-1}, 3)
	check.True(t, errors.Is(err, ErrSpotOutOfRange))
}

func TestSetSlotAmountAndType(t *testing.T) {
	s := tieredWith(t, 1)
	s = mustAssign(t, s, 0, 0, testDraft(1, withOpenSupply()))

	tests := []struct {
		name     string
		amount   *int
		expected int
	}{
		{"explicit amount", intPtr(4), 4},
		{"unset resets to one", nil, 1},
		{"zero resets to one", intPtr(0), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := s.SetSlotAmount(0, 0, tt.amount)
			assert.NoError(t, err)
			item, _ := next.Tiers[0].Slots[0].Item()
			check.Equal(t, tt.expected, item.Amount)
		})
	}

	next, err := s.SetSlotType(0, 0, WinningConfigTypeFullRightsTransfer)
	assert.NoError(t, err)
	item, _ := next.Tiers[0].Slots[0].Item()
	check.Equal(t, WinningConfigTypeFullRightsTransfer, item.WinningConfigType)
	original, _ := s.Tiers[0].Slots[0].Item()
	check.Equal(t, WinningConfigTypePrinting, original.WinningConfigType)
}

func TestCheckInvariants_ReportsBrokenState(t *testing.T) {
	s := TieredAuctionState{
		Items: []SafetyDepositDraft{testDraft(1), testDraft(1), testDraft(2)},
		Tiers: []Tier{{Slots: []Slot{
			FilledSlot(WinningConfigItem{SafetyDepositBoxIndex: 0, Amount: 1}),
			FilledSlot(WinningConfigItem{SafetyDepositBoxIndex: 5, Amount: 1}),
		}}},
	}

	err := s.CheckInvariants()
	check.Error(t, err)
}
