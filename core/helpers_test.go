package core

import (
	"github.com/blocto/solana-go-sdk/common"
)

func testKey(seed byte) common.PublicKey {
	var k common.PublicKey
	for i := range k {
		k[i] = seed
	}
	return k
}

type draftOption func(*SafetyDepositDraft)

func withMaxSupply(n uint64) draftOption {
	return func(d *SafetyDepositDraft) {
		d.MasterEdition = &MasterEdition{MaxSupply: &n}
	}
}

func withOpenSupply() draftOption {
	return func(d *SafetyDepositDraft) {
		d.MasterEdition = &MasterEdition{}
	}
}

func withUnverifiedCreator() draftOption {
	return func(d *SafetyDepositDraft) {
		d.Creators = append(d.Creators, Creator{Address: testKey(0xEE), Verified: false, Share: 10})
	}
}

func testDraft(seed byte, opts ...draftOption) SafetyDepositDraft {
	d := SafetyDepositDraft{
		Metadata: testKey(seed),
		Mint:     testKey(seed + 0x80),
		Name:     "draft",
		Creators: []Creator{{Address: testKey(0xCC), Verified: true, Share: 100}},
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// slotIndices flattens the pool index of every filled slot, tier by tier, using -1 for empty slots.
func slotIndices(s TieredAuctionState) [][]int {
	out := make([][]int, len(s.Tiers))
	for t, tier := range s.Tiers {
		out[t] = make([]int, len(tier.Slots))
		for i, slot := range tier.Slots {
			item, ok := slot.Item()
			if !ok {
				out[t][i] = -1
				continue
			}
			out[t][i] = item.SafetyDepositBoxIndex
		}
	}
	return out
}

func poolKeys(s TieredAuctionState) []string {
	keys := make([]string, len(s.Items))
	for i, d := range s.Items {
		keys[i] = d.Key()
	}
	return keys
}

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }
