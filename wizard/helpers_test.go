package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/blocto/solana-go-sdk/common"

	"github.com/cloudx-io/auctionwizard/auctionapi"
	"github.com/cloudx-io/auctionwizard/core"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 14, 15, 9, 26, 535_000_000, time.UTC)}
}

func testKey(seed byte) common.PublicKey {
	var k common.PublicKey
	for i := range k {
		k[i] = seed
	}
	return k
}

func draft(seed byte, me *core.MasterEdition) core.SafetyDepositDraft {
	return core.SafetyDepositDraft{
		Metadata:      testKey(seed),
		Mint:          testKey(seed + 0x80),
		Name:          "draft",
		Creators:      []core.Creator{{Address: testKey(0xCC), Verified: true, Share: 100}},
		MasterEdition: me,
	}
}

func limitedEdition(maxSupply uint64) *core.MasterEdition {
	return &core.MasterEdition{MaxSupply: &maxSupply}
}

func openEdition() *core.MasterEdition {
	return &core.MasterEdition{}
}

type fakeCreator struct {
	mu       sync.Mutex
	requests []auctionapi.CreateAuctionManagerRequest
	delay    time.Duration
	err      error
}

func (f *fakeCreator) CreateAuctionManager(ctx context.Context, req auctionapi.CreateAuctionManagerRequest) (*auctionapi.AuctionManagerAccounts, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &auctionapi.AuctionManagerAccounts{
		Vault:          testKey(0xA1),
		Auction:        testKey(0xA2),
		AuctionManager: testKey(0xA3),
	}, nil
}

type recordedProgress struct {
	mu     sync.Mutex
	values []int
}

func (r *recordedProgress) SetProgress(percent int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, percent)
}

func (r *recordedProgress) snapshot() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.values...)
}
