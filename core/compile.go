package core

import (
	"time"
)

// MaxWinners caps the editions of a limited listing and the winner ranks of a tiered listing.
// Compile clamps larger counts and validation rejects them.
const MaxWinners = 1000

// Compile turns the final wizard state into the inputs of the auction builder.
// It is pure: neither attrs nor tiered is modified, and fields belonging to other categories
// are ignored.
//
// Parameters:
//   - attrs: The flat wizard state, its Category selects the branch
//   - tiered: The tier pool and tiers, read only for CategoryTiered
//   - quote: The mint prices are denominated in, used for base-unit conversion
//
// Returns:
//   - CompiledAuction with winner limit, winning configs, participation rule, price floor,
//     durations and the items to deposit
//
// Processing flow:
//  1. Build winner limit and winning configs for the category
//  2. Attach the participation rule at the next safety deposit index
//  3. Convert price floor and durations
func Compile(attrs AuctionState, tiered TieredAuctionState, quote QuoteMint) *CompiledAuction {
	compiled := &CompiledAuction{
		Category:        attrs.Category,
		PriceFloor:      PriceFloorFor(attrs.PriceFloor, quote.Decimals),
		AuctionDuration: minutes(attrs.AuctionDuration),
		GapTime:         minutes(attrs.GapTime),
	}
	fixedPrice := ToBaseUnits(attrs.ParticipationFixedPrice, quote.Decimals)

	switch attrs.Category {
	case CategoryOpen:
		compiled.WinnerLimit = UnlimitedWinners()
		compiled.Settings = AuctionManagerSettings{
			WinningConfigs:      []WinningConfig{},
			ParticipationConfig: participationConfig(0, fixedPrice),
		}
		// The only selected item is what every participant receives.
		compiled.Items = []SafetyDepositDraft{}
		if d, ok := FirstSelected(attrs.Items); ok {
			compiled.ParticipationItem = &d
		}

	case CategorySingle:
		configType := WinningConfigTypeTokenOnlyTransfer
		if d, ok := FirstSelected(attrs.Items); ok && d.MasterEdition != nil {
			configType = WinningConfigTypeFullRightsTransfer
		}
		compiled.WinnerLimit = CappedWinners(1)
		compiled.Settings = AuctionManagerSettings{
			WinningConfigs: []WinningConfig{{Items: []WinningConfigItem{{
				SafetyDepositBoxIndex: 0,
				Amount:                1,
				WinningConfigType:     configType,
			}}}},
		}
		compileFlatParticipation(compiled, attrs, fixedPrice)

	case CategoryLimited:
		editions := min(intOr(attrs.Editions, 1), MaxWinners)
		if editions < 1 {
			editions = 1
		}
		configs := make([]WinningConfig, 0, editions)
		for i := 0; i < editions; i++ {
			configs = append(configs, WinningConfig{Items: []WinningConfigItem{{
				SafetyDepositBoxIndex: 0,
				Amount:                1,
				WinningConfigType:     WinningConfigTypePrinting,
			}}})
		}
		compiled.WinnerLimit = CappedWinners(uint64(editions))
		compiled.Settings = AuctionManagerSettings{WinningConfigs: configs}
		compileFlatParticipation(compiled, attrs, fixedPrice)

	case CategoryTiered:
		winnersCount := clampWinners(intOr(attrs.WinnersCount, 0))
		compiled.WinnerLimit = CappedWinners(uint64(winnersCount))
		compiled.Settings = AuctionManagerSettings{WinningConfigs: MergeTiers(tiered.Tiers, winnersCount)}
		compiled.Items = append([]SafetyDepositDraft{}, tiered.Items...)
		if attrs.ParticipationNFT != nil {
			compiled.Settings.ParticipationConfig = participationConfig(len(tiered.Items), fixedPrice)
			compiled.ParticipationItem = participationItem(attrs)
		}
	}

	return compiled
}

// MergeTiers builds one basket per winner rank from the tiers. Tiers without filled slots or
// without winning spots are dropped, as are spots outside [0, winnersCount). When several
// tiers give the same rank the same pool index, their amounts are added into one entry.
// winnersCount is clamped to [0, MaxWinners].
func MergeTiers(tiers []Tier, winnersCount int) []WinningConfig {
	winnersCount = clampWinners(winnersCount)
	configs := make([]WinningConfig, winnersCount)
	for i := range configs {
		configs[i] = WinningConfig{Items: []WinningConfigItem{}}
	}

	for _, tier := range tiers {
		items := tier.FilledItems()
		if len(items) == 0 || len(tier.WinningSpots) == 0 {
			continue
		}

		for _, spot := range tier.WinningSpots {
			if spot < 0 || spot >= winnersCount {
				continue
			}
			basket := &configs[spot]
			for _, item := range items {
				existing := -1
				for j := range basket.Items {
					if basket.Items[j].SafetyDepositBoxIndex == item.SafetyDepositBoxIndex {
						existing = j
						break
					}
				}
				if existing >= 0 {
					basket.Items[existing].Amount += item.Amount
				} else {
					basket.Items = append(basket.Items, item)
				}
			}
		}
	}

	return configs
}

// compileFlatParticipation attaches the optional participation rule of single and limited
// listings. The participation NFT is deposited after the listed items.
func compileFlatParticipation(compiled *CompiledAuction, attrs AuctionState, fixedPrice uint64) {
	compiled.Items = append([]SafetyDepositDraft{}, attrs.Items...)
	if attrs.ParticipationNFT == nil {
		return
	}
	compiled.Settings.ParticipationConfig = participationConfig(len(attrs.Items), fixedPrice)
	compiled.ParticipationItem = participationItem(attrs)
}

func participationConfig(index int, fixedPrice uint64) *ParticipationConfig {
	return &ParticipationConfig{
		SafetyDepositBoxIndex: index,
		WinnerConstraint:      WinningConstraintParticipationPrizeGiven,
		NonWinningConstraint:  NonWinningConstraintGivenForFixedPrice,
		FixedPrice:            fixedPrice,
	}
}

func participationItem(attrs AuctionState) *SafetyDepositDraft {
	d := *attrs.ParticipationNFT
	return &d
}

func clampWinners(n int) int {
	return max(0, min(n, MaxWinners))
}

func minutes(p *int) time.Duration {
	if p == nil || *p <= 0 {
		return 0
	}
	return time.Duration(*p) * time.Minute
}
