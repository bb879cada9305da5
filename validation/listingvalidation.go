package validation

import (
	"fmt"
	"strings"

	"github.com/cloudx-io/auctionwizard/core"
)

// ValidateListing checks that the wizard state compiles into a listing the builder accepts:
// - The category has the items it needs
// - Limited and open listings use a master edition of the right supply
// - Tiered listings have winners and a consistent item pool
// - The participation NFT is eligible
// - A fixed-price sale has a price
// - Start, list and end dates are ordered
//
// Returns:
//   - ListingValidationResult with detailed results (call result.IsValid() to check overall status)
func ValidateListing(input *ListingValidationInput) *ListingValidationResult {
	result := &ListingValidationResult{}
	attrs := input.Attributes

	result.ItemsValid = validateItems(input, result)
	result.SupplyValid = validateSupply(attrs, result)
	result.WinnersValid = validateWinners(attrs, result)
	result.TiersValid = validateTiers(input, result)
	result.ParticipationValid = validateParticipation(attrs, result)
	result.PriceValid = validatePrice(attrs, result)
	result.ScheduleValid = validateSchedule(input, result)

	return result
}

func validateItems(input *ListingValidationInput, result *ListingValidationResult) bool {
	attrs := input.Attributes
	if attrs.Category == core.CategoryTiered {
		if len(input.Tiered.Items) == 0 {
			result.ValidationDetails = append(result.ValidationDetails, "Tiered listing has no items in any tier")
			return false
		}
		return true
	}

	if len(attrs.Items) == 0 {
		result.ValidationDetails = append(result.ValidationDetails, fmt.Sprintf("No item selected for %s listing", attrs.Category))
		return false
	}
	if len(attrs.Items) > 1 {
		result.ValidationDetails = append(result.ValidationDetails, fmt.Sprintf("Only one item can be listed, got %d", len(attrs.Items)))
		return false
	}
	d := attrs.Items[0]
	if !core.CopiesFilter(attrs.Category)(d) {
		result.ValidationDetails = append(result.ValidationDetails, fmt.Sprintf("Item %s is not eligible for %s listing", d.Key(), attrs.Category))
		return false
	}
	return true
}

func validateSupply(attrs core.AuctionState, result *ListingValidationResult) bool {
	if attrs.Category != core.CategoryLimited {
		return true
	}
	if attrs.Editions != nil && *attrs.Editions > core.MaxWinners {
		result.ValidationDetails = append(result.ValidationDetails,
			fmt.Sprintf("Requested %d editions, at most %d can be sold in one listing", *attrs.Editions, core.MaxWinners))
		return false
	}
	d, ok := core.FirstSelected(attrs.Items)
	if !ok || !core.HasLimitedSupply(d) {
		// reported by the item check
		return true
	}

	editions := 1
	if attrs.Editions != nil && *attrs.Editions > 0 {
		editions = *attrs.Editions
	}
	me := d.MasterEdition
	var remaining uint64
	if *me.MaxSupply > me.Supply {
		remaining = *me.MaxSupply - me.Supply
	}
	if uint64(editions) > remaining {
		result.ValidationDetails = append(result.ValidationDetails,
			fmt.Sprintf("Requested %d editions but only %d of %d prints remain", editions, remaining, *me.MaxSupply))
		return false
	}
	return true
}

func validateWinners(attrs core.AuctionState, result *ListingValidationResult) bool {
	if attrs.Category != core.CategoryTiered {
		return true
	}
	if attrs.WinnersCount == nil || *attrs.WinnersCount <= 0 {
		result.ValidationDetails = append(result.ValidationDetails, "Tiered listing needs at least one winner")
		return false
	}
	if *attrs.WinnersCount > core.MaxWinners {
		result.ValidationDetails = append(result.ValidationDetails,
			fmt.Sprintf("Tiered listing has %d winners, at most %d are allowed", *attrs.WinnersCount, core.MaxWinners))
		return false
	}
	return true
}

func validateTiers(input *ListingValidationInput, result *ListingValidationResult) bool {
	if input.Attributes.Category != core.CategoryTiered {
		return true
	}
	tiered := input.Tiered

	if err := tiered.CheckInvariants(); err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			result.ValidationDetails = append(result.ValidationDetails, "Tier pool inconsistent: "+line)
		}
		return false
	}

	winnersCount := 0
	if input.Attributes.WinnersCount != nil {
		// oversized counts are reported by the winners check
		winnersCount = min(*input.Attributes.WinnersCount, core.MaxWinners)
	}

	givenBy := make(map[int][]int)
	for t, tier := range tiered.Tiers {
		if len(tier.FilledItems()) == 0 {
			result.ValidationDetails = append(result.ValidationDetails, fmt.Sprintf("Tier %d has no items and is ignored", t+1))
			continue
		}
		if len(tier.WinningSpots) == 0 {
			result.ValidationDetails = append(result.ValidationDetails, fmt.Sprintf("Tier %d is not given to any winner and is ignored", t+1))
			continue
		}
		for _, spot := range tier.WinningSpots {
			if spot < 0 || spot >= winnersCount {
				result.ValidationDetails = append(result.ValidationDetails,
					fmt.Sprintf("Tier %d names winner %d but there are only %d winners, skipped", t+1, spot+1, winnersCount))
				continue
			}
			givenBy[spot] = append(givenBy[spot], t+1)
		}
	}

	for spot := 0; spot < winnersCount; spot++ {
		tiers := givenBy[spot]
		switch {
		case len(tiers) == 0:
			result.ValidationDetails = append(result.ValidationDetails, fmt.Sprintf("Winner %d receives nothing", spot+1))
		case len(tiers) > 1:
			result.ValidationDetails = append(result.ValidationDetails,
				fmt.Sprintf("Winner %d receives tiers %v, amounts are merged", spot+1, tiers))
		}
	}
	return true
}

func validateParticipation(attrs core.AuctionState, result *ListingValidationResult) bool {
	if attrs.ParticipationNFT == nil {
		return true
	}
	if !core.ParticipationFilter()(*attrs.ParticipationNFT) {
		result.ValidationDetails = append(result.ValidationDetails,
			fmt.Sprintf("Participation NFT %s has unverified creators", attrs.ParticipationNFT.Key()))
		return false
	}
	return true
}

func validatePrice(attrs core.AuctionState, result *ListingValidationResult) bool {
	if attrs.SaleType != core.SaleTypeSale {
		return true
	}
	if attrs.Price == nil || *attrs.Price <= 0 {
		result.ValidationDetails = append(result.ValidationDetails, "Fixed price sale needs a price above zero")
		return false
	}
	return true
}

func validateSchedule(input *ListingValidationInput, result *ListingValidationResult) bool {
	attrs := input.Attributes
	valid := true

	if attrs.StartSaleTS != nil && attrs.StartListTS != nil && attrs.StartListTS.After(*attrs.StartSaleTS) {
		result.ValidationDetails = append(result.ValidationDetails,
			fmt.Sprintf("Listing date %s is after sale start %s", attrs.StartListTS.UTC().Format("2006-01-02 15:04"), attrs.StartSaleTS.UTC().Format("2006-01-02 15:04")))
		valid = false
	}

	if attrs.EndTS != nil {
		start := input.Now
		if attrs.StartSaleTS != nil {
			start = *attrs.StartSaleTS
		}
		if !start.IsZero() && attrs.EndTS.Before(start) {
			result.ValidationDetails = append(result.ValidationDetails,
				fmt.Sprintf("End date %s is before the sale starts", attrs.EndTS.UTC().Format("2006-01-02 15:04")))
			valid = false
		}
	}

	return valid
}
