package validation

import (
	"time"

	"github.com/cloudx-io/auctionwizard/core"
)

// ListingValidationInput is the wizard state checked before a listing is published
type ListingValidationInput struct {
	Attributes core.AuctionState
	Tiered     core.TieredAuctionState
	Now        time.Time // reference for schedule checks, zero skips the past-date check
}

// ListingValidationResult contains the outcome of every check area
type ListingValidationResult struct {
	ItemsValid         bool
	SupplyValid        bool
	WinnersValid       bool
	TiersValid         bool
	ParticipationValid bool
	PriceValid         bool
	ScheduleValid      bool
	ValidationDetails  []string
}

// IsValid returns true if all listing checks passed
func (r *ListingValidationResult) IsValid() bool {
	return r.ItemsValid && r.SupplyValid && r.WinnersValid && r.TiersValid &&
		r.ParticipationValid && r.PriceValid && r.ScheduleValid
}
