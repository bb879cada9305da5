package wizard

import (
	"fmt"

	"github.com/cloudx-io/auctionwizard/core"
)

// SetSaleType switches between bidding and fixed price.
func (s Session) SetSaleType(t core.SaleType) Session {
	next := s.Clone()
	next.Attributes.SaleType = t
	return next
}

// SetPrice stores the amount typed on the price step. A sale stores it as the fixed price.
// An open edition auction uses it both as the price of the participation print and as the
// floor; other auctions use it as the floor.
func (s Session) SetPrice(raw string) Session {
	next := s.Clone()
	amount := core.ParseAmount(raw)

	switch {
	case s.Attributes.SaleType == core.SaleTypeSale:
		next.Attributes.Price = amount
	case s.Attributes.Category == core.CategoryOpen:
		next.Attributes.ParticipationFixedPrice = amount
		next.Attributes.PriceFloor = core.ParseAmount(raw)
	default:
		next.Attributes.PriceFloor = amount
	}
	return next
}

// SetPriceTick sets the minimum bid increment of an auction.
func (s Session) SetPriceTick(raw string) (Session, error) {
	if err := s.requireSaleType(core.SaleTypeAuction); err != nil {
		return s, err
	}
	next := s.Clone()
	next.Attributes.PriceTick = core.ParseAmount(raw)
	return next, nil
}

// SetAuctionDuration sets the bidding window in minutes.
func (s Session) SetAuctionDuration(raw string) (Session, error) {
	return s.setAuctionCount(raw, func(a *core.AuctionState, v *int) { a.AuctionDuration = v })
}

// SetGapTime sets the extension in minutes that a late bid adds to the auction.
func (s Session) SetGapTime(raw string) (Session, error) {
	return s.setAuctionCount(raw, func(a *core.AuctionState, v *int) { a.GapTime = v })
}

// SetTickSizeEndingPhase sets the minimum raise in percent during the ending phase.
func (s Session) SetTickSizeEndingPhase(raw string) (Session, error) {
	return s.setAuctionCount(raw, func(a *core.AuctionState, v *int) { a.TickSizeEndingPhase = v })
}

func (s Session) setAuctionCount(raw string, set func(*core.AuctionState, *int)) (Session, error) {
	if err := s.requireSaleType(core.SaleTypeAuction); err != nil {
		return s, err
	}
	next := s.Clone()
	set(&next.Attributes, core.ParseCount(raw))
	return next, nil
}

func (s Session) requireSaleType(t core.SaleType) error {
	if s.Attributes.SaleType != t {
		return fmt.Errorf("%w: needs %s, listing is a %s", ErrWrongSaleType, t, s.Attributes.SaleType)
	}
	return nil
}
