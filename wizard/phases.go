package wizard

import (
	"fmt"
	"time"

	"github.com/cloudx-io/auctionwizard/core"
)

// SetStartImmediately toggles whether the sale opens on publish. Turning it on also lists
// immediately and clears both dates; turning it off seeds the start to now.
func (s Session) SetStartImmediately(on bool) Session {
	next := s.Clone()
	next.StartImmediately = on
	if on {
		next.Attributes.StartSaleTS = nil
		next.ListImmediately = true
		next.Attributes.StartListTS = nil
		return next
	}
	if next.Attributes.StartSaleTS == nil {
		now := next.now()
		next.Attributes.StartSaleTS = &now
	}
	return next
}

// SetListImmediately toggles whether the listing is visible on publish. It has no effect while
// the sale starts immediately. Turning it off seeds the list date to now, or to the sale start
// when that is earlier.
func (s Session) SetListImmediately(on bool) Session {
	if s.StartImmediately {
		return s
	}
	next := s.Clone()
	next.ListImmediately = on
	if on {
		next.Attributes.StartListTS = nil
		return next
	}
	if next.Attributes.StartListTS == nil {
		list := next.now()
		if start := next.Attributes.StartSaleTS; start != nil && start.Before(list) {
			list = *start
		}
		next.Attributes.StartListTS = &list
	}
	return next
}

// SetStartDate sets an explicit sale start. The listing date must not fall after it.
func (s Session) SetStartDate(t time.Time) (Session, error) {
	if s.StartImmediately {
		return s, fmt.Errorf("%w: sale starts immediately", ErrPhaseImmediate)
	}
	t = t.Truncate(time.Second)
	if list := s.Attributes.StartListTS; list != nil && list.After(t) {
		return s, fmt.Errorf("%w: %s after %s", ErrListAfterStart, list.Format(time.RFC3339), t.Format(time.RFC3339))
	}
	next := s.Clone()
	next.Attributes.StartSaleTS = &t
	return next, nil
}

// SetListDate sets an explicit listing date, which must not fall after the sale start.
func (s Session) SetListDate(t time.Time) (Session, error) {
	if s.ListImmediately {
		return s, fmt.Errorf("%w: listing is immediate", ErrPhaseImmediate)
	}
	t = t.Truncate(time.Second)
	if start := s.Attributes.StartSaleTS; start != nil && t.After(*start) {
		return s, fmt.Errorf("%w: %s after %s", ErrListAfterStart, t.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	next := s.Clone()
	next.Attributes.StartListTS = &t
	return next, nil
}

// SetUntilSold toggles whether a fixed price sale runs until sold out. Turning it off seeds
// the end date to the sale start, or now when the sale starts immediately.
func (s Session) SetUntilSold(on bool) (Session, error) {
	if err := s.requireSaleType(core.SaleTypeSale); err != nil {
		return s, err
	}
	next := s.Clone()
	next.UntilSold = on
	if on {
		next.Attributes.EndTS = nil
		return next, nil
	}
	if next.Attributes.EndTS == nil {
		end := next.saleStart()
		next.Attributes.EndTS = &end
	}
	return next, nil
}

// SetEndDate sets when a fixed price sale closes. It must not be before the sale start.
func (s Session) SetEndDate(t time.Time) (Session, error) {
	if err := s.requireSaleType(core.SaleTypeSale); err != nil {
		return s, err
	}
	if s.UntilSold {
		return s, fmt.Errorf("%w: sale runs until sold", ErrPhaseImmediate)
	}
	t = t.Truncate(time.Second)
	if start := s.saleStart(); t.Before(start) {
		return s, fmt.Errorf("%w: %s before %s", ErrEndBeforeStart, t.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	next := s.Clone()
	next.Attributes.EndTS = &t
	return next, nil
}

func (s Session) saleStart() time.Time {
	if s.Attributes.StartSaleTS != nil {
		return *s.Attributes.StartSaleTS
	}
	return s.now()
}
