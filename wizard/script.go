package wizard

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cloudx-io/auctionwizard/core"
)

// Action is one scripted user input. Which fields are read depends on Action.
type Action struct {
	Action  string   `mapstructure:"action" json:"action"`
	Value   string   `mapstructure:"value" json:"value,omitempty"`
	Keys    []string `mapstructure:"keys" json:"keys,omitempty"`
	Tier    int      `mapstructure:"tier" json:"tier,omitempty"`
	Slot    int      `mapstructure:"slot" json:"slot,omitempty"`
	Spots   []int    `mapstructure:"spots" json:"spots,omitempty"`
	Enabled bool     `mapstructure:"enabled" json:"enabled,omitempty"`
	At      string   `mapstructure:"at" json:"at,omitempty"` // RFC 3339
}

// ApplyAction performs a scripted action on s, resolving draft keys against registry.
func ApplyAction(s Session, registry *core.DraftRegistry, a Action) (Session, error) {
	switch a.Action {
	case "confirm":
		return s.Confirm()
	case "back":
		return s.Back(), nil
	case "goto":
		n, err := strconv.Atoi(a.Value)
		if err != nil {
			return s, fmt.Errorf("step number %q: %w", a.Value, err)
		}
		return s.GoTo(n)

	case "category":
		c, err := core.ParseCategory(a.Value)
		if err != nil {
			return s, err
		}
		return s.SelectCategory(c)
	case "items":
		selected, err := registry.Select(a.Keys...)
		if err != nil {
			return s, err
		}
		return s.SelectItems(selected)
	case "editions":
		return s.SetEditions(a.Value), nil
	case "winners":
		return s.SetWinnersCount(a.Value), nil

	case "add_tier":
		return s.AddTier(), nil
	case "add_slot":
		return s.AddTierSlot(a.Tier)
	case "winning_spots":
		return s.SetTierWinningSpots(a.Tier, a.Spots)
	case "tier_item":
		selected, err := registry.Select(a.Keys...)
		if err != nil {
			return s, err
		}
		return s.SelectTierItem(a.Tier, a.Slot, selected)
	case "clear_slot":
		return s.ClearTierSlot(a.Tier, a.Slot)
	case "slot_type":
		t, err := core.ParseWinningConfigType(a.Value)
		if err != nil {
			return s, err
		}
		return s.SetTierSlotType(a.Tier, a.Slot, t)
	case "slot_amount":
		return s.SetTierSlotAmount(a.Tier, a.Slot, a.Value)

	case "sale_type":
		t, err := core.ParseSaleType(a.Value)
		if err != nil {
			return s, err
		}
		return s.SetSaleType(t), nil
	case "price":
		return s.SetPrice(a.Value), nil
	case "price_tick":
		return s.SetPriceTick(a.Value)
	case "auction_duration":
		return s.SetAuctionDuration(a.Value)
	case "gap_time":
		return s.SetGapTime(a.Value)
	case "tick_size":
		return s.SetTickSizeEndingPhase(a.Value)

	case "start_immediately":
		return s.SetStartImmediately(a.Enabled), nil
	case "list_immediately":
		return s.SetListImmediately(a.Enabled), nil
	case "start_date":
		t, err := parseAt(a)
		if err != nil {
			return s, err
		}
		return s.SetStartDate(t)
	case "list_date":
		t, err := parseAt(a)
		if err != nil {
			return s, err
		}
		return s.SetListDate(t)
	case "until_sold":
		return s.SetUntilSold(a.Enabled)
	case "end_date":
		t, err := parseAt(a)
		if err != nil {
			return s, err
		}
		return s.SetEndDate(t)

	case "participation":
		selected, err := registry.Select(a.Keys...)
		if err != nil {
			return s, err
		}
		return s.SelectParticipationNFT(selected)
	case "participation_price":
		return s.SetParticipationFixedPrice(a.Value), nil

	case "review":
		return s.ConfirmReview()
	}
	return s, fmt.Errorf("unknown action %q", a.Action)
}

// Run applies actions in order and stops at the first failure.
func Run(s Session, registry *core.DraftRegistry, actions []Action) (Session, error) {
	for i, a := range actions {
		next, err := ApplyAction(s, registry, a)
		if err != nil {
			return s, fmt.Errorf("action %d (%s): %w", i+1, a.Action, err)
		}
		s = next
	}
	return s, nil
}

func parseAt(a Action) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, a.At)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s date %q: %w", a.Action, a.At, err)
	}
	return t, nil
}
