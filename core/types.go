package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/blocto/solana-go-sdk/common"
)

// Category selects which listing flow the wizard runs and how the compiler shapes the
// winning configuration.
type Category int

const (
	CategoryLimited Category = iota
	CategorySingle
	CategoryOpen
	CategoryTiered
)

// Categories lists every category in declaration order.
var Categories = []Category{CategoryLimited, CategorySingle, CategoryOpen, CategoryTiered}

func (c Category) String() string {
	switch c {
	case CategoryLimited:
		return "limited"
	case CategorySingle:
		return "single"
	case CategoryOpen:
		return "open"
	case CategoryTiered:
		return "tiered"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// ParseCategory accepts the lower-case names returned by Category.String.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(strings.TrimSpace(s), c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown auction category %q", s)
}

// SaleType distinguishes bidding auctions from fixed-price sales.
type SaleType string

const (
	SaleTypeAuction SaleType = "auction"
	SaleTypeSale    SaleType = "sale"
)

// ParseSaleType accepts "auction" or "sale".
func ParseSaleType(s string) (SaleType, error) {
	switch SaleType(strings.ToLower(strings.TrimSpace(s))) {
	case SaleTypeAuction:
		return SaleTypeAuction, nil
	case SaleTypeSale:
		return SaleTypeSale, nil
	}
	return "", fmt.Errorf("unknown sale type %q", s)
}

// WinningConfigType is the transfer mode of a prize unit.
type WinningConfigType uint8

const (
	WinningConfigTypeTokenOnlyTransfer WinningConfigType = iota
	WinningConfigTypeFullRightsTransfer
	WinningConfigTypePrinting
)

func (t WinningConfigType) String() string {
	switch t {
	case WinningConfigTypeTokenOnlyTransfer:
		return "token_only_transfer"
	case WinningConfigTypeFullRightsTransfer:
		return "full_rights_transfer"
	case WinningConfigTypePrinting:
		return "printing"
	}
	return fmt.Sprintf("winning_config_type(%d)", uint8(t))
}

// ParseWinningConfigType accepts the names returned by WinningConfigType.String.
func ParseWinningConfigType(s string) (WinningConfigType, error) {
	for _, t := range []WinningConfigType{
		WinningConfigTypeTokenOnlyTransfer,
		WinningConfigTypeFullRightsTransfer,
		WinningConfigTypePrinting,
	} {
		if strings.EqualFold(strings.TrimSpace(s), t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown winning config type %q", s)
}

// Creator is one entry of an NFT's creator list.
type Creator struct {
	Address  common.PublicKey
	Verified bool
	Share    uint8
}

// MasterEdition marks a draft that can print editions. A nil MaxSupply means unlimited prints.
type MasterEdition struct {
	Supply    uint64
	MaxSupply *uint64
}

// SafetyDepositDraft is an item the seller can put into the auction vault.
// Drafts are supplied by the caller and never modified here.
type SafetyDepositDraft struct {
	Metadata      common.PublicKey // identity key
	Mint          common.PublicKey
	Name          string
	Creators      []Creator
	MasterEdition *MasterEdition
}

// Key returns the base58 identity key of the draft.
func (d SafetyDepositDraft) Key() string {
	return d.Metadata.ToBase58()
}

// WinningConfigItem is one prize unit pointing into the safety deposit pool.
type WinningConfigItem struct {
	SafetyDepositBoxIndex int               `cbor:"1,keyasint" json:"safety_deposit_box_index"`
	Amount                int               `cbor:"2,keyasint" json:"amount"`
	WinningConfigType     WinningConfigType `cbor:"3,keyasint" json:"winning_config_type"`
}

// AuctionState is the flat configuration aggregate collected by the wizard.
// Optional numeric fields stay nil until the seller enters a parseable value.
type AuctionState struct {
	// Min price required for the item to sell
	ReservationPrice float64

	Items                   []SafetyDepositDraft
	ParticipationNFT        *SafetyDepositDraft
	ParticipationFixedPrice *float64

	// number of editions, limited category only
	Editions *int

	StartSaleTS *time.Time
	StartListTS *time.Time
	EndTS       *time.Time

	Category Category
	SaleType SaleType

	Price      *float64
	PriceFloor *float64
	PriceTick  *float64

	AuctionDuration     *int // minutes
	GapTime             *int // minutes
	TickSizeEndingPhase *int // percent

	WinnersCount *int
}

// NewAuctionState returns the state a fresh wizard session starts from.
func NewAuctionState() AuctionState {
	return AuctionState{
		Items:    []SafetyDepositDraft{},
		Category: CategoryOpen,
		SaleType: SaleTypeAuction,
	}
}

// Clone returns a copy that shares nothing mutable with s.
func (s AuctionState) Clone() AuctionState {
	c := s
	c.Items = append([]SafetyDepositDraft(nil), s.Items...)
	if s.ParticipationNFT != nil {
		p := *s.ParticipationNFT
		c.ParticipationNFT = &p
	}
	c.ParticipationFixedPrice = clonePtr(s.ParticipationFixedPrice)
	c.Editions = clonePtr(s.Editions)
	c.StartSaleTS = clonePtr(s.StartSaleTS)
	c.StartListTS = clonePtr(s.StartListTS)
	c.EndTS = clonePtr(s.EndTS)
	c.Price = clonePtr(s.Price)
	c.PriceFloor = clonePtr(s.PriceFloor)
	c.PriceTick = clonePtr(s.PriceTick)
	c.AuctionDuration = clonePtr(s.AuctionDuration)
	c.GapTime = clonePtr(s.GapTime)
	c.TickSizeEndingPhase = clonePtr(s.TickSizeEndingPhase)
	c.WinnersCount = clonePtr(s.WinnersCount)
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// WinnerLimitType tells whether the number of winners is capped.
type WinnerLimitType uint8

const (
	WinnerLimitUnlimited WinnerLimitType = iota
	WinnerLimitCapped
)

func (t WinnerLimitType) String() string {
	if t == WinnerLimitCapped {
		return "capped"
	}
	return "unlimited"
}

// WinnerLimit caps how many distinct ranks can win. Usize is zero when unlimited.
type WinnerLimit struct {
	Type  WinnerLimitType `cbor:"1,keyasint" json:"type"`
	Usize uint64          `cbor:"2,keyasint" json:"usize"`
}

// UnlimitedWinners returns the winner limit of open editions.
func UnlimitedWinners() WinnerLimit {
	return WinnerLimit{Type: WinnerLimitUnlimited}
}

// CappedWinners returns a winner limit of n ranks.
func CappedWinners(n uint64) WinnerLimit {
	return WinnerLimit{Type: WinnerLimitCapped, Usize: n}
}

// WinningConfig is the prize basket of one winner rank.
type WinningConfig struct {
	Items []WinningConfigItem `cbor:"1,keyasint" json:"items"`
}

// WinningConstraint describes what a winner receives from the participation config.
type WinningConstraint uint8

const (
	WinningConstraintNoParticipationPrize WinningConstraint = iota
	WinningConstraintParticipationPrizeGiven
)

// NonWinningConstraint describes what a non-winner receives from the participation config.
type NonWinningConstraint uint8

const (
	NonWinningConstraintNoParticipationPrize NonWinningConstraint = iota
	NonWinningConstraintGivenForFixedPrice
	NonWinningConstraintGivenForBidPrice
)

// ParticipationConfig is the fallback prize offered to participants.
type ParticipationConfig struct {
	SafetyDepositBoxIndex int                  `cbor:"1,keyasint" json:"safety_deposit_box_index"`
	WinnerConstraint      WinningConstraint    `cbor:"2,keyasint" json:"winner_constraint"`
	NonWinningConstraint  NonWinningConstraint `cbor:"3,keyasint" json:"non_winning_constraint"`
	FixedPrice            uint64               `cbor:"4,keyasint" json:"fixed_price"`
}

// AuctionManagerSettings is the winning configuration handed to the auction builder.
type AuctionManagerSettings struct {
	WinningConfigs      []WinningConfig      `cbor:"1,keyasint" json:"winning_configs"`
	ParticipationConfig *ParticipationConfig `cbor:"2,keyasint,omitempty" json:"participation_config,omitempty"`
}

// PriceFloorType tells whether a minimum bid applies.
type PriceFloorType uint8

const (
	PriceFloorNone PriceFloorType = iota
	PriceFloorMinimum
)

// PriceFloor is the reserve of the auction in base units of the quote mint.
type PriceFloor struct {
	Type     PriceFloorType `cbor:"1,keyasint" json:"type"`
	MinPrice uint64         `cbor:"2,keyasint" json:"min_price"`
}

// QuoteMint is the currency the auction is priced in.
type QuoteMint struct {
	Address  common.PublicKey
	Decimals uint8
}

// CompiledAuction contains everything the auction builder needs besides the wallet and connection.
type CompiledAuction struct {
	Category          Category
	Settings          AuctionManagerSettings
	WinnerLimit       WinnerLimit
	PriceFloor        PriceFloor
	AuctionDuration   time.Duration
	GapTime           time.Duration
	Items             []SafetyDepositDraft
	ParticipationItem *SafetyDepositDraft
}
