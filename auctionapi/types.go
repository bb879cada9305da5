package auctionapi

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/blocto/solana-go-sdk/common"

	"github.com/cloudx-io/auctionwizard/core"
)

// AuctionCreator builds the vault, auction and auction manager for a listing.
// Implementations own the wallet and the connection; the wizard only awaits the result.
type AuctionCreator interface {
	CreateAuctionManager(ctx context.Context, req CreateAuctionManagerRequest) (*AuctionManagerAccounts, error)
}

// WhitelistedCreator is a creator allowed to list on the store.
type WhitelistedCreator struct {
	Address   common.PublicKey
	Activated bool
}

// CreateAuctionManagerRequest is everything the builder needs besides wallet and connection.
type CreateAuctionManagerRequest struct {
	WhitelistedCreators map[string]WhitelistedCreator // keyed by base58 address
	Settings            core.AuctionManagerSettings
	WinnerLimit         core.WinnerLimit
	AuctionDuration     int64 // seconds, zero means unset
	GapTime             int64 // seconds, zero means unset
	Items               []core.SafetyDepositDraft
	ParticipationItem   *core.SafetyDepositDraft
	QuoteMint           core.QuoteMint
	PriceFloor          core.PriceFloor

	// SettingsHash fingerprints the compiled settings, see core.ComputeSettingsHash.
	SettingsHash string
}

// AuctionManagerAccounts are the addresses created for a published listing.
type AuctionManagerAccounts struct {
	Vault          common.PublicKey
	Auction        common.PublicKey
	AuctionManager common.PublicKey
}

// NewWhitelist marks every address as an activated whitelisted creator.
func NewWhitelist(addresses ...common.PublicKey) map[string]WhitelistedCreator {
	whitelist := make(map[string]WhitelistedCreator, len(addresses))
	for _, a := range addresses {
		whitelist[a.ToBase58()] = WhitelistedCreator{Address: a, Activated: true}
	}
	return whitelist
}

// NewCreateAuctionManagerRequest packs a compiled auction for the builder.
func NewCreateAuctionManagerRequest(compiled *core.CompiledAuction, whitelist map[string]WhitelistedCreator, quote core.QuoteMint) (CreateAuctionManagerRequest, error) {
	hash, err := core.ComputeSettingsHash(compiled)
	if err != nil {
		return CreateAuctionManagerRequest{}, fmt.Errorf("fingerprint settings: %w", err)
	}

	req := CreateAuctionManagerRequest{
		WhitelistedCreators: make(map[string]WhitelistedCreator, len(whitelist)),
		Settings:            compiled.Settings,
		WinnerLimit:         compiled.WinnerLimit,
		AuctionDuration:     int64(compiled.AuctionDuration.Seconds()),
		GapTime:             int64(compiled.GapTime.Seconds()),
		Items:               append([]core.SafetyDepositDraft{}, compiled.Items...),
		QuoteMint:           quote,
		PriceFloor:          compiled.PriceFloor,
		SettingsHash:        hash,
	}
	for k, v := range whitelist {
		req.WhitelistedCreators[k] = v
	}
	if compiled.ParticipationItem != nil {
		p := *compiled.ParticipationItem
		req.ParticipationItem = &p
	}
	return req, nil
}

// ItemView is the wire form of a safety deposit draft.
type ItemView struct {
	Metadata      string `json:"metadata"`
	Mint          string `json:"mint"`
	Name          string `json:"name,omitempty"`
	MasterEdition bool   `json:"master_edition"`
}

// RequestView is the JSON form of a CreateAuctionManagerRequest, with keys in base58.
type RequestView struct {
	WhitelistedCreators []string                    `json:"whitelisted_creators"` // activated only, sorted
	Settings            core.AuctionManagerSettings `json:"settings"`
	WinnerLimit         core.WinnerLimit            `json:"winner_limit"`
	AuctionDuration     int64                       `json:"auction_duration_s,omitempty"`
	GapTime             int64                       `json:"gap_time_s,omitempty"`
	Items               []ItemView                  `json:"items"`
	ParticipationItem   *ItemView                   `json:"participation_item,omitempty"`
	QuoteMint           string                      `json:"quote_mint"`
	QuoteDecimals       uint8                       `json:"quote_decimals"`
	PriceFloor          core.PriceFloor             `json:"price_floor"`
	SettingsHash        string                      `json:"settings_hash"`
}

// RequestView converts the request into its JSON view.
func (r CreateAuctionManagerRequest) RequestView() RequestView {
	view := RequestView{
		WhitelistedCreators: []string{},
		Settings:            r.Settings,
		WinnerLimit:         r.WinnerLimit,
		AuctionDuration:     r.AuctionDuration,
		GapTime:             r.GapTime,
		Items:               make([]ItemView, 0, len(r.Items)),
		QuoteMint:           r.QuoteMint.Address.ToBase58(),
		QuoteDecimals:       r.QuoteMint.Decimals,
		PriceFloor:          r.PriceFloor,
		SettingsHash:        r.SettingsHash,
	}
	for _, c := range r.WhitelistedCreators {
		if c.Activated {
			view.WhitelistedCreators = append(view.WhitelistedCreators, c.Address.ToBase58())
		}
	}
	sort.Strings(view.WhitelistedCreators)

	for _, d := range r.Items {
		view.Items = append(view.Items, itemView(d))
	}
	if r.ParticipationItem != nil {
		p := itemView(*r.ParticipationItem)
		view.ParticipationItem = &p
	}
	return view
}

// MarshalJSON encodes the request through its view.
func (r CreateAuctionManagerRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.RequestView())
}

func itemView(d core.SafetyDepositDraft) ItemView {
	return ItemView{
		Metadata:      d.Metadata.ToBase58(),
		Mint:          d.Mint.ToBase58(),
		Name:          d.Name,
		MasterEdition: d.MasterEdition != nil,
	}
}

// AccountsView is the JSON form of AuctionManagerAccounts.
type AccountsView struct {
	Vault          string `json:"vault"`
	Auction        string `json:"auction"`
	AuctionManager string `json:"auction_manager"`
}

// View converts the accounts into base58 strings.
func (a AuctionManagerAccounts) View() AccountsView {
	return AccountsView{
		Vault:          a.Vault.ToBase58(),
		Auction:        a.Auction.ToBase58(),
		AuctionManager: a.AuctionManager.ToBase58(),
	}
}
