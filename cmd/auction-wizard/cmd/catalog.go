package cmd

import (
	"fmt"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/spf13/viper"

	"github.com/cloudx-io/auctionwizard/auctionapi"
	"github.com/cloudx-io/auctionwizard/core"
	"github.com/cloudx-io/auctionwizard/wizard"
)

type creatorEntry struct {
	Address  string `mapstructure:"address"`
	Verified bool   `mapstructure:"verified"`
	Share    uint8  `mapstructure:"share"`
}

type masterEditionEntry struct {
	Supply    uint64  `mapstructure:"supply"`
	MaxSupply *uint64 `mapstructure:"max_supply"`
}

type draftEntry struct {
	Metadata      string              `mapstructure:"metadata"`
	Mint          string              `mapstructure:"mint"`
	Name          string              `mapstructure:"name"`
	Creators      []creatorEntry      `mapstructure:"creators"`
	MasterEdition *masterEditionEntry `mapstructure:"master_edition"`
}

type quoteMintEntry struct {
	Address  string `mapstructure:"address"`
	Decimals uint8  `mapstructure:"decimals"`
}

type catalogFile struct {
	QuoteMint quoteMintEntry `mapstructure:"quote_mint"`
	Whitelist []string       `mapstructure:"whitelist"`
	Drafts    []draftEntry   `mapstructure:"drafts"`
}

type planFile struct {
	Actions []wizard.Action `mapstructure:"actions"`
}

// catalog is everything a seller brings to a wizard session.
type catalog struct {
	Registry  *core.DraftRegistry
	QuoteMint core.QuoteMint
	Whitelist map[string]auctionapi.WhitelistedCreator
}

// parseKey decodes a base58 address. The round trip rejects strings that are not exactly
// 32 bytes.
func parseKey(s string) (common.PublicKey, error) {
	k := common.PublicKeyFromString(s)
	if s == "" || k.ToBase58() != s {
		return common.PublicKey{}, fmt.Errorf("invalid address %q", s)
	}
	return k, nil
}

func readFile(path string, into interface{}) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := v.Unmarshal(into); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func loadCatalog(path string) (*catalog, error) {
	var f catalogFile
	if err := readFile(path, &f); err != nil {
		return nil, err
	}

	quote, err := parseKey(f.QuoteMint.Address)
	if err != nil {
		return nil, fmt.Errorf("quote mint: %w", err)
	}

	whitelist := make([]common.PublicKey, 0, len(f.Whitelist))
	for _, a := range f.Whitelist {
		k, err := parseKey(a)
		if err != nil {
			return nil, fmt.Errorf("whitelist: %w", err)
		}
		whitelist = append(whitelist, k)
	}

	drafts := make([]core.SafetyDepositDraft, 0, len(f.Drafts))
	for i, e := range f.Drafts {
		d, err := e.toDraft()
		if err != nil {
			return nil, fmt.Errorf("draft %d: %w", i+1, err)
		}
		drafts = append(drafts, d)
	}

	return &catalog{
		Registry:  core.NewDraftRegistry(drafts),
		QuoteMint: core.QuoteMint{Address: quote, Decimals: f.QuoteMint.Decimals},
		Whitelist: auctionapi.NewWhitelist(whitelist...),
	}, nil
}

func (e draftEntry) toDraft() (core.SafetyDepositDraft, error) {
	metadata, err := parseKey(e.Metadata)
	if err != nil {
		return core.SafetyDepositDraft{}, fmt.Errorf("metadata: %w", err)
	}
	mint, err := parseKey(e.Mint)
	if err != nil {
		return core.SafetyDepositDraft{}, fmt.Errorf("mint: %w", err)
	}

	d := core.SafetyDepositDraft{
		Metadata: metadata,
		Mint:     mint,
		Name:     e.Name,
		Creators: make([]core.Creator, 0, len(e.Creators)),
	}
	for _, c := range e.Creators {
		addr, err := parseKey(c.Address)
		if err != nil {
			return core.SafetyDepositDraft{}, fmt.Errorf("creator: %w", err)
		}
		d.Creators = append(d.Creators, core.Creator{Address: addr, Verified: c.Verified, Share: c.Share})
	}
	if e.MasterEdition != nil {
		d.MasterEdition = &core.MasterEdition{Supply: e.MasterEdition.Supply, MaxSupply: e.MasterEdition.MaxSupply}
	}
	return d, nil
}

func loadPlan(path string) ([]wizard.Action, error) {
	var f planFile
	if err := readFile(path, &f); err != nil {
		return nil, err
	}
	if len(f.Actions) == 0 {
		return nil, fmt.Errorf("plan %s has no actions", path)
	}
	return f.Actions, nil
}

// runPlan loads catalog and plan and drives a fresh session through the plan.
func runPlan(catalogPath, planPath string) (wizard.Session, *catalog, error) {
	cat, err := loadCatalog(catalogPath)
	if err != nil {
		return wizard.Session{}, nil, err
	}
	actions, err := loadPlan(planPath)
	if err != nil {
		return wizard.Session{}, nil, err
	}

	s := wizard.NewSession(wizard.WithQuoteMint(cat.QuoteMint), wizard.WithWhitelist(cat.Whitelist))
	s, err = wizard.Run(s, cat.Registry, actions)
	if err != nil {
		return s, cat, err
	}
	return s, cat, nil
}
