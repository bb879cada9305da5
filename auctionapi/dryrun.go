package auctionapi

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/blocto/solana-go-sdk/common"
)

// AuctionProgramID is the auction program the dry-run addresses are derived under.
var AuctionProgramID = common.PublicKeyFromString("auctxRXPeJoc4817jDhf4HbjnhEcr1cCXenosMhK5R8")

// DryRunCreator stands in for the on-chain builder. It writes the request as JSON and returns
// program addresses derived from the settings hash, so equal settings give equal accounts.
type DryRunCreator struct {
	Out       io.Writer
	ProgramID common.PublicKey
}

// NewDryRunCreator returns a DryRunCreator writing to out under AuctionProgramID.
func NewDryRunCreator(out io.Writer) *DryRunCreator {
	return &DryRunCreator{Out: out, ProgramID: AuctionProgramID}
}

// CreateAuctionManager implements AuctionCreator.
func (c *DryRunCreator) CreateAuctionManager(ctx context.Context, req CreateAuctionManagerRequest) (*AuctionManagerAccounts, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seed, err := hex.DecodeString(req.SettingsHash)
	if err != nil || len(seed) != 32 {
		return nil, fmt.Errorf("invalid settings hash %q", req.SettingsHash)
	}

	accounts := &AuctionManagerAccounts{}
	for _, target := range []struct {
		prefix string
		out    *common.PublicKey
	}{
		{"vault", &accounts.Vault},
		{"auction", &accounts.Auction},
		{"manager", &accounts.AuctionManager},
	} {
		addr, _, err := common.FindProgramAddress([][]byte{[]byte(target.prefix), seed}, c.ProgramID)
		if err != nil {
			return nil, fmt.Errorf("derive %s address: %w", target.prefix, err)
		}
		*target.out = addr
	}

	if c.Out != nil {
		enc := json.NewEncoder(c.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(struct {
			Request  RequestView  `json:"request"`
			Accounts AccountsView `json:"accounts"`
		}{req.RequestView(), accounts.View()}); err != nil {
			return nil, fmt.Errorf("write dry run: %w", err)
		}
	}
	return accounts, nil
}
