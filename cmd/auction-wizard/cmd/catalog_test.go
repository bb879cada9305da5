package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"

	"github.com/cloudx-io/auctionwizard/auctionapi"
	"github.com/cloudx-io/auctionwizard/core"
	"github.com/cloudx-io/auctionwizard/wizard"
)

const (
	genesisKey  = "metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s"
	passKey     = "ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL"
	sketchKey   = "Stake11111111111111111111111111111111111111"
	creatorAddr = "Vote111111111111111111111111111111111111111"
)

func TestParseKey(t *testing.T) {
	k, err := parseKey(creatorAddr)
	assert.NoError(t, err)
	check.Equal(t, creatorAddr, k.ToBase58())

	for _, bad := range []string{"", "not-base58!", "1111", "So11111111111111111111111111111111111111112extra"} {
		_, err := parseKey(bad)
		check.Error(t, err)
	}
}

func TestLoadCatalog(t *testing.T) {
	cat, err := loadCatalog(filepath.Join("testdata", "catalog.yaml"))
	assert.NoError(t, err)

	check.Equal(t, 3, cat.Registry.Len())
	check.Equal(t, uint8(9), cat.QuoteMint.Decimals)
	check.Equal(t, "So11111111111111111111111111111111111111112", cat.QuoteMint.Address.ToBase58())

	assert.Equal(t, 1, len(cat.Whitelist))
	check.True(t, cat.Whitelist[creatorAddr].Activated)

	genesis, err := cat.Registry.Lookup(genesisKey)
	assert.NoError(t, err)
	check.Equal(t, "Genesis", genesis.Name)
	assert.NotNil(t, genesis.MasterEdition)
	assert.NotNil(t, genesis.MasterEdition.MaxSupply)
	check.Equal(t, uint64(10), *genesis.MasterEdition.MaxSupply)
	check.Equal(t, uint64(2), genesis.MasterEdition.Supply)
	check.True(t, core.HasLimitedSupply(genesis))

	pass, err := cat.Registry.Lookup(passKey)
	assert.NoError(t, err)
	check.True(t, core.HasOpenSupply(pass))

	sketch, err := cat.Registry.Lookup(sketchKey)
	assert.NoError(t, err)
	check.Nil(t, sketch.MasterEdition)
	check.False(t, core.CreatorsVerified(sketch))
}

func TestLoadCatalog_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		assert.NoError(t, os.WriteFile(path, []byte(body), 0o600))
		return path
	}

	_, err := loadCatalog(filepath.Join(dir, "missing.yaml"))
	check.Error(t, err)

	_, err = loadCatalog(write("quote.yaml", "quote_mint:\n  address: nope\n"))
	check.Error(t, err)

	_, err = loadCatalog(write("draft.yaml", `quote_mint:
  address: So11111111111111111111111111111111111111112
drafts:
  - metadata: `+genesisKey+`
    mint: bad
`))
	check.Error(t, err)
}

func TestLoadPlan(t *testing.T) {
	actions, err := loadPlan(filepath.Join("testdata", "plan.yaml"))
	assert.NoError(t, err)

	check.Equal(t, wizard.Action{Action: "category", Value: "single"}, actions[0])
	check.Equal(t, []string{genesisKey}, actions[1].Keys)
	check.Equal(t, "review", actions[len(actions)-1].Action)

	path := filepath.Join(t.TempDir(), "empty.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("actions: []\n"), 0o600))
	_, err = loadPlan(path)
	check.Error(t, err)
}

func TestRunPlan_PublishesDryRun(t *testing.T) {
	session, cat, err := runPlan(filepath.Join("testdata", "catalog.yaml"), filepath.Join("testdata", "plan.yaml"))
	assert.NoError(t, err)
	assert.NotNil(t, cat)

	check.Equal(t, wizard.StepPublish, session.Current().ID)
	check.True(t, session.Validate().IsValid())

	compiled := session.Compile()
	check.Equal(t, core.CappedWinners(1), compiled.WinnerLimit)
	check.Equal(t, core.PriceFloor{Type: core.PriceFloorMinimum, MinPrice: 500_000_000}, compiled.PriceFloor)
	assert.NotNil(t, compiled.Settings.ParticipationConfig)
	check.Equal(t, 1, compiled.Settings.ParticipationConfig.SafetyDepositBoxIndex)
	check.Equal(t, uint64(100_000_000), compiled.Settings.ParticipationConfig.FixedPrice)

	var out bytes.Buffer
	published, err := session.Publish(context.Background(), auctionapi.NewDryRunCreator(&out), nil)
	assert.NoError(t, err)
	assert.NotNil(t, published.Accounts)
	check.Equal(t, wizard.StepCongrats, published.Current().ID)

	var written struct {
		Request  auctionapi.RequestView  `json:"request"`
		Accounts auctionapi.AccountsView `json:"accounts"`
	}
	assert.NoError(t, json.Unmarshal(out.Bytes(), &written))
	check.Equal(t, published.Accounts.View(), written.Accounts)
	check.Equal(t, []string{creatorAddr}, written.Request.WhitelistedCreators)
}

func TestRunPlan_StopsOnIneligibleItem(t *testing.T) {
	session, _, err := runPlan(filepath.Join("testdata", "catalog.yaml"), filepath.Join("testdata", "bad_plan.yaml"))
	check.Error(t, err)
	check.True(t, errors.Is(err, core.ErrIneligibleDraft))
	check.Equal(t, wizard.StepCopies, session.Current().ID)
}

func TestStepRows(t *testing.T) {
	rows := stepRows(core.CategoryOpen)
	check.Equal(t, len(wizard.Steps(core.CategoryOpen)), len(rows))
	check.Equal(t, []string{"0", "category", "Category"}, rows[0])
	check.Equal(t, []string{"7", "congrats", "(hidden)"}, rows[len(rows)-1])
}

func TestOpenOut(t *testing.T) {
	out, closeOut, err := openOut("")
	assert.NoError(t, err)
	check.True(t, out == io.Writer(os.Stdout))
	check.NoError(t, closeOut())

	path := filepath.Join(t.TempDir(), "dryrun.json")
	out, closeOut, err = openOut(path)
	assert.NoError(t, err)
	_, err = io.WriteString(out, "{}")
	assert.NoError(t, err)
	assert.NoError(t, closeOut())

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	check.Equal(t, "{}", string(data))

	_, _, err = openOut(filepath.Join(t.TempDir(), "missing", "dryrun.json"))
	check.Error(t, err)
}
