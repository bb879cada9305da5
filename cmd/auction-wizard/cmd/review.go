package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/spin"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cloudx-io/auctionwizard/core"
	"github.com/cloudx-io/auctionwizard/wizard"
)

func init() {
	Cmd.AddCommand(reviewCmd)
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Run the plan and print the listing summary",
	Long:  `Run the plan and print the listing summary, the settings fingerprint and validation findings`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s := spin.New("%s Running wizard plan...")
		s.Start()
		session, _, err := runPlan(viper.GetString("catalog"), viper.GetString("plan"))
		s.Stop()
		checkErr(err)

		compiled := session.Compile()
		hash, err := core.ComputeSettingsHash(compiled)
		checkErr(err)

		RenderTable([]string{"field", "value"}, reviewRows(session, compiled, hash))

		result := session.Validate()
		for _, d := range result.ValidationDetails {
			Warning("%s", d)
		}
		if !result.IsValid() {
			Fatal(fmt.Errorf("listing is not publishable yet"))
		}
		Success("Listing is ready to publish on step %q", session.Current().Label)
	},
}

func reviewRows(s wizard.Session, compiled *core.CompiledAuction, hash string) [][]string {
	attrs := s.Attributes
	decimals := s.QuoteMint.Decimals

	rows := [][]string{
		{"session", s.ID.String()},
		{"category", attrs.Category.String()},
		{"sale type", string(attrs.SaleType)},
		{"winners", winnerLimitText(compiled.WinnerLimit)},
		{"winning configs", fmt.Sprintf("%d", len(compiled.Settings.WinningConfigs))},
		{"items", itemNames(compiled.Items)},
	}

	if compiled.ParticipationItem != nil {
		rows = append(rows, []string{"participation", fmt.Sprintf("%s for %s",
			draftName(*compiled.ParticipationItem),
			core.FormatBaseUnits(compiled.Settings.ParticipationConfig.FixedPrice, decimals))})
	}

	switch {
	case attrs.SaleType == core.SaleTypeSale:
		rows = append(rows, []string{"price", core.FormatBaseUnits(core.ToBaseUnits(attrs.Price, decimals), decimals)})
	case compiled.PriceFloor.Type == core.PriceFloorMinimum:
		rows = append(rows, []string{"price floor", core.FormatBaseUnits(compiled.PriceFloor.MinPrice, decimals)})
	default:
		rows = append(rows, []string{"price floor", "none"})
	}

	if compiled.AuctionDuration > 0 {
		rows = append(rows, []string{"duration", compiled.AuctionDuration.String()})
	}
	if compiled.GapTime > 0 {
		rows = append(rows, []string{"gap time", compiled.GapTime.String()})
	}

	rows = append(rows,
		[]string{"starts", when(attrs.StartSaleTS, "on publish")},
		[]string{"listed", when(attrs.StartListTS, "on publish")},
		[]string{"ends", when(attrs.EndTS, "when sold out")},
		[]string{"settings hash", hash},
	)
	return rows
}

func winnerLimitText(l core.WinnerLimit) string {
	if l.Type == core.WinnerLimitUnlimited {
		return "unlimited"
	}
	return fmt.Sprintf("%d", l.Usize)
}

func itemNames(items []core.SafetyDepositDraft) string {
	if len(items) == 0 {
		return "-"
	}
	names := make([]string, len(items))
	for i, d := range items {
		names[i] = draftName(d)
	}
	return strings.Join(names, ", ")
}

func draftName(d core.SafetyDepositDraft) string {
	if d.Name != "" {
		return d.Name
	}
	return d.Key()
}

func when(t *time.Time, unset string) string {
	if t == nil {
		return unset
	}
	return fmt.Sprintf("%s (%s)", t.UTC().Format("2006-01-02 15:04 MST"), humanize.Time(*t))
}
