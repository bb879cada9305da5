package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cloudx-io/auctionwizard/core"
	"github.com/cloudx-io/auctionwizard/wizard"
)

func init() {
	Cmd.AddCommand(stepsCmd)
}

var stepsCmd = &cobra.Command{
	Use:   "steps [category]",
	Short: "Print the wizard steps of a listing category",
	Long:  `Print the wizard steps of a listing category: limited, single, open or tiered`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		category, err := core.ParseCategory(args[0])
		checkErr(err)

		RenderTable([]string{"#", "step", "label"}, stepRows(category))
	},
}

func stepRows(category core.Category) [][]string {
	steps := wizard.Steps(category)
	rows := make([][]string, len(steps))
	for i, s := range steps {
		label := s.Label
		if label == "" {
			label = "(hidden)"
		}
		rows[i] = []string{strconv.Itoa(i), string(s.ID), label}
	}
	return rows
}
