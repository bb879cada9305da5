package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cloudx-io/auctionwizard/auctionapi"
)

func init() {
	Cmd.AddCommand(compileCmd)
}

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Run the plan and print the auction builder request",
	Long:  `Run the plan and print the auction builder request as JSON`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		session, _, err := runPlan(viper.GetString("catalog"), viper.GetString("plan"))
		checkErr(err)

		req, err := auctionapi.NewCreateAuctionManagerRequest(session.Compile(), session.Whitelist, session.QuoteMint)
		checkErr(err)

		data, err := json.MarshalIndent(req.RequestView(), "", "  ")
		checkErr(err)
		fmt.Println(string(data))
	},
}
