package cmd

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/caarlos0/spin"
	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cloudx-io/auctionwizard/auctionapi"
	"github.com/cloudx-io/auctionwizard/wizard"
)

func init() {
	publishCmd.Flags().StringP("out", "o", "", "write the dry run request and accounts to this file instead of stdout")
	Cmd.AddCommand(publishCmd)
}

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Run the plan and publish the listing through the dry-run builder",
	Long: `Run the plan, validate the listing and hand it to the dry-run builder. The plan must
leave the wizard on the publish step, usually by ending with a review action.`,
	Args: cobra.NoArgs,
	PreRun: func(cmd *cobra.Command, args []string) {
		err := viper.BindPFlags(cmd.Flags())
		checkErr(err)
	},
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		s := spin.New("%s Running wizard plan...")
		s.Start()
		session, _, err := runPlan(viper.GetString("catalog"), viper.GetString("plan"))
		s.Stop()
		checkErr(err)

		out, closeOut, err := openOut(viper.GetString("out"))
		checkErr(err)

		bar := pb.StartNew(100)
		published, err := session.Publish(ctx, auctionapi.NewDryRunCreator(out), wizard.ProgressFunc(func(percent int) {
			bar.SetCurrent(int64(percent))
		}))
		bar.Finish()
		checkErr(errors.Join(err, closeOut()))

		accounts := published.Accounts.View()
		RenderTable([]string{"account", "address"}, [][]string{
			{"vault", accounts.Vault},
			{"auction", accounts.Auction},
			{"auction manager", accounts.AuctionManager},
		})
		Success("Listing %s published", published.ID)
	},
}

// openOut returns stdout for an empty path, or the created file and its close function.
func openOut(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return file, file.Close, nil
}
