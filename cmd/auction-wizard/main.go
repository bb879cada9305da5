package main

import (
	"fmt"
	"os"

	"github.com/cloudx-io/auctionwizard/cmd/auction-wizard/cmd"
)

func main() {
	if err := cmd.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
