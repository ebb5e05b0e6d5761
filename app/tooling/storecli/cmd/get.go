package cmd

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var getAddress string

// getCmd represents the get command.
var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Read the current value held by a store",
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := http.Get(fmt.Sprintf("%s/v1/stores/value/%s", url, getAddress))
		if err != nil {
			log.Fatal(err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Println(string(body))
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().StringVarP(&getAddress, "address", "d", "", "Address of the store.")
	getCmd.MarkFlagRequired("address")
}
