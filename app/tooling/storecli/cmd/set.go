package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"

	"github.com/storechain/storechain/foundation/store"
)

var (
	setAddress string
	setValue   string
)

// setCmd represents the set command.
var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Overwrite the value held by a store",
	Run: func(cmd *cobra.Command, args []string) {
		privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
		if err != nil {
			log.Fatal(err)
		}

		payload := struct {
			Address string `json:"address"`
			Caller  string `json:"caller"`
			Value   string `json:"value"`
		}{
			Address: setAddress,
			Caller:  string(store.PublicKeyToAccountID(privateKey.PublicKey)),
			Value:   setValue,
		}

		data, err := json.Marshal(payload)
		if err != nil {
			log.Fatal(err)
		}

		resp, err := http.Post(fmt.Sprintf("%s/v1/stores/set", url), "application/json", bytes.NewBuffer(data))
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
	rootCmd.AddCommand(setCmd)
	setCmd.Flags().StringVarP(&setAddress, "address", "d", "", "Address of the store.")
	setCmd.Flags().StringVarP(&setValue, "value", "v", "0", "New value for the store.")
	setCmd.MarkFlagRequired("address")
}
