package cmd

import (
	"log"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"

	"github.com/storechain/storechain/foundation/store"
)

// generateCmd represents the generate command.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new private key for the caller account",
	Run: func(cmd *cobra.Command, args []string) {
		privateKey, err := crypto.GenerateKey()
		if err != nil {
			log.Fatal(err)
		}

		if err := os.MkdirAll(filepath.Dir(getPrivateKeyPath()), 0755); err != nil {
			log.Fatal(err)
		}

		if err := crypto.SaveECDSA(getPrivateKeyPath(), privateKey); err != nil {
			log.Fatal(err)
		}

		log.Printf("account: %s", store.PublicKeyToAccountID(privateKey.PublicKey))
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
