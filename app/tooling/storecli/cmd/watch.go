package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

// watchCmd represents the watch command.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream the diagnostic events the stores emit",
	Run: func(cmd *cobra.Command, args []string) {
		wsURL := strings.Replace(url, "http", "ws", 1) + "/v1/events"

		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			fmt.Println(string(msg))
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
