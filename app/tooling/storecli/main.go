// This program provides a command line client for deploying stores and
// interacting with them through a running store node.
package main

import "github.com/storechain/storechain/app/tooling/storecli/cmd"

func main() {
	cmd.Execute()
}
