package main

import (
	"fmt"
	"os"

	"github.com/davemarr/asset-inventory/cmd/cli/assets"
	"github.com/davemarr/asset-inventory/cmd/cli/auth"
	"github.com/davemarr/asset-inventory/cmd/cli/root"
)

func main() {
	auth.InitAuth(root.RootCmd)
	assets.InitAssets(root.RootCmd)

	if err := root.RootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
