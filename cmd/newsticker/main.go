package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{Use: "newsticker"}
	root.AddCommand(serveCMD(), fetchCMD())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
