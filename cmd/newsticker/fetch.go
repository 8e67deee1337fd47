package main

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"newsticker/config"
	srv "newsticker/internal/server"
	"newsticker/news"
)

// fetchCMD runs one pipeline pass without the HTTP server and prints the
// parsed records as JSON. Handy for smoke-testing keys and prompts.
func fetchCMD() *cobra.Command {
	var cfgPath string
	var raw bool
	fetch := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch today's AI news once and print the records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)
			adapter, err := srv.BuildPipeline(cfg, log.New(log.Writer(), "[AGENT] ", log.LstdFlags))
			if err != nil {
				return err
			}

			reply := adapter.RunBlocking(srv.NewsPrompt(cfg.Agent.Quota, time.Now()))
			if strings.HasPrefix(reply, "Error:") {
				return fmt.Errorf("%s", reply)
			}
			if raw {
				fmt.Println(reply)
				return nil
			}
			out, err := json.MarshalIndent(news.Parse(reply), "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	fetch.Flags().StringVarP(&cfgPath, "config", "c", "", "config file (default is ./config)")
	fetch.Flags().BoolVar(&raw, "raw", false, "print the raw agent reply instead of parsed records")
	return fetch
}
