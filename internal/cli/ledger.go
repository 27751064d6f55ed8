package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KenRoach/kitzV1-sub005/internal/config"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Replay the event ledger as NDJSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		led, err := openLedger(cfg)
		if err != nil {
			return err
		}
		defer led.Close()

		events, err := led.ListEvents()
		if err != nil {
			return err
		}
		for i := range events {
			line, err := json.Marshal(&events[i])
			if err != nil {
				return err
			}
			fmt.Println(string(line))
		}
		return nil
	},
}

var artifactsCmd = &cobra.Command{
	Use:   "artifacts",
	Short: "Replay the artifact ledger as NDJSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		led, err := openLedger(cfg)
		if err != nil {
			return err
		}
		defer led.Close()

		artifacts, err := led.ListArtifacts()
		if err != nil {
			return err
		}
		for _, a := range artifacts {
			line, err := json.Marshal(a)
			if err != nil {
				return err
			}
			fmt.Println(string(line))
		}
		return nil
	},
}
