package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/imkonsowa/restaurant-concierge/catalog"
	"github.com/imkonsowa/restaurant-concierge/chat"
	"github.com/imkonsowa/restaurant-concierge/config"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var (
		configPath string
		factsPath  string
		menuPath   string
		showIntent bool
	)

	cmd := &cobra.Command{
		Use:   "ask [message]",
		Short: "Answer a guest message from the local facts and menu files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if factsPath != "" {
				cfg.Data.FactsPath = factsPath
			}
			if menuPath != "" {
				cfg.Data.MenuPath = menuPath
			}

			cat, err := catalog.Load(cfg.Data.FactsPath, cfg.Data.MenuPath)
			if err != nil {
				return err
			}

			return answer(cmd.OutOrStdout(), chat.NewEngine(cat), strings.Join(args, " "), showIntent)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default ./config/config.yaml)")
	cmd.Flags().StringVar(&factsPath, "facts", "", "facts JSON, overrides data.factsPath")
	cmd.Flags().StringVar(&menuPath, "menu", "", "menu JSON, overrides data.menuPath")
	cmd.Flags().BoolVar(&showIntent, "intent", false, "print the classified intent before the reply")

	return cmd
}

func answer(w io.Writer, engine *chat.Engine, message string, showIntent bool) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return fmt.Errorf("message required")
	}

	intent, reply := engine.Respond(message)
	if showIntent {
		label := string(intent.Name)
		if intent.Kind != "" {
			label += "/" + string(intent.Kind)
		}
		fmt.Fprintf(w, "intent: %s\n", label)
	}
	fmt.Fprintln(w, reply.Reply)
	if reply.Followup != "" {
		fmt.Fprintf(w, "followup: %s\n", reply.Followup)
	}

	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
