package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msgbox-sys/msgbox-go/application"
	"github.com/msgbox-sys/msgbox-go/ledger"
	"github.com/msgbox-sys/msgbox-go/protocol"
)

var proveCmd = &cobra.Command{
	Use:   "prove",
	Short: "Prove a text message for the private message box.",
	Long: `Prove a text message for the private message box.

The message is checked against the agent record stored in the ledger
named by the config file. The printed payload carries the proof and
its public output only, e.g.
  msgboxctl prove -m '{"MessageNumber":5,"Details":{"AgentID":1,"Text":"hello world!","SecurityCode":"AZ"}}'`,
	RunE: prove,
}

func init() {
	RootCmd.AddCommand(proveCmd)
	proveCmd.Flags().StringP("config", "c", "config.toml",
		"Path to ledger configuration file")
	proveCmd.Flags().StringP("message", "m", "", "JSON-encoded text message")
}

func prove(cmd *cobra.Command, args []string) error {
	conf, err := application.LoadConfig(cmd.Flag("config").Value.String())
	if err != nil {
		return err
	}
	if !conf.PrivateMessages() {
		return fmt.Errorf("The private message box is disabled in %s", conf.Path)
	}
	var msg protocol.Message
	if err := json.Unmarshal([]byte(cmd.Flag("message").Value.String()), &msg); err != nil {
		return fmt.Errorf("Malformed message: %v", err)
	}

	engine, err := loadEngine(conf)
	if err != nil {
		return err
	}
	l, db, err := openLedger(conf, engine, application.NewNopLogger())
	if err != nil {
		return err
	}
	defer db.Close()

	proof, err := engine.Prove(l.Agent(msg.Details.AgentID), msg)
	if err != nil {
		return err
	}
	return json.NewEncoder(cmd.OutOrStdout()).Encode(
		&ledger.ProcessMessagePrivatelyPayload{Proof: *proof})
}
