package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/msgbox-sys/msgbox-go/application"
	"github.com/msgbox-sys/msgbox-go/ledger"
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a ledger transaction.",
	Long: `Sign a ledger transaction.

The payload is the JSON encoding of the method's arguments, e.g.
  msgboxctl sign -k owner.priv -n 1 -m allowlist.addAddress -p '{"address":"..."}'
The signed transaction is printed as one JSON line, ready for "run".`,
	RunE: signTx,
}

func init() {
	RootCmd.AddCommand(signCmd)
	signCmd.Flags().StringP("key", "k", "owner.priv", "Path to the sender's signing key")
	signCmd.Flags().Uint64P("nonce", "n", 1, "Nonce of the transaction, starting at 1")
	signCmd.Flags().StringP("method", "m", "", "Ledger method to call")
	signCmd.Flags().StringP("payload", "p", "{}", "JSON-encoded arguments of the method")
}

func signTx(cmd *cobra.Command, args []string) error {
	keyPath, err := filepath.Abs(cmd.Flag("key").Value.String())
	if err != nil {
		return err
	}
	key, err := application.LoadSigningKey(keyPath, keyPath)
	if err != nil {
		return err
	}
	nonce, err := cmd.Flags().GetUint64("nonce")
	if err != nil {
		return err
	}
	method := cmd.Flag("method").Value.String()
	if method == "" {
		return fmt.Errorf("A method is required")
	}
	payload := json.RawMessage(cmd.Flag("payload").Value.String())
	if !json.Valid(payload) {
		return fmt.Errorf("The payload is not valid JSON")
	}
	tx, err := ledger.NewTx(key, nonce, method, payload)
	if err != nil {
		return err
	}
	return json.NewEncoder(cmd.OutOrStdout()).Encode(tx)
}
