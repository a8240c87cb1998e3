package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/msgbox-sys/msgbox-go/application"
	"github.com/msgbox-sys/msgbox-go/cli"
	"github.com/msgbox-sys/msgbox-go/ledger"
	"github.com/msgbox-sys/msgbox-go/protocol"
)

// maxTxLine bounds one JSON-encoded transaction.
const maxTxLine = 1 << 20

var runCmd = cli.NewRunCommand("msgboxctl", run)

func init() {
	RootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("config", "c", "config.toml",
		"Path to ledger configuration file")
	runCmd.Flags().StringP("txs", "t", "-",
		"Path to the JSON lines of signed transactions, - for stdin")
}

func run(cmd *cobra.Command, args []string) error {
	conf, err := application.LoadConfig(cmd.Flag("config").Value.String())
	if err != nil {
		return err
	}
	logger, err := application.NewLogger(conf.Logger)
	if err != nil {
		return err
	}
	defer logger.Sync()

	engine, err := loadEngine(conf)
	if err != nil {
		return err
	}
	l, db, err := openLedger(conf, engine, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if l.Height() == 0 {
		for _, a := range conf.Agents {
			details, err := a.Details()
			if err != nil {
				return err
			}
			if err := l.PopulateGenesis(protocol.AgentID(a.ID), details); err != nil {
				return fmt.Errorf("Cannot populate agent %d: %v", a.ID, err)
			}
		}
	}

	in, err := openTxs(cmd.Flag("txs").Value.String())
	if err != nil {
		return err
	}
	defer in.Close()
	txs, err := readTxs(in)
	if err != nil {
		return err
	}
	for _, tx := range txs {
		l.Submit(tx)
	}

	block, err := l.ProduceBlock()
	if block == nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	for _, st := range block.Statuses {
		if err := enc.Encode(st); err != nil {
			return err
		}
	}
	return err
}

func openTxs(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(name)
}

// readTxs decodes one transaction per non-empty line of r.
func readTxs(r io.Reader) ([]*ledger.Tx, error) {
	var txs []*ledger.Tx
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxTxLine)
	for line := 1; sc.Scan(); line++ {
		if len(sc.Bytes()) == 0 {
			continue
		}
		tx := new(ledger.Tx)
		if err := json.Unmarshal(sc.Bytes(), tx); err != nil {
			return nil, fmt.Errorf("Malformed transaction on line %d: %v", line, err)
		}
		txs = append(txs, tx)
	}
	return txs, sc.Err()
}
