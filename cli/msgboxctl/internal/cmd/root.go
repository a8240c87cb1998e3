// Package cmd implements the subcommands of msgboxctl.
package cmd

import (
	"github.com/msgbox-sys/msgbox-go/cli"
)

// RootCmd represents the base "msgboxctl" command when called without any
// subcommands (register, lookup, ...).
var RootCmd = cli.NewRootCommand("msgboxctl",
	"msgbox ledger tool",
	`msgboxctl creates, signs and applies transactions of a msgbox ledger.

The ledger combines an owner-managed allow-list of addresses,
a validator for numeric messages and a message box that accepts
agent text messages either in the clear or through zero-knowledge proofs.`)
