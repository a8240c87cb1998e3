package cmd

import (
	"github.com/msgbox-sys/msgbox-go/cli"
)

var versionCmd = cli.NewVersionCommand("msgboxctl")

func init() {
	RootCmd.AddCommand(versionCmd)
}
