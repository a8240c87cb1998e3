package cli

import (
	"github.com/spf13/cobra"
)

// A runCommand is used to create a msgbox executable's
// main functionality.
type runCommand struct {
	appName string
	runFunc func(cmd *cobra.Command, args []string) error
}

var _ cobraCommand = (*runCommand)(nil)

// NewRunCommand constructs a new RunCommand for the given
// executable's appName and the runFunc implementing
// the main functionality run command.
func NewRunCommand(appName string, runFunc func(cmd *cobra.Command, args []string) error) *cobra.Command {
	runCmd := &runCommand{
		appName: appName,
		runFunc: runFunc,
	}
	return runCmd.Build()
}

// Build constructs the cobra.Command according to the
// RunCommand's settings.
func (runCmd *runCommand) Build() *cobra.Command {
	cmd := cobra.Command{
		Use:   "run",
		Short: "Apply a batch of transactions with " + runCmd.appName + ".",
		Long: `Apply a batch of transactions with ` + runCmd.appName + `.

The transactions are read as JSON lines and applied as one block.
The status of every transaction is printed as a JSON line.
This will look for config files with default names
in the current directory if not specified differently.
	`,
		RunE: runCmd.runFunc,
	}
	return &cmd
}
