package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/msgbox-sys/msgbox-go/protocol/validator"
)

var flagsCmd = &cobra.Command{
	Use:   "flags <bitset>",
	Short: "Check the structure of a flag bitset.",
	Long: `Check the structure of a flag bitset without a ledger.

Flag 1 is the most significant of the six low bits; the bitset
must be greater than 32.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         checkFlags,
}

func init() {
	RootCmd.AddCommand(flagsCmd)
}

func checkFlags(cmd *cobra.Command, args []string) error {
	bitset, err := strconv.ParseUint(args[0], 0, 64)
	if err != nil {
		return fmt.Errorf("Invalid bitset %q: %v", args[0], err)
	}
	out := cmd.OutOrStdout()
	if flags, err := validator.GetFlags(bitset); err == nil {
		for i, f := range flags {
			fmt.Fprintf(out, "flag %d: %t\n", i+1, f)
		}
	}
	res := validator.CheckFlags(bitset)
	if res.Valid {
		fmt.Fprintln(out, "valid")
		return nil
	}
	fmt.Fprintln(out, "invalid:", res.Failed)
	return res.Err()
}
