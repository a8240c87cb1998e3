// Executable msgboxctl manages a msgbox ledger. See README for
// usage instructions.
package main

import (
	"github.com/msgbox-sys/msgbox-go/cli"
	"github.com/msgbox-sys/msgbox-go/cli/msgboxctl/internal/cmd"
)

func main() {
	cli.ExecuteRoot(cmd.RootCmd)
}
