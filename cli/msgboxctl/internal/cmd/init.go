package cmd

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/msgbox-sys/msgbox-go/application"
	"github.com/msgbox-sys/msgbox-go/cli"
	"github.com/msgbox-sys/msgbox-go/crypto/sign"
	"github.com/msgbox-sys/msgbox-go/protocol/attest"
	"github.com/msgbox-sys/msgbox-go/utils"
)

var initCmd = cli.NewInitCommand("msgboxctl", mkConfigOrExit)

func init() {
	RootCmd.AddCommand(initCmd)
	initCmd.Flags().StringP("dir", "d", ".",
		"Location of directory for storing generated files")
	initCmd.Flags().Bool("private", false,
		"Generate the proving and verifying keys of the private message box")
}

func mkConfigOrExit(cmd *cobra.Command, args []string) error {
	dir := cmd.Flag("dir").Value.String()
	private, err := cmd.Flags().GetBool("private")
	if err != nil {
		return err
	}
	if err := mkSigningKey(dir, "owner"); err != nil {
		return fmt.Errorf("Couldn't create the owner key: %v", err)
	}
	if private {
		if err := mkAttestKeys(dir); err != nil {
			return fmt.Errorf("Couldn't create the proving keys: %v", err)
		}
	}
	if err := mkConfig(dir, private); err != nil {
		return fmt.Errorf("Couldn't save config: %v", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path.Join(dir, "config.toml"))
	return nil
}

func mkConfig(dir string, private bool) error {
	file := path.Join(dir, "config.toml")
	logger := &application.LoggerConfig{
		EnableStacktrace: true,
		Environment:      "development",
		Path:             "msgboxctl.log",
	}
	conf := application.NewConfig(file, logger)
	conf.OwnerKeyPath = "owner.priv"
	if private {
		conf.ProvingKeyPath = "attest.pk"
		conf.VerifyingKeyPath = "attest.vk"
	}
	return application.SaveConfig(conf)
}

func mkSigningKey(dir, name string) error {
	sk, err := sign.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}
	pk, _ := sk.Public()
	if err := utils.WriteFile(path.Join(dir, name+".priv"), sk, 0600); err != nil {
		return err
	}
	return utils.WriteFile(path.Join(dir, name+".pub"), pk, 0644)
}

func mkAttestKeys(dir string) error {
	engine, err := attest.NewGroth16()
	if err != nil {
		return err
	}
	var pk, vk bytes.Buffer
	if err := engine.Save(&pk, &vk); err != nil {
		return err
	}
	if err := utils.WriteFile(path.Join(dir, "attest.pk"), pk.Bytes(), 0600); err != nil {
		return err
	}
	return utils.WriteFile(path.Join(dir, "attest.vk"), vk.Bytes(), 0644)
}
