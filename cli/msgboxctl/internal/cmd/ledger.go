package cmd

import (
	"os"

	"github.com/pkg/errors"

	"github.com/msgbox-sys/msgbox-go/application"
	"github.com/msgbox-sys/msgbox-go/ledger"
	"github.com/msgbox-sys/msgbox-go/protocol/attest"
	"github.com/msgbox-sys/msgbox-go/storage/kv"
	"github.com/msgbox-sys/msgbox-go/storage/kv/leveldbkv"
)

// openLedger opens the ledger database named by conf and restores the
// ledger from it. The returned DB must be closed by the caller.
func openLedger(conf *application.Config, engine *attest.Groth16,
	logger *application.Logger) (*ledger.Ledger, kv.DB, error) {
	owner, ok := conf.OwnerKey().Public()
	if !ok {
		return nil, nil, errors.New("cannot derive the owner's public key")
	}
	db, err := leveldbkv.OpenDB(conf.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	lconf := &ledger.Config{
		Owner:    owner,
		Capacity: conf.Capacity,
	}
	if engine != nil {
		lconf.Verifier = engine
	}
	l, err := ledger.New(lconf, db, logger)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return l, db, nil
}

// loadEngine loads the proof system named by conf, or returns nil if
// the private message box is disabled.
func loadEngine(conf *application.Config) (*attest.Groth16, error) {
	if !conf.PrivateMessages() {
		return nil, nil
	}
	pk, err := os.Open(conf.ProvingKeyPath)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read the proving key")
	}
	defer pk.Close()
	vk, err := os.Open(conf.VerifyingKeyPath)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read the verifying key")
	}
	defer vk.Close()
	return attest.LoadGroth16(pk, vk)
}
