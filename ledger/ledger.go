package ledger

import (
	"bytes"
	"sync"

	"github.com/msgbox-sys/msgbox-go/application"
	"github.com/msgbox-sys/msgbox-go/crypto/sign"
	"github.com/msgbox-sys/msgbox-go/merkletree"
	"github.com/msgbox-sys/msgbox-go/protocol"
	"github.com/msgbox-sys/msgbox-go/protocol/allowlist"
	"github.com/msgbox-sys/msgbox-go/protocol/attest"
	"github.com/msgbox-sys/msgbox-go/protocol/messagebox"
	"github.com/msgbox-sys/msgbox-go/protocol/replay"
	"github.com/msgbox-sys/msgbox-go/protocol/validator"
	"github.com/msgbox-sys/msgbox-go/storage/kv"
)

// Config holds the parameters of a Ledger.
type Config struct {
	// Owner may add addresses to the allow-list.
	Owner sign.PublicKey
	// Capacity bounds the allow-list. Zero selects
	// allowlist.DefaultCapacity.
	Capacity uint64
	// Verifier, if set, selects the private message box:
	// messages are accepted through proofs checked by Verifier,
	// and processMessage is disabled.
	Verifier attest.Verifier
}

// Snapshot is the committed state of all protocols.
type Snapshot struct {
	Allowlist  allowlist.State
	Messages   allowlist.MessageState
	Numeric    validator.NumericState
	MessageBox messagebox.State
}

// Status reports the outcome of one transaction of a block.
type Status struct {
	Tx     merkletree.Hash    `json:"tx"`
	Method string             `json:"method"`
	Code   protocol.ErrorCode `json:"code"`
	// Note carries the validation result of obtain, which
	// succeeds whether or not the message was valid.
	Note string `json:"note,omitempty"`
}

// A Block is the outcome of ProduceBlock.
type Block struct {
	Height   uint64
	Statuses []Status
	Snapshot Snapshot
}

// A Ledger orders transactions into blocks and applies them.
// It is safe for concurrent use.
type Ledger struct {
	sync.Mutex
	owner   sign.PublicKey
	gate    *allowlist.Gate
	private *messagebox.Private
	logger  *application.Logger
	db      kv.DB

	height   uint64
	snapshot Snapshot
	eligible *merkletree.Map
	messages *merkletree.Map
	agentMap *merkletree.Map
	agents   map[protocol.AgentID]protocol.AgentDetails
	txInfo   map[protocol.AgentID]messagebox.TxInfo
	nonces   replay.Keyed
	pending  []*Tx
}

// New constructs a Ledger. If db is not nil, the ledger reloads the
// state stored in db, if any, and stores its state there after every
// block. The caller keeps ownership of db. A nil logger discards
// all logs.
func New(conf *Config, db kv.DB, logger *application.Logger) (*Ledger, error) {
	if logger == nil {
		logger = application.NewNopLogger()
	}
	l := &Ledger{
		owner:  conf.Owner,
		gate:   allowlist.New(conf.Capacity),
		logger: logger,
		db:     db,
		snapshot: Snapshot{
			Allowlist:  allowlist.NewState(),
			Messages:   allowlist.NewMessageState(),
			MessageBox: messagebox.NewState(),
		},
		eligible: merkletree.NewMap(),
		messages: merkletree.NewMap(),
		agentMap: merkletree.NewMap(),
		agents:   make(map[protocol.AgentID]protocol.AgentDetails),
		txInfo:   make(map[protocol.AgentID]messagebox.TxInfo),
		nonces:   replay.NewKeyed(),
	}
	if conf.Verifier != nil {
		l.private = messagebox.NewPrivate(conf.Verifier)
	}
	if db != nil {
		if err := l.load(); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Height returns the height of the next block.
func (l *Ledger) Height() uint64 {
	l.Lock()
	defer l.Unlock()
	return l.height
}

// Snapshot returns the committed state.
func (l *Ledger) Snapshot() Snapshot {
	l.Lock()
	defer l.Unlock()
	return l.snapshot
}

// Agent returns the record of agent id, the zero record if
// there is no such agent.
func (l *Ledger) Agent(id protocol.AgentID) protocol.AgentDetails {
	l.Lock()
	defer l.Unlock()
	return l.agents[id]
}

// AgentRecord returns the record of agent id with its witness
// against the current snapshot.
func (l *Ledger) AgentRecord(id protocol.AgentID) messagebox.Record {
	l.Lock()
	defer l.Unlock()
	return l.record(id)
}

// TxInfo returns the transaction that last updated agent id
// through a private message.
func (l *Ledger) TxInfo(id protocol.AgentID) (messagebox.TxInfo, bool) {
	l.Lock()
	defer l.Unlock()
	info, ok := l.txInfo[id]
	return info, ok
}

// Nonce returns the last nonce accepted from pk.
func (l *Ledger) Nonce(pk sign.PublicKey) uint64 {
	l.Lock()
	defer l.Unlock()
	return uint64(l.nonces.Last(protocol.AddressKey(pk)))
}

// Eligible reports whether pk is listed in the allow-list.
func (l *Ledger) Eligible(pk sign.PublicKey) bool {
	l.Lock()
	defer l.Unlock()
	return l.eligible.Get(protocol.AddressKey(pk)) == allowlist.Present
}

// Deposited returns the message deposited by pk, if any.
func (l *Ledger) Deposited(pk sign.PublicKey) (uint64, bool) {
	l.Lock()
	defer l.Unlock()
	v := l.messages.Get(protocol.AddressKey(pk))
	if v.IsZero() {
		return 0, false
	}
	return v.Uint64(), true
}

// PopulateGenesis creates agent id with the given record, outside of
// any transaction. Like the populate transaction, it is only allowed
// before the first block is produced.
func (l *Ledger) PopulateGenesis(id protocol.AgentID, details protocol.AgentDetails) error {
	l.Lock()
	defer l.Unlock()
	st, err := messagebox.PopulateAgent(l.snapshot.MessageBox, l.height, id, l.record(id), details)
	if err != nil {
		return err
	}
	l.setAgent(id, details, st)
	return nil
}

// Submit queues tx for the next block.
func (l *Ledger) Submit(tx *Tx) {
	l.Lock()
	defer l.Unlock()
	l.pending = append(l.pending, tx)
}

// ProduceBlock applies the queued transactions in submission order
// and returns their statuses. The state is then stored, if the ledger
// has a database. A storage error is returned along with the block:
// the block stays applied in memory, and the next successful store
// writes it.
func (l *Ledger) ProduceBlock() (*Block, error) {
	l.Lock()
	defer l.Unlock()

	block := &Block{Height: l.height}
	for _, tx := range l.pending {
		note, err := l.apply(tx)
		status := Status{
			Tx:     tx.Hash(),
			Method: tx.Method,
			Code:   protocol.CodeOf(err),
			Note:   note,
		}
		l.logger.Debug("Transaction applied",
			"height", l.height,
			"tx", status.Tx.String(),
			"sender", protocol.AddressKey(tx.Sender).String(),
			"nonce", tx.Nonce,
			"method", tx.Method,
			"code", int(status.Code))
		if err != nil {
			l.logger.Warn("Transaction rejected",
				"height", l.height,
				"tx", status.Tx.String(),
				"method", tx.Method,
				"code", int(status.Code),
				"error", err.Error())
		}
		block.Statuses = append(block.Statuses, status)
	}
	l.pending = nil
	block.Snapshot = l.snapshot
	l.height++

	if l.db != nil {
		if err := l.store(); err != nil {
			l.logger.Error("Cannot store the ledger", "height", block.Height, "error", err.Error())
			return block, err
		}
	}
	l.logger.Info("Block produced", "height", block.Height, "txs", len(block.Statuses))
	return block, nil
}

func (l *Ledger) isOwner(pk sign.PublicKey) bool {
	return len(l.owner) != 0 && bytes.Equal(pk, l.owner)
}

func (l *Ledger) record(id protocol.AgentID) messagebox.Record {
	return messagebox.Record{
		Details: l.agents[id],
		Witness: l.agentMap.Witness(protocol.AgentKey(id)),
	}
}

func (l *Ledger) setAgent(id protocol.AgentID, details protocol.AgentDetails, st messagebox.State) {
	l.agents[id] = details
	l.agentMap.Set(protocol.AgentKey(id), details.Value())
	l.snapshot.MessageBox = st
	mustMatch(st.AgentsRoot, l.agentMap)
}

// mustMatch panics if the committed root and the map holder diverge,
// which would mean the transition and the holder disagree on the
// tree layout.
func mustMatch(root merkletree.Hash, m *merkletree.Map) {
	if root != m.Root() {
		panic(merkletree.ErrCommitmentMismatch)
	}
}
