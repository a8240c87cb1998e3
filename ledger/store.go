package ledger

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/msgbox-sys/msgbox-go/merkletree"
	"github.com/msgbox-sys/msgbox-go/protocol"
	"github.com/msgbox-sys/msgbox-go/protocol/messagebox"
	"github.com/msgbox-sys/msgbox-go/protocol/replay"
)

const (
	eligiblePrefix = 'E'
	messagesPrefix = 'M'
)

var stateKey = []byte{'S'}

// storedState is the part of the ledger stored as a single JSON value.
// The allow-list and deposited messages maps are stored leaf by leaf;
// the agent map is rebuilt from the agent records.
type storedState struct {
	Height   uint64
	Snapshot Snapshot
	Agents   map[protocol.AgentID]protocol.AgentDetails
	TxInfo   map[protocol.AgentID]messagebox.TxInfo
	Nonces   map[merkletree.Hash]protocol.MessageNumber
}

func (l *Ledger) store() error {
	buf, err := json.Marshal(&storedState{
		Height:   l.height,
		Snapshot: l.snapshot,
		Agents:   l.agents,
		TxInfo:   l.txInfo,
		Nonces:   l.nonces.Entries(),
	})
	if err != nil {
		return errors.Wrap(err, "ledger: cannot encode the state")
	}

	wb := l.db.NewBatch()
	if err := merkletree.StoreMap(l.db, wb, eligiblePrefix, l.eligible); err != nil {
		return errors.Wrap(err, "ledger: cannot store the allow-list")
	}
	if err := merkletree.StoreMap(l.db, wb, messagesPrefix, l.messages); err != nil {
		return errors.Wrap(err, "ledger: cannot store the messages")
	}
	wb.Put(stateKey, buf)
	return errors.Wrap(l.db.Write(wb), "ledger: cannot write the state")
}

func (l *Ledger) load() error {
	buf, err := l.db.Get(stateKey)
	if err == l.db.ErrNotFound() {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "ledger: cannot read the state")
	}
	var st storedState
	if err := json.Unmarshal(buf, &st); err != nil {
		return errors.Wrap(err, "ledger: cannot decode the state")
	}

	eligible, err := merkletree.LoadMap(l.db, eligiblePrefix)
	if err != nil {
		return errors.Wrap(err, "ledger: cannot load the allow-list")
	}
	messages, err := merkletree.LoadMap(l.db, messagesPrefix)
	if err != nil {
		return errors.Wrap(err, "ledger: cannot load the messages")
	}
	agentMap := merkletree.NewMap()
	for id, d := range st.Agents {
		agentMap.Set(protocol.AgentKey(id), d.Value())
	}

	if eligible.Root() != st.Snapshot.Allowlist.Root ||
		messages.Root() != st.Snapshot.Messages.Root ||
		agentMap.Root() != st.Snapshot.MessageBox.AgentsRoot {
		return errors.Wrap(merkletree.ErrCommitmentMismatch, "ledger: stored maps do not match the snapshot")
	}

	l.height = st.Height
	l.snapshot = st.Snapshot
	l.eligible = eligible
	l.messages = messages
	l.agentMap = agentMap
	if st.Agents != nil {
		l.agents = st.Agents
	}
	if st.TxInfo != nil {
		l.txInfo = st.TxInfo
	}
	l.nonces = replay.KeyedFrom(st.Nonces)
	return nil
}
