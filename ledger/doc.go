/*
Package ledger is a reference ledger driving the msgbox protocols.

It plays the part of the surrounding chain: it authenticates signed
transactions, orders them into blocks, holds the full authenticated
maps from which witnesses are produced, and applies each transaction
through the pure transitions of the protocol packages. A failing
transaction is reported in its block's statuses and leaves the
committed snapshot untouched.

Transactions

A Tx names a method and carries a JSON payload. It is signed by its
sender with ed25519 over the method, the nonce, the sender and the
payload. Nonces are per sender and must strictly increase; the first
nonce is 1. A nonce is consumed as soon as the signature checks out,
whether or not the method then succeeds.

Persistence

When constructed with a kv.DB, the ledger stores its snapshot, its
maps and its bookkeeping after every block, and reloads them on the
next start.
*/
package ledger
