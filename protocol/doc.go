/*
Package protocol defines the shared vocabulary of the msgbox protocols:
agent records, message layouts, the keys under which they are stored
in the authenticated maps, and the error codes returned by every state
transition.

Error

This module defines the constants representing the types of errors
that a state transition may return. A failing transition leaves the
committed state untouched; the error code tells the submitter why.

Message

This module defines the fixed-width message layouts: the numeric
message checked by the validator, and the text message carrying an
agent identifier, a 12-character body and a 2-character security code.

Agent

This module defines the per-agent record (last accepted message number
and security code), its canonical serialization and the value under
which it is committed in the agent map.

The sub-packages implement the protocols themselves:
allowlist (gated membership and message deposit), validator (flags,
numeric and text validity), replay (monotonic message numbers),
messagebox (the authenticated per-agent mailbox, public and private)
and attest (detached validity proofs).
*/
package protocol
