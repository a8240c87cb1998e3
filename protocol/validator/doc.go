/*
Package validator implements the pure validity predicates of msgbox.

Flags

A flag bitset carries six flags, flag 1 being the most significant
(mask 32) and flag 6 the least significant (mask 1). Bitsets not
greater than 32 are rejected before any flag is read. The decoded
flags must then satisfy three structure rules:
if flag 1 is set, flags 2 to 6 are clear;
if flag 1 is set, flag 3 is set;
if flag 4 is set, flags 5 and 6 are clear.
The first two rules cannot hold together, so any bitset with flag 1
set is rejected.

Numeric messages

A numeric message is valid when its fields are in range, its checksum
matches and y exceeds x. Agent 0 bypasses the field checks, as does a
message whose id does not exceed the previously submitted id.
Obtain advances the high-water mark on a valid message with a new
highest id.

Text messages

A text message is valid when its body is exactly 12 characters, its
security code matches the stored one and its number exceeds the
last accepted number of the agent.
*/
package validator
