/*
Package merkletree implements a fixed-depth sparse Merkle map and the
witnesses used to authenticate reads and writes against its root.

Sparse Merkle Map

The map associates 256-bit keys with 256-bit values. Every key selects
one leaf of a complete binary tree of depth 256, reading the key's bits
from MSB to LSB (0 goes left, 1 goes right). Absent keys hold the
sentinel value ZeroHash, so a freshly created map has the same root as
any other empty map (see EmptyRoot). Only leaves holding a non-sentinel
value, and the interior nodes on their paths, are materialized.

Witnesses

A Witness carries a key and the 256 sibling hashes on the path from the
leaf to the root. Given a claimed leaf value, ComputeRootAndKey folds the
siblings into a candidate root. A party holding nothing but a root (a
commitment) can therefore check membership with VerifyMembership, and
derive the root that results from replacing the leaf with
VerifyAndUpdate. The siblings of a key do not depend on the key's own
leaf, so the witness used to check the old value also yields the new root.

The hash operations are provided by our crypto package
(see https://godoc.org/github.com/msgbox-sys/msgbox-go/crypto).
*/
package merkletree
