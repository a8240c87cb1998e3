/*
Package application contains the pieces shared by msgbox executables.

Config

This module implements the TOML configuration of a msgbox ledger:
the database location, the owner's signing key, the optional Groth16
keys enabling private messages, the allow-list capacity and the
genesis agent whitelist.

Logger

This module implements a generic logging system that can be used by any
msgbox application/executable.
*/
package application
