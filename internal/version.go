// Package internal holds values shared by the msgbox executables.
package internal

// Version is the version of the msgbox executables.
const Version = "0.1.0"
