package protocol

import (
	"errors"
)

const (
	// TextLength is the number of characters of a message body.
	TextLength = 12
	// TextCapacity is the number of positions of the message text
	// container. Positions from TextLength on must be zero.
	TextCapacity = 16
)

// ErrBadTextLength indicates a message body that is not exactly
// TextLength characters long.
var ErrBadTextLength = errors.New("[msgbox] Message text must be 12 characters")

// ErrBadCodeLength indicates a security code that is not exactly
// 2 characters long.
var ErrBadCodeLength = errors.New("[msgbox] Security code must be 2 characters")

// AgentID identifies an agent of the message box.
type AgentID uint64

// MessageNumber is the sequence number of a message.
type MessageNumber uint64

// AgentCode is a 2-character security code.
type AgentCode [2]byte

// AgentCodeFromString converts s into an AgentCode.
func AgentCodeFromString(s string) (AgentCode, error) {
	var c AgentCode
	if len(s) != len(c) {
		return c, ErrBadCodeLength
	}
	copy(c[:], s)
	return c, nil
}

// IsZero reports whether c is the zero code, which no existing
// agent may hold.
func (c AgentCode) IsZero() bool {
	return c == AgentCode{}
}

func (c AgentCode) String() string {
	return string(c[:])
}

// MarshalText implements encoding.TextMarshaler.
func (c AgentCode) MarshalText() ([]byte, error) {
	return c[:], nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *AgentCode) UnmarshalText(text []byte) error {
	code, err := AgentCodeFromString(string(text))
	if err != nil {
		return err
	}
	*c = code
	return nil
}

// MessageText is the fixed-capacity container of a message body.
type MessageText [TextCapacity]byte

// MessageTextFromString places the characters of s in a MessageText.
// s must be exactly TextLength characters long.
func MessageTextFromString(s string) (MessageText, error) {
	if len(s) != TextLength {
		return MessageText{}, ErrBadTextLength
	}
	return PadMessageText([]byte(s)), nil
}

// PadMessageText copies b into a MessageText, padding with zeros.
// Characters beyond TextCapacity are dropped.
func PadMessageText(b []byte) MessageText {
	var t MessageText
	copy(t[:], b)
	return t
}

// IsValid reports whether the text terminates exactly after
// TextLength characters: position TextLength-1 is set and
// position TextLength is zero.
func (t MessageText) IsValid() bool {
	return t[TextLength-1] != 0 && t[TextLength] == 0
}

// MarshalText implements encoding.TextMarshaler. Trailing zeros
// are dropped.
func (t MessageText) MarshalText() ([]byte, error) {
	n := len(t)
	for n > 0 && t[n-1] == 0 {
		n--
	}
	return append([]byte(nil), t[:n]...), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unlike
// MessageTextFromString it accepts any text that fits in the
// container, so that invalid messages can be represented.
func (t *MessageText) UnmarshalText(text []byte) error {
	if len(text) > TextCapacity {
		return ErrBadTextLength
	}
	*t = PadMessageText(text)
	return nil
}

func (t MessageText) String() string {
	n := 0
	for n < len(t) && t[n] != 0 {
		n++
	}
	return string(t[:n])
}

// MessageDetails is the payload of a text message.
type MessageDetails struct {
	AgentID      AgentID
	Text         MessageText
	SecurityCode AgentCode
}

// Message is a text message submitted to the message box.
type Message struct {
	MessageNumber MessageNumber
	Details       MessageDetails
}

// NumericMessage is a message checked by the numeric validator.
type NumericMessage struct {
	MessageNumber MessageNumber
	AgentID       uint64
	X             uint64
	Y             uint64
	Checksum      uint64
}
