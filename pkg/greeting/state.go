// Package greeting implements the client side of the hello-world program:
// the greeting account's serialization schema, its seeded address
// derivation, the program instruction, and the end-to-end workflow that
// funds a payer, provisions the account, and invokes the program.
package greeting

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidStateData = errors.New("unexpected greeting account data")
	ErrMessageTooLong   = errors.New("message exceeds the account's fixed capacity")
)

// MessageCapacity is the fixed number of text bytes a Message account can
// hold. It is fixed at account creation time and cannot change afterwards.
const MessageCapacity = 12

// State is a fixed-layout value stored in a greeting account. The encoded
// length of a State is the same for every valid value, and must exactly
// match the storage allocated when the account was created.
type State interface {
	Marshal() ([]byte, error)
	Unmarshal(data []byte) error
	Size() int
	String() string
}

var (
	// CounterSize and MessageSize are computed from representative values so
	// that the allocated account storage and the wire encoding can never
	// disagree.
	CounterSize = mustEncodedSize(&Counter{})
	MessageSize = mustEncodedSize(&Message{Text: "Hello1234567"})
)

func mustEncodedSize(s State) int {
	b, err := s.Marshal()
	if err != nil {
		panic(err)
	}
	return len(b)
}

// Counter counts the number of times the account has been greeted.
//
// Layout (borsh):
//
//	(4) u32: counter
type Counter struct {
	Count uint32
}

func (obj *Counter) Size() int {
	return CounterSize
}

func (obj *Counter) Marshal() ([]byte, error) {
	data := make([]byte, 4)

	var offset int
	putUint32(data, obj.Count, &offset)

	return data, nil
}

func (obj *Counter) Unmarshal(data []byte) error {
	if len(data) != CounterSize {
		return ErrInvalidStateData
	}

	var offset int
	getUint32(data, &obj.Count, &offset)

	return nil
}

func (obj *Counter) String() string {
	return fmt.Sprintf("Counter{count=%d}", obj.Count)
}

// Message holds a short greeting text with a fixed capacity.
//
// Layout (borsh string, padded to capacity):
//
//	(4)  u32: text length
//	(12) text bytes, zero padded
type Message struct {
	Text string
}

func (obj *Message) Size() int {
	return MessageSize
}

func (obj *Message) Marshal() ([]byte, error) {
	if len(obj.Text) > MessageCapacity {
		return nil, ErrMessageTooLong
	}

	data := make([]byte, 4+MessageCapacity)

	var offset int
	putUint32(data, uint32(len(obj.Text)), &offset)
	putFixedString(data, obj.Text, MessageCapacity, &offset)

	return data, nil
}

func (obj *Message) Unmarshal(data []byte) error {
	if len(data) != MessageSize {
		return ErrInvalidStateData
	}

	var offset int
	var length uint32
	getUint32(data, &length, &offset)
	if length > MessageCapacity {
		return ErrInvalidStateData
	}

	obj.Text = string(data[offset : offset+int(length)])

	return nil
}

func (obj *Message) String() string {
	return fmt.Sprintf("Message{text=%s}", obj.Text)
}
