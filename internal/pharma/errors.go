// internal/pharma/errors.go
package pharma

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a business rule failure. Every rule violation is detected
// before any ledger write, so a returned Error always means the transaction
// left no state behind.
type Kind int

const (
	KindUnknown Kind = iota
	KindAuthorization
	KindNotFound
	KindConflict
	KindValidation
	KindState
)

// Message prefixes carried across the chaincode boundary. Contract errors
// travel to the gateway application as plain strings, so the kind is encoded
// at the front of the message and decoded on the other side.
var kindPrefixes = map[Kind]string{
	KindAuthorization: "AUTHORIZATION",
	KindNotFound:      "NOT_FOUND",
	KindConflict:      "CONFLICT",
	KindValidation:    "VALIDATION",
	KindState:         "STATE",
}

// Error is a classified business error raised by the pharmanet contracts.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if prefix, ok := kindPrefixes[e.Kind]; ok {
		return prefix + ": " + e.Message
	}
	return e.Message
}

// Errorf builds a classified error with a formatted message.
func Errorf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from an error. For errors that crossed a process
// boundary and arrive as plain strings, the message prefix is consulted.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}

	return KindFromMessage(err.Error())
}

// KindFromMessage scans a message for a taxonomy prefix. The peer wraps
// chaincode errors in its own endorsement error text, so the prefix may
// appear anywhere in the string, not only at the front.
func KindFromMessage(msg string) Kind {
	for kind, prefix := range kindPrefixes {
		if strings.Contains(msg, prefix+": ") {
			return kind
		}
	}
	return KindUnknown
}

// UserMessage strips the taxonomy prefix from a contract error message,
// returning the human-readable part.
func UserMessage(msg string) string {
	for _, prefix := range kindPrefixes {
		if idx := strings.Index(msg, prefix+": "); idx >= 0 {
			return msg[idx+len(prefix)+2:]
		}
	}
	return msg
}
