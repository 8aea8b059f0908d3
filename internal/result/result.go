// Package result defines the error taxonomy shared by the simulation kernel.
//
// Every failure carries a [Code] whose integer value matches the flat result
// codes exposed to foreign callers: 0 is success and negative values name a
// specific failure kind. Use [CodeOf] to recover that integer from any error
// chain.
package result

import (
	"errors"
	"fmt"
)

// Code is a machine-readable result code.
type Code int

const (
	Success                    Code = 0
	Generic                    Code = -1
	InvalidArgs                Code = -2
	InvalidOperation           Code = -3
	OutOfMemory                Code = -4
	OutOfRange                 Code = -5
	AccessDenied               Code = -6
	DoesNotExist               Code = -7
	AlreadyExists              Code = -8
	TooManyOpenFiles           Code = -9
	InvalidFile                Code = -10
	TooBig                     Code = -11
	PathTooLong                Code = -12
	NameTooLong                Code = -13
	NotDirectory               Code = -14
	IsDirectory                Code = -15
	DirectoryNotEmpty          Code = -16
	EndOfFile                  Code = -17
	NoSpace                    Code = -18
	Busy                       Code = -19
	IOError                    Code = -20
	Interrupt                  Code = -21
	Unavailable                Code = -22
	AlreadyInUse               Code = -23
	BadAddress                 Code = -24
	BadSeek                    Code = -25
	BadPipe                    Code = -26
	Deadlock                   Code = -27
	TooManyLinks               Code = -28
	NotImplemented             Code = -29
	NoMessage                  Code = -30
	BadMessage                 Code = -31
	NoDataAvailable            Code = -32
	InvalidData                Code = -33
	Timeout                    Code = -34
	NoNetwork                  Code = -35
	NotUnique                  Code = -36
	NotSocket                  Code = -37
	NoAddress                  Code = -38
	BadProtocol                Code = -39
	ProtocolUnavailable        Code = -40
	ProtocolNotSupported       Code = -41
	ProtocolFamilyNotSupported Code = -42
	AddressFamilyNotSupported  Code = -43
	SocketNotSupported         Code = -44
	ConnectionReset            Code = -45
	AlreadyConnected           Code = -46
	NotConnected               Code = -47
	ConnectionRefused          Code = -48
	NoHost                     Code = -49
	InProgress                 Code = -50
	Cancelled                  Code = -51
	MemoryAlreadyMapped        Code = -52
	AtEnd                      Code = -53
)

var codeNames = map[Code]string{
	Success:          "success",
	Generic:          "error",
	InvalidArgs:      "invalid arguments",
	InvalidOperation: "invalid operation",
	OutOfMemory:      "out of memory",
	OutOfRange:       "out of range",
	DoesNotExist:     "does not exist",
	AlreadyExists:    "already exists",
	Busy:             "busy",
	NotImplemented:   "not implemented",
	InvalidData:      "invalid data",
	Timeout:          "timeout",
	Cancelled:        "cancelled",
	AtEnd:            "at end",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("result(%d)", int(c))
}

// Sentinels for errors.Is checks. Matching is by code, so any *Error with the
// same code satisfies errors.Is against these.
var (
	ErrGeneric          = New(Generic, "fixedstep: error")
	ErrInvalidArgs      = New(InvalidArgs, "fixedstep: invalid arguments")
	ErrInvalidOperation = New(InvalidOperation, "fixedstep: invalid operation")
	ErrOutOfMemory      = New(OutOfMemory, "fixedstep: out of memory")
	ErrDoesNotExist     = New(DoesNotExist, "fixedstep: does not exist")
	ErrAlreadyExists    = New(AlreadyExists, "fixedstep: already exists")
	ErrNotImplemented   = New(NotImplemented, "fixedstep: not implemented")
)

// Error is a failure tagged with a result code.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates an error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Errorf creates an error with a code and a formatted message.
func Errorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error with a code that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf returns the integer result code for err: Success for nil, the code of
// the first *Error in the chain, or Generic for any other error.
func CodeOf(err error) Code {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Generic
}
