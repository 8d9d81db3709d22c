package listener

import "errors"

var (
	// ErrUnknownCapability is returned when a capability was never declared with NewCapability.
	ErrUnknownCapability = errors.New("unknown listener capability")

	// ErrInvalidEvent is returned when sending a nil event or an event without a name.
	ErrInvalidEvent = errors.New("invalid event")

	// ErrUnhandledEvent is returned by a dispatch function when the recipient has no handler for the event.
	ErrUnhandledEvent = errors.New("no handler for event")

	// ErrUnsupportedRecipient is returned when a handler does not implement the capability's listener interface.
	ErrUnsupportedRecipient = errors.New("recipient does not support capability")

	// ErrNilHandler is returned when creating an actor without a handler.
	ErrNilHandler = errors.New("listener handler is nil")

	// ErrNilRecipient is returned when registering a nil recipient.
	ErrNilRecipient = errors.New("recipient is nil")

	// ErrAlreadyRegistered is returned when a recipient with the same ID is already registered.
	ErrAlreadyRegistered = errors.New("recipient already registered")

	// ErrMailboxClosed is returned when telling an actor that has been stopped.
	ErrMailboxClosed = errors.New("mailbox closed")

	// ErrMailboxFull is returned when a bounded mailbox has reached its capacity.
	ErrMailboxFull = errors.New("mailbox is full")

	// ErrActorAlreadyStarted is returned when attempting to start an actor that is already running.
	ErrActorAlreadyStarted = errors.New("actor already started")

	// ErrActorNotStarted is returned when attempting to stop an actor that is not running.
	ErrActorNotStarted = errors.New("actor not started")
)
