package bxcan

import "errors"

var (
	// ErrBadControllerNumber is returned by Create when Config.Number names
	// a controller this driver does not support (only controller 1).
	ErrBadControllerNumber = errors.New("bxcan: unsupported controller number")

	// ErrControllerInUse is returned by Create when a Controller for the
	// requested number is already live.
	ErrControllerInUse = errors.New("bxcan: controller already constructed")

	// ErrClockMismatch is returned by Create when the CPU core clock is not
	// the 72MHz this bit-timing table assumes.
	ErrClockMismatch = errors.New("bxcan: cpu clock is not 72MHz")

	// ErrInitTimeout is returned by Create when the peripheral does not
	// acknowledge entry into, or exit from, initialization mode within the
	// bounded spin.
	ErrInitTimeout = errors.New("bxcan: init acknowledge handshake timed out")

	// ErrInterruptSetup is returned by Create when registering an ISR with
	// the interrupt controller fails.
	ErrInterruptSetup = errors.New("bxcan: interrupt resource registration failed")
)
