package store

import "errors"

var (
	// ErrOpen indicates the backend failed to initialize a database.
	ErrOpen = errors.New("failed to open database")
	// ErrDisconnect indicates the underlying store failed mid-operation.
	ErrDisconnect = errors.New("data store disconnected")
	// ErrCodec indicates a record could not be encoded into a payload, or a
	// stored payload could not be decoded.
	ErrCodec = errors.New("payload codec failure")
	// ErrBadPostingKey indicates a scanned index key had a malformed
	// timestamp field. This is corruption; the query aborts.
	ErrBadPostingKey = errors.New("malformed posting key")
	// ErrFamilyNotFound indicates a declared index family is missing.
	ErrFamilyNotFound = errors.New("family not found")
	// ErrBatchAlreadyStarted indicates StartBatch was called with a batch
	// already open.
	ErrBatchAlreadyStarted = errors.New("batch already started")
	// ErrBatchNotStarted indicates CommitBatch was called with no batch
	// open.
	ErrBatchNotStarted = errors.New("batch not started")
	// ErrInvalidQueryRange is reserved for future range validation.
	ErrInvalidQueryRange = errors.New("invalid query range")
	// ErrReservedByte indicates user input carried one of the key-grammar
	// separators ('|' or ':').
	ErrReservedByte = errors.New("reserved byte in input")
)
