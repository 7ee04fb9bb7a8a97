package domain

import (
	"errors"
	"fmt"
)

var (
	ErrIndexOutOfRange = errors.New("card index out of range for this hand")
	ErrRowNotAllowed   = errors.New("row is not a legal destination this turn")
	ErrNotSubmittable  = errors.New("placement is not complete and valid")
	ErrWrongPhase      = errors.New("operation not allowed in current phase")
	ErrUpstream        = errors.New("upstream game server failure")
)

// CapacityError reports an assignment that would overfill a row. It is a
// recoverable user-input condition: the ledger is left unchanged and the
// message is suitable for direct display.
type CapacityError struct {
	Row   Row
	Limit int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s row is full (holds %d)", e.Row, e.Limit)
}

// RejectedError carries a submission rejection from the game server. The
// message is the server's own wording and is redisplayed verbatim.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return "server rejected play: " + e.Message
}
