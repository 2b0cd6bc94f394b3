package editor

import "errors"

var (
	ErrUnknownEvent = errors.New("unknown event kind")
	ErrInconsistent = errors.New("control point bookkeeping is inconsistent")
)
