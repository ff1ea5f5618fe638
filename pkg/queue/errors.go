package queue

import "github.com/pkg/errors"

var (
	ErrInvalidCapacity = errors.New("capacity must be greater than 0")
	ErrClosed          = errors.New("queue is closed")
	ErrStreamEnded     = errors.New("end of stream already sent")
)
