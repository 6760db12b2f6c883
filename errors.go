package easel

import "errors"

// ErrClosed is returned by Engine operations after Close.
var ErrClosed = errors.New("easel: engine is closed")
