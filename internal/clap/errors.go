package clap

import "errors"

// ErrStopped is returned by Start when Stop was called before the source
// finished opening.
var ErrStopped = errors.New("clap: detector stopped during start")
