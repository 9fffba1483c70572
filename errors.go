package flock

import (
	"github.com/256dpi/xo"
)

// ErrValidation is returned by composers if the local input is invalid. The
// action is blocked before any network call is made.
var ErrValidation = xo.BF("validation failed")

// ErrUpload is returned if a blob transfer failed. The dependent record write
// is aborted.
var ErrUpload = xo.BF("upload failed")

// ErrWrite is returned if a record write failed.
var ErrWrite = xo.BF("write failed")

// ErrFetch is returned if the initial fetch of a subscription failed.
var ErrFetch = xo.BF("fetch failed")

// ErrNoSession is returned if an operation requires an authenticated session.
var ErrNoSession = xo.BF("no session")
