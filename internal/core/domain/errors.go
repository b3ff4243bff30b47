package domain

import "errors"

// ErrNoPageToken means the change cursor was never initialized.
// The /init endpoint has to run once before any pull can happen.
var ErrNoPageToken = errors.New("no pageToken stored; call /init first")
