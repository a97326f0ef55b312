package txdecode

import "errors"

// ErrDecode indicates a malformed transaction envelope: the input is invalid,
// not transient, so decoding is never retried. The wrapped chain carries the
// underlying parse failure reason.
var ErrDecode = errors.New("transaction decode failed")

// ErrInvalidInput indicates a missing or ill-typed request field, surfaced
// before any decoding work is attempted.
var ErrInvalidInput = errors.New("invalid input")
