package hwpv5

import "errors"

// Sentinel error kinds, each a terminal outcome of the whole extraction
// except MalformedRecord, which is scoped to the single section it occurs
// in (see document.go), and Truncated when it comes from a record payload,
// which ends that section early without an error (see section.go). Check
// with errors.Is.
var (
	// ErrNotHWP5 is returned when the FileHeader signature doesn't match.
	ErrNotHWP5 = errors.New("hwpv5: not an HWP 5.x document")
	// ErrEncrypted is returned when the password-protected flag is set.
	ErrEncrypted = errors.New("hwpv5: document is password-protected")
	// ErrTruncated is returned when a stream ends mid-header or mid-payload
	// in a way the record reader cannot tolerate.
	ErrTruncated = errors.New("hwpv5: stream truncated")
	// ErrDecodeLimit is returned when decompression exceeds the configured
	// expansion ratio.
	ErrDecodeLimit = errors.New("hwpv5: decompression exceeded expansion limit")
	// ErrMalformedRecord is returned when an extended-size record declares
	// a payload length exceeding the remaining stream.
	ErrMalformedRecord = errors.New("hwpv5: malformed record")
	// ErrIO wraps underlying container/stream read failures.
	ErrIO = errors.New("hwpv5: container read failed")
)
