package service

import "errors"

// Error taxonomy surfaced to the transport layer. Handlers map these to HTTP
// statuses; anything unrecognized becomes a 500.
var (
	// ErrInvalidRequest covers missing or malformed input the client can fix.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidSignature means the payment callback failed HMAC verification.
	// Never retried, nothing written.
	ErrInvalidSignature = errors.New("invalid payment signature")
	// ErrPersistence means a local write failed after the remote gateway call
	// already succeeded. The remote order is orphaned; see checkout service.
	ErrPersistence = errors.New("failed to persist order")
)
