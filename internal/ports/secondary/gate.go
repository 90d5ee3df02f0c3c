package secondary

import "context"

// AccessDecision is the result of a license/trial check.
type AccessDecision struct {
	HasAccess bool
	Reason    string
}

// AccessGate answers whether remote extraction may be used. A negative
// decision is a hard stop, never a retryable failure.
type AccessGate interface {
	Check(ctx context.Context) (AccessDecision, error)
}

// CredentialSource provides the opaque auth material for remote calls.
// Either value may be empty; unauthenticated (trial) requests are legal.
type CredentialSource interface {
	Credentials(ctx context.Context) (licenseKey, installationID string)
}
