package domain

import (
	"fmt"
	"strings"
)

// NotFoundError reports an unresolvable beach name. It carries the full set
// of valid keys so the caller can present alternatives instead of a dead end.
type NotFoundError struct {
	Name      string
	ValidKeys []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown beach %q: valid beaches are %s", e.Name, strings.Join(e.ValidKeys, ", "))
}

// MalformedPayloadError reports an upstream observation payload missing a
// required field. Recoverable only by retrying the upstream fetch; the
// normalizer never guesses a missing value.
type MalformedPayloadError struct {
	Field string
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("observation payload missing required field %q", e.Field)
}

// UpstreamUnavailableError reports a failed fetch from the observation
// provider: a transport error or a non-success HTTP status.
type UpstreamUnavailableError struct {
	Status int
	Err    error
}

func (e *UpstreamUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("weather provider unavailable: %v", e.Err)
	}
	return fmt.Sprintf("weather provider unavailable: status %d", e.Status)
}

func (e *UpstreamUnavailableError) Unwrap() error { return e.Err }
