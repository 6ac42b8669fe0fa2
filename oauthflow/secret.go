package oauthflow

import "encoding/json"

const redacted = "[REDACTED]"

// Secret holds credential material: the client secret, access tokens and
// refresh tokens. fmt verbs, JSON encoding and zerolog fields (Str, Stringer,
// Interface) all render it redacted; call Value to get the raw string.
type Secret string

// Value returns the raw secret.
func (s Secret) Value() string { return string(s) }

// IsZero reports whether no secret is set.
func (s Secret) IsZero() bool { return s == "" }

func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return redacted
}

func (s Secret) GoString() string { return s.String() }

// MarshalJSON encodes the redacted form, so structs holding a Secret are safe
// to log with zerolog's Interface or encode with encoding/json.
func (s Secret) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
