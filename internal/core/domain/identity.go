package domain

import (
	"encoding/json"
	"strings"
)

// IdentitySource tags which provider produced a resolved identity.
type IdentitySource string

// Identity sources, in resolution priority order.
const (
	SourcePrimary  IdentitySource = "primary"
	SourceFallback IdentitySource = "fallback"
)

// Wire names of the typed identity fields. Everything else a provider sends
// travels through the Extra map untouched.
const (
	keyNumber           = "number"
	keyFullName         = "full_name"
	keyName             = "name"
	keySurname          = "surname"
	keyVerificationCode = "verification_code"
)

// IdentityFields is the common shape every provider response is normalized
// into. The typed fields drive the match decision; Extra keeps the remaining
// upstream attributes so they can be passed through to the caller unmodified.
type IdentityFields struct {
	Number           string
	FullName         string
	GivenName        string
	Surname          string
	VerificationCode string
	Extra            map[string]json.RawMessage
}

// ResolvedIdentity is the outcome of a successful resolution. It exists only
// when at least one provider succeeded; fields are never merged across
// providers.
type ResolvedIdentity struct {
	Source IdentitySource
	Fields IdentityFields
}

// MarshalJSON re-emits the upstream attributes plus the typed fields under
// their wire names. Empty typed fields are omitted.
func (f IdentityFields) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(f.Extra)+5)
	for k, v := range f.Extra {
		out[k] = v
	}

	set := func(key, value string) error {
		if value == "" {
			return nil
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return err
		}
		out[key] = raw
		return nil
	}

	for _, kv := range []struct{ key, value string }{
		{keyNumber, f.Number},
		{keyFullName, f.FullName},
		{keyName, f.GivenName},
		{keySurname, f.Surname},
		{keyVerificationCode, f.VerificationCode},
	} {
		if err := set(kv.key, kv.value); err != nil {
			return nil, err
		}
	}

	return json.Marshal(out)
}

// UnmarshalJSON extracts the typed fields and keeps every other attribute in
// Extra. Verification codes arrive as strings or numbers depending on the
// provider; both are normalized to a trimmed string.
func (f *IdentityFields) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	f.Number = takeString(raw, keyNumber)
	f.FullName = takeString(raw, keyFullName)
	f.GivenName = takeString(raw, keyName)
	f.Surname = takeString(raw, keySurname)
	f.VerificationCode = takeScalar(raw, keyVerificationCode)

	if len(raw) > 0 {
		f.Extra = raw
	} else {
		f.Extra = nil
	}
	return nil
}

func takeString(raw map[string]json.RawMessage, key string) string {
	v, ok := raw[key]
	if !ok {
		return ""
	}
	delete(raw, key)
	var s *string
	if err := json.Unmarshal(v, &s); err != nil || s == nil {
		return ""
	}
	return *s
}

// takeScalar accepts string or numeric JSON values and renders both as a
// trimmed string.
func takeScalar(raw map[string]json.RawMessage, key string) string {
	v, ok := raw[key]
	if !ok {
		return ""
	}
	delete(raw, key)

	var s *string
	if err := json.Unmarshal(v, &s); err == nil {
		if s == nil {
			return ""
		}
		return strings.TrimSpace(*s)
	}

	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		return n.String()
	}
	return ""
}
