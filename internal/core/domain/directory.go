package domain

// DirectoryStatus is the tag of the DirectoryMatch variant.
type DirectoryStatus string

// Directory lookup outcomes. Absence of a match is not an error, and an
// unavailable directory never fails the overall request.
const (
	DirectoryStatusMatched     DirectoryStatus = "matched"
	DirectoryStatusNotMatched  DirectoryStatus = "not_matched"
	DirectoryStatusUnavailable DirectoryStatus = "unavailable"
)

// DirectoryMatch is the result of searching the contact directory for a
// record correlated to an ID number.
type DirectoryMatch struct {
	Status        DirectoryStatus `json:"status"`
	MaskedContact string          `json:"maskedContact,omitempty"`
	Secret        *string         `json:"secret,omitempty"`
	Reason        string          `json:"reason,omitempty"`
}

// Matched reports whether a contact record was found.
func (m DirectoryMatch) Matched() bool {
	return m.Status == DirectoryStatusMatched
}

// DirectoryMatched builds the matched variant. An empty secret is normalized
// to absent.
func DirectoryMatched(maskedContact, secret string) DirectoryMatch {
	m := DirectoryMatch{Status: DirectoryStatusMatched, MaskedContact: maskedContact}
	if secret != "" {
		m.Secret = &secret
	}
	return m
}

// DirectoryNotMatched builds the not-matched variant.
func DirectoryNotMatched() DirectoryMatch {
	return DirectoryMatch{Status: DirectoryStatusNotMatched}
}

// DirectoryUnavailable builds the unavailable variant with the failure detail.
func DirectoryUnavailable(reason string) DirectoryMatch {
	return DirectoryMatch{Status: DirectoryStatusUnavailable, Reason: reason}
}
