package verification

import (
	"strings"

	"github.com/KiwiAmenazante/DREMO/internal/core/domain"
)

// Verdict is the outcome of comparing asserted against resolved identity
// data, combined with directory presence.
type Verdict string

// Possible verdicts.
const (
	VerdictIdentityMismatch     Verdict = "identity_mismatch"
	VerdictConfirmedNoContact   Verdict = "identity_confirmed_no_contact"
	VerdictConfirmedWithContact Verdict = "identity_confirmed_with_contact"
)

// AssertedIdentity is what the user typed into the form. It never leaves the
// client; only the ID number travels to the server.
type AssertedIdentity struct {
	IDNumber          string
	GivenName         string
	Surname           string
	VerificationDigit string
}

// Evaluation is the full comparison outcome. DigitChecked is false when the
// resolved record carried no verification code, so callers can disclose that
// the digit could not be verified.
type Evaluation struct {
	Verdict         Verdict
	NameMatched     bool
	DigitChecked    bool
	DigitMatched    bool
	DirectoryReason string
}

// Matched reports whether the identity as a whole was confirmed.
func (e Evaluation) Matched() bool {
	return e.Verdict != VerdictIdentityMismatch
}

// Evaluate compares the asserted identity with the resolved record. Names
// match only when both canonicalized resolved values are non-empty and equal
// to the canonicalized assertions. The verification digit is a soft check: a
// record without a code passes vacuously. Directory unavailability counts as
// "no contact" but its reason is preserved for display.
func Evaluate(asserted AssertedIdentity, resolved domain.ResolvedIdentity, directory domain.DirectoryMatch) Evaluation {
	resolvedName := Canon(resolved.Fields.GivenName)
	resolvedSurname := Canon(resolved.Fields.Surname)

	nameMatched := resolvedName != "" && resolvedSurname != "" &&
		resolvedName == Canon(asserted.GivenName) &&
		resolvedSurname == Canon(asserted.Surname)

	code := strings.TrimSpace(resolved.Fields.VerificationCode)
	digitChecked := code != ""
	digitMatched := !digitChecked || code == strings.TrimSpace(asserted.VerificationDigit)

	eval := Evaluation{
		NameMatched:     nameMatched,
		DigitChecked:    digitChecked,
		DigitMatched:    digitMatched,
		DirectoryReason: directory.Reason,
	}

	switch {
	case !nameMatched || !digitMatched:
		eval.Verdict = VerdictIdentityMismatch
	case directory.Matched():
		eval.Verdict = VerdictConfirmedWithContact
	default:
		eval.Verdict = VerdictConfirmedNoContact
	}
	return eval
}
