package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KiwiAmenazante/DREMO/internal/core/domain"
)

func TestCanon(t *testing.T) {
	type testConfig struct {
		name     string
		input    string
		expected string
	}

	for _, tc := range []testConfig{
		{name: "diacritics case and whitespace", input: " José   Luís ", expected: "JOSE LUIS"},
		{name: "already canonical", input: "JOSE LUIS", expected: "JOSE LUIS"},
		{name: "tabs and newlines collapse", input: "maría\tdel\ncarmen", expected: "MARIA DEL CARMEN"},
		{name: "enye is preserved as a letter", input: "Muñoz", expected: "MUNOZ"},
		{name: "empty", input: "", expected: ""},
		{name: "whitespace only", input: "   ", expected: ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Canon(tc.input))
		})
	}
}

func TestCanon_EquivalentInputs(t *testing.T) {
	assert.Equal(t, Canon(" José   Luís "), Canon("JOSE LUIS"))
}

func TestEvaluate(t *testing.T) {
	resolved := func(name, surname, code string) domain.ResolvedIdentity {
		return domain.ResolvedIdentity{
			Source: domain.SourcePrimary,
			Fields: domain.IdentityFields{GivenName: name, Surname: surname, VerificationCode: code},
		}
	}
	asserted := func(name, surname, digit string) AssertedIdentity {
		return AssertedIdentity{IDNumber: "12345678", GivenName: name, Surname: surname, VerificationDigit: digit}
	}

	type expected struct {
		verdict      Verdict
		digitChecked bool
	}
	type testConfig struct {
		name      string
		asserted  AssertedIdentity
		resolved  domain.ResolvedIdentity
		directory domain.DirectoryMatch
		expected  expected
	}

	for _, tc := range []testConfig{
		{
			name:      "accents and casing do not break the match",
			asserted:  asserted("josé", "pérez gómez", ""),
			resolved:  resolved("JOSE", "PEREZ GOMEZ", ""),
			directory: domain.DirectoryNotMatched(),
			expected:  expected{verdict: VerdictConfirmedNoContact},
		},
		{
			name:      "name mismatch",
			asserted:  asserted("PEDRO", "PEREZ GOMEZ", ""),
			resolved:  resolved("JUAN", "PEREZ GOMEZ", ""),
			directory: domain.DirectoryMatched("12***@example.com", "XYZ"),
			expected:  expected{verdict: VerdictIdentityMismatch},
		},
		{
			name:      "empty resolved name never matches, even an empty assertion",
			asserted:  asserted("", "", ""),
			resolved:  resolved("", "", ""),
			directory: domain.DirectoryNotMatched(),
			expected:  expected{verdict: VerdictIdentityMismatch},
		},
		{
			name:      "missing digit is a soft pass",
			asserted:  asserted("JUAN", "PEREZ GOMEZ", "9"),
			resolved:  resolved("JUAN", "PEREZ GOMEZ", ""),
			directory: domain.DirectoryNotMatched(),
			expected:  expected{verdict: VerdictConfirmedNoContact, digitChecked: false},
		},
		{
			name:      "wrong digit fails when the record carries one",
			asserted:  asserted("JUAN", "PEREZ GOMEZ", "9"),
			resolved:  resolved("JUAN", "PEREZ GOMEZ", "3"),
			directory: domain.DirectoryMatched("12***@example.com", "XYZ"),
			expected:  expected{verdict: VerdictIdentityMismatch, digitChecked: true},
		},
		{
			name:      "right digit with directory match",
			asserted:  asserted("JUAN", "PEREZ GOMEZ", "3"),
			resolved:  resolved("JUAN", "PEREZ GOMEZ", "3"),
			directory: domain.DirectoryMatched("12***@example.com", "XYZ"),
			expected:  expected{verdict: VerdictConfirmedWithContact, digitChecked: true},
		},
		{
			name:      "unavailable directory counts as no contact",
			asserted:  asserted("JUAN", "PEREZ GOMEZ", ""),
			resolved:  resolved("JUAN", "PEREZ GOMEZ", ""),
			directory: domain.DirectoryUnavailable("not configured"),
			expected:  expected{verdict: VerdictConfirmedNoContact},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			eval := Evaluate(tc.asserted, tc.resolved, tc.directory)
			assert.Equal(t, tc.expected.verdict, eval.Verdict)
			assert.Equal(t, tc.expected.digitChecked, eval.DigitChecked)
			assert.Equal(t, tc.expected.verdict != VerdictIdentityMismatch, eval.Matched())
		})
	}
}

func TestEvaluate_PreservesDirectoryReason(t *testing.T) {
	eval := Evaluate(
		AssertedIdentity{GivenName: "JUAN", Surname: "PEREZ"},
		domain.ResolvedIdentity{Fields: domain.IdentityFields{GivenName: "JUAN", Surname: "PEREZ"}},
		domain.DirectoryUnavailable("sheets: quota exhausted"),
	)
	assert.Equal(t, VerdictConfirmedNoContact, eval.Verdict)
	assert.Equal(t, "sheets: quota exhausted", eval.DirectoryReason)
}

// Mirrors the reference walkthrough: matching names with an empty provider
// code and a matched directory entry confirm the identity with contact.
func TestEvaluate_ConfirmedWithContactScenario(t *testing.T) {
	eval := Evaluate(
		AssertedIdentity{IDNumber: "12345678", GivenName: "Juan", Surname: "Perez Gomez"},
		domain.ResolvedIdentity{
			Source: domain.SourcePrimary,
			Fields: domain.IdentityFields{GivenName: "JUAN", Surname: "PEREZ GOMEZ", VerificationCode: ""},
		},
		domain.DirectoryMatched("12***@example.com", "XYZ123"),
	)

	assert.Equal(t, VerdictConfirmedWithContact, eval.Verdict)
	assert.True(t, eval.NameMatched)
	assert.False(t, eval.DigitChecked)
}
