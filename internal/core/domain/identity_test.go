package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityFields_UnmarshalJSON(t *testing.T) {
	type expected struct {
		number           string
		givenName        string
		surname          string
		verificationCode string
		extraKeys        []string
	}
	type testConfig struct {
		name     string
		input    string
		expected expected
	}

	for _, tc := range []testConfig{
		{
			name:  "typed fields plus passthrough extras",
			input: `{"number":"12345678","full_name":"JUAN PEREZ","name":"JUAN","surname":"PEREZ GOMEZ","verification_code":"3","department":"LIMA","ubigeo":"150101"}`,
			expected: expected{
				number:           "12345678",
				givenName:        "JUAN",
				surname:          "PEREZ GOMEZ",
				verificationCode: "3",
				extraKeys:        []string{"department", "ubigeo"},
			},
		},
		{
			name:  "numeric verification code becomes a string",
			input: `{"name":"JUAN","surname":"PEREZ","verification_code":3}`,
			expected: expected{
				givenName:        "JUAN",
				surname:          "PEREZ",
				verificationCode: "3",
			},
		},
		{
			name:  "null values read as empty",
			input: `{"number":null,"name":null,"surname":"PEREZ","verification_code":null}`,
			expected: expected{
				surname: "PEREZ",
			},
		},
		{
			name:     "empty object",
			input:    `{}`,
			expected: expected{},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var fields IdentityFields
			require.NoError(t, json.Unmarshal([]byte(tc.input), &fields))

			assert.Equal(t, tc.expected.number, fields.Number)
			assert.Equal(t, tc.expected.givenName, fields.GivenName)
			assert.Equal(t, tc.expected.surname, fields.Surname)
			assert.Equal(t, tc.expected.verificationCode, fields.VerificationCode)

			assert.Len(t, fields.Extra, len(tc.expected.extraKeys))
			for _, key := range tc.expected.extraKeys {
				assert.Contains(t, fields.Extra, key)
			}
		})
	}
}

func TestIdentityFields_MarshalJSON_PassesExtrasThrough(t *testing.T) {
	input := `{"name":"MARIA","surname":"LOPEZ","verification_code":7,"district":"MIRAFLORES","address":"AV LARCO 123"}`

	var fields IdentityFields
	require.NoError(t, json.Unmarshal([]byte(input), &fields))

	out, err := json.Marshal(fields)
	require.NoError(t, err)

	var roundTrip map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &roundTrip))

	assert.Equal(t, "MARIA", roundTrip["name"])
	assert.Equal(t, "LOPEZ", roundTrip["surname"])
	assert.Equal(t, "7", roundTrip["verification_code"])
	assert.Equal(t, "MIRAFLORES", roundTrip["district"])
	assert.Equal(t, "AV LARCO 123", roundTrip["address"])
}

func TestDirectoryMatched_NormalizesEmptySecret(t *testing.T) {
	withSecret := DirectoryMatched("ab***@example.com", "XYZ123")
	require.NotNil(t, withSecret.Secret)
	assert.Equal(t, "XYZ123", *withSecret.Secret)
	assert.True(t, withSecret.Matched())

	withoutSecret := DirectoryMatched("ab***@example.com", "")
	assert.Nil(t, withoutSecret.Secret)
	assert.True(t, withoutSecret.Matched())
}
