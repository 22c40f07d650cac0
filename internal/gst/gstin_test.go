package gst

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidGSTIN(t *testing.T) {
	cases := []struct {
		gstin string
		ok    bool
	}{
		{"24AABCT1234E1Z5", true},
		{"07AAACI1234F2Z9", true},
		{"24AABCT1234E1A5", false}, // missing literal Z
		{"24AABCT1234E0Z5", false}, // entity code 0 not allowed
		{"24aabct1234e1z5", false}, // lowercase
		{"24AABCT1234E1Z", false},  // 14 chars
		{"24AABCT1234E1Z55", false},
		{"", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, IsValidGSTIN(tc.gstin), tc.gstin)
	}
}

func TestIsValidStateCode(t *testing.T) {
	assert.True(t, IsValidStateCode("01"))
	assert.True(t, IsValidStateCode("24"))
	assert.True(t, IsValidStateCode("38"))
	assert.False(t, IsValidStateCode("00"))
	assert.False(t, IsValidStateCode("39"))
	assert.False(t, IsValidStateCode("99"))
	assert.False(t, IsValidStateCode("2"))
	assert.False(t, IsValidStateCode("2A"))
}

func TestStateCodeOf(t *testing.T) {
	assert.Equal(t, "24", StateCodeOf("24AABCT1234E1Z5"))
	assert.Equal(t, "", StateCodeOf("2"))
}
