package catalog

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateYear(t *testing.T) {
	thisYear := fmt.Sprintf("%d", time.Now().Year())
	cases := []struct {
		year string
		ok   bool
	}{
		{"1949", true},
		{"1000", true},
		{thisYear, true},
		{" 1965 ", true},
		{"999", false},
		{"99", false},
		{fmt.Sprintf("%d", time.Now().Year()+1), false},
		{"abc", false},
		{"19x9", false},
		{"-100", false},
		{"", false},
		{"123456789", false},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("year=%q", tc.year), func(t *testing.T) {
			err := ValidateYear(tc.year)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidYear)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	got, err := ParseStatus("  Available ")
	require.NoError(t, err)
	assert.Equal(t, StatusAvailable, got)

	got, err = ParseStatus("CHECKED_OUT")
	require.NoError(t, err)
	assert.Equal(t, StatusCheckedOut, got)

	_, err = ParseStatus("lost")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestParseField(t *testing.T) {
	for _, value := range []string{"title", "Author", " YEAR "} {
		_, err := ParseField(value)
		assert.NoError(t, err, value)
	}
	_, err := ParseField("isbn")
	assert.ErrorIs(t, err, ErrInvalidField)
}
