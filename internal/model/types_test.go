package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCity_Label verifies the "<name>, <state>" form used by every report.
func TestCity_Label(t *testing.T) {
	c := City{Name: "Chicago", State: "IL"}
	assert.Equal(t, "Chicago, IL", c.Label())
}

// TestCity_HasInterstate checks membership lookups, including the empty set.
func TestCity_HasInterstate(t *testing.T) {
	c := City{Interstates: []string{"I-90", "I-94"}}
	assert.True(t, c.HasInterstate("I-90"))
	assert.True(t, c.HasInterstate("I-94"))
	assert.False(t, c.HasInterstate("I-9"))
	assert.False(t, City{}.HasInterstate("I-90"))
}

// TestCity_UniqueInterstates verifies duplicates collapse to one label
// while first-seen order is preserved.
func TestCity_UniqueInterstates(t *testing.T) {
	c := City{Interstates: []string{"I-94", "I-90", "I-94", "I-55", "I-90"}}
	assert.Equal(t, []string{"I-94", "I-90", "I-55"}, c.UniqueInterstates())
	assert.Empty(t, City{}.UniqueInterstates())
}

// TestCity_NameMatches verifies base-city lookups are case-insensitive but exact.
func TestCity_NameMatches(t *testing.T) {
	c := City{Name: "Chicago"}
	assert.True(t, c.NameMatches("chicago"))
	assert.True(t, c.NameMatches("CHICAGO"))
	assert.False(t, c.NameMatches("Chicago Heights"))
	assert.False(t, c.NameMatches("Chi"))
}

// TestInterstateNumber verifies extraction of the numeric designation.
func TestInterstateNumber(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"I-5", 5, true},
		{"I-90", 90, true},
		{"I-405", 405, true},
		{"I-05", 5, true},
		{"US-41", 0, false},
		{"I-", 0, false},
		{"I-9a", 0, false},
		{"i-90", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, ok := InterstateNumber(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, n)
		})
	}
}

// TestReportKind_IsValid checks that only defined report kinds pass validation.
func TestReportKind_IsValid(t *testing.T) {
	for _, k := range AllReports() {
		assert.True(t, k.IsValid(), k.String())
	}
	assert.False(t, ReportKind("weather").IsValid())
	assert.False(t, ReportKind("").IsValid())
}

// TestParseOutputFormat verifies string-to-format conversion,
// including case normalization, the yml alias, and error cases.
func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected OutputFormat
		hasError bool
	}{
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"YAML", FormatYAML, false},
		{"yml", FormatYAML, false},
		{" Json ", FormatJSON, false},
		{"csv", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseOutputFormat(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestOutputFormat_Extension verifies the file extension per format.
func TestOutputFormat_Extension(t *testing.T) {
	assert.Equal(t, ".txt", FormatText.Extension())
	assert.Equal(t, ".json", FormatJSON.Extension())
	assert.Equal(t, ".yaml", FormatYAML.Extension())
}

// TestCLIError verifies the custom error type used for exit code mapping.
func TestCLIError(t *testing.T) {
	t.Run("simple error", func(t *testing.T) {
		err := NewCLIError(ExitBaseCityNotFound, "base city not found")
		assert.Equal(t, ExitBaseCityNotFound, err.Code)
		assert.Equal(t, "base city not found", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("wrapped error", func(t *testing.T) {
		inner := errors.New("line 3: expected 4 fields")
		err := WrapCLIError(ExitInvalidDataset, "failed to load dataset", inner)
		assert.Equal(t, ExitInvalidDataset, err.Code)
		assert.Contains(t, err.Error(), "expected 4 fields")
		assert.Equal(t, inner, err.Unwrap())
	})

	t.Run("errors.Is chain", func(t *testing.T) {
		inner := errors.New("permission denied")
		err := WrapCLIError(ExitGeneralError, "failed to write report", inner)
		assert.True(t, errors.Is(err, inner))
	})
}
