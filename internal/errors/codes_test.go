package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type CodesTestSuite struct {
	suite.Suite
}

func TestCodesTestSuite(t *testing.T) {
	suite.Run(t, new(CodesTestSuite))
}

func allCodes() []ErrorCode {
	return []ErrorCode{
		AuthMissingToken,
		AuthExpiredToken,
		AuthInvalidTokenFormat,
		AuthInvalidClaims,
		ValidationGeneral,
		ValidationRequiredField,
		ValidationInvalidFormat,
		ValidationOutOfRange,
		ValidationInvalidQuery,
		LedgerStorageUnavailable,
		LedgerMalformedRecord,
		SystemInternalError,
		SystemDatabaseError,
		SystemServiceUnavailable,
		SystemConfigurationError,
		SystemUnexpectedError,
		SystemRateLimitExceeded,
		SystemNotFound,
	}
}

func (s *CodesTestSuite) TestGetErrorMessage_ValidCode() {
	testCases := []struct {
		name     string
		code     ErrorCode
		expected string
	}{
		{"Auth Missing Token", AuthMissingToken, "Authorization token is required"},
		{"Validation General", ValidationGeneral, "Validation failed"},
		{"Ledger Storage Unavailable", LedgerStorageUnavailable, "Transaction storage is temporarily unavailable. Please try again"},
		{"Ledger Malformed Record", LedgerMalformedRecord, "Stored transaction data could not be read"},
		{"System Internal Error", SystemInternalError, "An unexpected error occurred. Please contact support with trace ID"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, GetErrorMessage(tc.code))
		})
	}
}

func (s *CodesTestSuite) TestGetErrorMessage_InvalidCode() {
	s.Equal("An error occurred", GetErrorMessage("INVALID_CODE"))
}

func (s *CodesTestSuite) TestIsValidErrorCode() {
	for _, code := range allCodes() {
		s.True(IsValidErrorCode(code), "Expected %s to be valid", code)
	}

	for _, code := range []ErrorCode{"INVALID_001", "", "LEDGER_999"} {
		s.False(IsValidErrorCode(code), "Expected %s to be invalid", code)
	}
}

func (s *CodesTestSuite) TestErrorCodeConstants_UniqueAndPrefixed() {
	seen := make(map[ErrorCode]bool)
	for _, code := range allCodes() {
		s.False(seen[code], "Duplicate error code found: %s", code)
		seen[code] = true

		prefix := string(code)[:strings.Index(string(code), "_")+1]
		s.Contains([]string{"AUTH_", "VALIDATION_", "LEDGER_", "SYSTEM_"}, prefix)
	}
}

func (s *CodesTestSuite) TestIsRetryable() {
	s.True(IsRetryable(LedgerStorageUnavailable))
	s.True(IsRetryable(SystemRateLimitExceeded))
	s.False(IsRetryable(LedgerMalformedRecord))
	s.False(IsRetryable(ValidationGeneral))
}
