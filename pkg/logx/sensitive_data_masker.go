package logx

import (
	"regexp"
)

type SensitiveDataMaskerInterface interface {
	Mask(input []byte) []byte
}

// Credentials that pass through the bot: platform bearer tokens, the Steam
// web API key and access token (query parameters), and JSON token fields.
//
//nolint:gochecknoglobals
var sensitiveDataPatterns = []*regexp.Regexp{
	regexp.MustCompile("(?s)(Authorization: Bearer ).+?(\r)"),
	regexp.MustCompile(`([?&]key=)[^&\s"]+`),
	regexp.MustCompile(`([?&]access_token=)[^&\s"]+`),
	regexp.MustCompile(`(?s)("access_token":\s?").+?(")`),
	regexp.MustCompile(`(?s)("api_key":\s?").+?(")`),
	regexp.MustCompile(`(?s)("[Pp]assword":\s?").+?(")`),
}

type SensitiveDataMasker struct{}

func NewSensitiveDataMasker() SensitiveDataMasker {
	return SensitiveDataMasker{}
}

func (s SensitiveDataMasker) Mask(input []byte) []byte {
	for _, pattern := range sensitiveDataPatterns {
		input = pattern.ReplaceAll(input, []byte("${1}[MASKED]${2}"))
	}

	return input
}
