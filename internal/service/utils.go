package service

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
)

var dataURIPrefixRe = regexp.MustCompile(`^data:[^;]+;base64,`)

// DecodeBase64Payload accepts both raw base64 and data-URI payloads, the two
// forms onboarding front-ends actually send.
func DecodeBase64Payload(payload string) ([]byte, error) {
	clean := dataURIPrefixRe.ReplaceAllString(strings.TrimSpace(payload), "")
	if clean == "" {
		return nil, fmt.Errorf("empty file payload")
	}

	data, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		// Some clients strip padding.
		data, err = base64.RawStdEncoding.DecodeString(clean)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 payload: %w", err)
		}
	}
	return data, nil
}

// truncate limits echoed OCR text so debug payloads stay small. Rune-based
// so accented characters never get split.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
