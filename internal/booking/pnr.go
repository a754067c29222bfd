package booking

import (
	"errors"
	"strings"
)

// pnrCodeLength is the fixed length of an airline record locator in
// this domain.
const pnrCodeLength = 6

// ErrInvalidPNRCode is returned when a ticketing request carries a
// malformed record locator.
var ErrInvalidPNRCode = errors.New("pnr code must be exactly 6 letters or digits")

// NormalizePNRCode trims and upper-cases a record locator and
// validates that it is exactly six alphanumeric characters.  The
// normalized form is what the ledger stores, so "abc123" and "ABC123"
// collide on the (passenger, code) uniqueness constraint as intended.
func NormalizePNRCode(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) != pnrCodeLength {
		return "", ErrInvalidPNRCode
	}
	for i := 0; i < len(code); i++ {
		ch := code[i]
		if (ch < 'A' || ch > 'Z') && (ch < '0' || ch > '9') {
			return "", ErrInvalidPNRCode
		}
	}
	return code, nil
}
