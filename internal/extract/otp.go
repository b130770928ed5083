package extract

import "regexp"

// Verification emails are not schema-stable. The marker pattern targets the
// known vendor format (an "FB" prefix, a hyphen or en-dash, optional filler,
// then the code); the digit-run fallback tolerates template drift at the cost
// of occasionally matching an unrelated number. Order matters: the marker
// always wins when present.
var (
	otpMarkerPattern = regexp.MustCompile(`(?i)FB[-–][\s-]*(\d{5,8})`)
	digitRunPattern  = regexp.MustCompile(`\b\d{5,8}\b`)
)

// ExtractOTP pulls a 5-8 digit verification code out of free text.
// The marker submatch works even when the template glues trailing text onto
// the code ("FB-20129Don't share" yields "20129").
func ExtractOTP(body string) (string, bool) {
	if m := otpMarkerPattern.FindStringSubmatch(body); m != nil {
		return m[1], true
	}
	if m := digitRunPattern.FindString(body); m != "" {
		return m, true
	}
	return "", false
}
