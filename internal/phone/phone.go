package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
	"github.com/rotisserie/eris"
)

// NormalizeE164 parses raw in the given default region and formats it as
// E.164.
func NormalizeE164(raw, region string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", eris.New("phone: empty number")
	}
	if region == "" {
		region = "US"
	}
	num, err := phonenumbers.Parse(raw, strings.ToUpper(region))
	if err != nil {
		return "", eris.Wrapf(err, "phone: parse %q", raw)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", eris.Errorf("phone: %q is not a valid number", raw)
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// Normalize returns the E.164 form when raw parses, and raw unchanged
// otherwise. Submissions are never rejected for their phone format.
func Normalize(raw, region string) string {
	out, err := NormalizeE164(raw, region)
	if err != nil {
		return strings.TrimSpace(raw)
	}
	return out
}
