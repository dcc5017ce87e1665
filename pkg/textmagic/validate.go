package textmagic

import "regexp"

var phonePattern = regexp.MustCompile(`^[0-9]{1,15}$`)

// ValidatePhones reports whether phones is a non-empty list in which every
// number is a plain digit string of at most 15 digits. No sign, no
// separators, no letters.
func ValidatePhones(phones ...string) bool {
	if len(phones) == 0 {
		return false
	}
	for _, phone := range phones {
		if !phonePattern.MatchString(phone) {
			return false
		}
	}
	return true
}
