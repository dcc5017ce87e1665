// Package gsm implements GSM 03.38 charset classification and the
// per-part length rules of the legacy bulk SMS gateway.
package gsm

// defaultAlphabet is the GSM 03.38 default alphabet, including the
// characters reached through the escape extension table.
const defaultAlphabet = "@£$¥èéùìòÇ\nØø\rÅåΔ_ΦΓΛΩΠΨΣΘΞ\x1b\f^{}\\[~]|€ÆæßÉ !\"#¤%&'()*+,-./0123456789:;<=>?¡ABCDEFGHIJKLMNOPQRSTUVWXYZÄÖÑÜ§¿abcdefghijklmnopqrstuvwxyzäöñüà"

var alphabet = make(map[rune]struct{}, 128)

// escaped characters occupy two septets in GSM encoding because the
// transport represents them as an escape sequence.
var escaped = map[rune]struct{}{
	'{': {}, '}': {}, '\\': {}, '~': {}, '[': {}, ']': {}, '|': {}, '€': {},
}

func init() {
	for _, r := range defaultAlphabet {
		alphabet[r] = struct{}{}
	}
}

// IsGSM reports whether text contains only characters from the GSM 03.38
// default alphabet. Empty text is GSM.
func IsGSM(text string) bool {
	for _, r := range text {
		if _, ok := alphabet[r]; !ok {
			return false
		}
	}
	return true
}

// IsUnicode reports whether text contains at least one character outside
// of the GSM 03.38 default alphabet.
func IsUnicode(text string) bool {
	return !IsGSM(text)
}

// RealLength returns the length of text in alphabet units. Under GSM
// encoding the escaped characters count double; under unicode encoding
// every character counts as one.
func RealLength(text string, unicode bool) int {
	n := 0
	for _, r := range text {
		n++
		if unicode {
			continue
		}
		if _, ok := escaped[r]; ok {
			n++
		}
	}
	return n
}
