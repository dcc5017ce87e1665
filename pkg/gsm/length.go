package gsm

// Maximum message lengths indexed by parts budget (1, 2 or 3 concatenated
// parts). Multi-part messages lose characters to concatenation headers,
// which is why three GSM parts carry 459 characters rather than 480.
var (
	MaxLengthGSM     = [3]int{160, 306, 459}
	MaxLengthUnicode = [3]int{70, 134, 201}
)

// ValidateTextLength reports whether text fits into the given number of
// message parts using the chosen encoding. The real (escape-aware) length
// is what counts, not the raw character count. A parts budget outside 1..3
// never validates.
func ValidateTextLength(text string, unicode bool, parts int) bool {
	if parts < 1 || parts > 3 {
		return false
	}
	limit := MaxLengthGSM[parts-1]
	if unicode {
		limit = MaxLengthUnicode[parts-1]
	}
	return RealLength(text, unicode) <= limit
}
