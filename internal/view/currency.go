package view

import "strconv"

// FormatColones renders an integer colón amount with thousand
// separators, e.g. 1500 -> "₡1,500". Amounts are whole colones; there
// are no cents anywhere in the ledger.
func FormatColones(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) > 3 {
		var b []byte
		lead := len(s) % 3
		if lead > 0 {
			b = append(b, s[:lead]...)
		}
		for i := lead; i < len(s); i += 3 {
			if len(b) > 0 {
				b = append(b, ',')
			}
			b = append(b, s[i:i+3]...)
		}
		s = string(b)
	}
	if neg {
		return "-₡" + s
	}
	return "₡" + s
}
