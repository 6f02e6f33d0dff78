package normalize

import "strings"

// handlePunctuation rewrites ASCII punctuation to spaces, preserving a
// handful of characters when context says they're semantically load-bearing.
// Ported from the corpus's character-class handling rules: a decimal point
// inside a number, a hyphen joining two alphanumeric runs, a comma separating
// thousands, and similar "escorted by" exceptions.
func handlePunctuation(text string) string {
	text = toSpaceSet(text, alwaysSpace)
	text = handleHyphen(text)
	text = handleComma(text)
	text = handlePeriod(text)
	return text
}

const alwaysSpace = "#@$!&+*:;><?\\^|_%=\"'`(){}[]~/"

func toSpaceSet(text string, set string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(set, r) {
			return ' '
		}
		return r
	}, text)
}

func isAlphaNumeric(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isSpace(b byte) bool {
	return b <= ' '
}

// escortedBy reports whether the bytes immediately left and right of i
// satisfy lc and rc respectively. Out-of-range neighbors fail the check.
func escortedBy(b []byte, i int, lc, rc func(byte) bool) bool {
	if i <= 0 || i >= len(b)-1 {
		return false
	}
	return lc(b[i-1]) && rc(b[i+1])
}

// handleHyphen keeps a hyphen only when sandwiched between alphanumerics
// (e.g. "well-known"); otherwise rewrites it to a space.
func handleHyphen(text string) string {
	b := []byte(text)
	for i, c := range b {
		if c != '-' {
			continue
		}
		if !escortedBy(b, i, isAlphaNumeric, isAlphaNumeric) {
			b[i] = ' '
		}
	}
	return string(b)
}

// handleComma keeps a comma only when sandwiched between digits (thousands
// separators, e.g. "2,000"); otherwise rewrites it to a space.
func handleComma(text string) string {
	b := []byte(text)
	for i, c := range b {
		if c != ',' {
			continue
		}
		if !escortedBy(b, i, isDigit, isDigit) {
			b[i] = ' '
		}
	}
	return string(b)
}

// handlePeriod keeps a period that forms a decimal (digit.digit or
// whitespace.digit) and otherwise drops abbreviation-style periods
// (CAP.CAP, or CAP. followed by a lowercase word) entirely, rewriting every
// other occurrence to a space.
func handlePeriod(text string) string {
	b := []byte(text)
	var out strings.Builder
	out.Grow(len(b))

	for i := 0; i < len(b); i++ {
		c := b[i]
		if c != '.' {
			out.WriteByte(c)
			continue
		}

		if escortedBy(b, i, isDigit, isDigit) || escortedBy(b, i, isSpace, isDigit) {
			out.WriteByte(c)
			continue
		}

		if escortedBy(b, i, isUpper, isUpper) {
			continue
		}
		if escortedBy(b, i, isUpper, isSpace) && !escortedBy(b, i+1, isPeriod, isUpper) {
			continue
		}

		out.WriteByte(' ')
	}

	return out.String()
}

func isUpper(b byte) bool  { return b >= 'A' && b <= 'Z' }
func isPeriod(b byte) bool { return b == '.' }
