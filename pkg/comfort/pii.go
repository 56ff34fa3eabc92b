package comfort

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// PII kinds reported by Mask.
const (
	PIIEmail      = "email"
	PIIPhone      = "phone"
	PIIRRN        = "rrn"
	PIIBusinessNo = "business_no"
	PIICardNo     = "card_no"
)

type piiPattern struct {
	kind    string
	label   string
	re      *regexp.Regexp
	digitOK bool // whether the match may touch other digits
}

// Numeric patterns must not be glued to further digits; RE2 has no
// lookaround, so replaceBounded checks the neighbours itself.
var piiPatterns = []piiPattern{
	{PIIEmail, "[이메일]", regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), true},
	{PIIPhone, "[휴대전화]", regexp.MustCompile(`(?:\+?82[-\s]?)?0?1[016789][-\s]?\d{3,4}[-\s]?\d{4}`), false},
	{PIIRRN, "[주민번호]", regexp.MustCompile(`\d{6}-?[1-4]\d{6}`), false},
	{PIIBusinessNo, "[사업자번호]", regexp.MustCompile(`\d{3}-\d{2}-\d{5}`), false},
	{PIICardNo, "[카드번호]", regexp.MustCompile(`(?:\d{4}[-\s]?){3}\d{4}`), false},
}

// Masked is the result of Mask.
type Masked struct {
	Text         string
	Types        []string
	Replacements int
}

// Detected reports whether anything was masked.
func (m Masked) Detected() bool { return len(m.Types) > 0 }

// Mask replaces personal identifiers in text with bracketed labels. Patterns
// run in a fixed order, each over the output of the previous one.
func Mask(text string) Masked {
	out := Masked{Text: text}
	for _, p := range piiPatterns {
		var n int
		if p.digitOK {
			out.Text, n = replaceAll(p.re, out.Text, p.label)
		} else {
			out.Text, n = replaceBounded(p.re, out.Text, p.label)
		}
		if n > 0 {
			out.Types = append(out.Types, p.kind)
			out.Replacements += n
		}
	}
	return out
}

func replaceAll(re *regexp.Regexp, s, label string) (string, int) {
	n := 0
	out := re.ReplaceAllStringFunc(s, func(string) string {
		n++
		return label
	})
	return out, n
}

// replaceBounded replaces matches of re that are not preceded or followed by
// an ASCII digit. A rejected match is retried one rune further on.
func replaceBounded(re *regexp.Regexp, s, label string) (string, int) {
	var b strings.Builder
	n, last, from := 0, 0, 0
	for from < len(s) {
		loc := re.FindStringIndex(s[from:])
		if loc == nil {
			break
		}
		start, end := from+loc[0], from+loc[1]
		if isDigitAt(s, start-1) || isDigitAt(s, end) {
			_, size := utf8.DecodeRuneInString(s[start:])
			from = start + size
			continue
		}
		b.WriteString(s[last:start])
		b.WriteString(label)
		n++
		last, from = end, end
	}
	if n == 0 {
		return s, 0
	}
	b.WriteString(s[last:])
	return b.String(), n
}

func isDigitAt(s string, i int) bool {
	return i >= 0 && i < len(s) && s[i] >= '0' && s[i] <= '9'
}
