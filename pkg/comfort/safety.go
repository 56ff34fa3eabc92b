package comfort

import (
	"regexp"
	"strings"
)

var crisisKeywords = []string{
	"죽고 싶",
	"자해",
	"끝내고 싶",
	"사라지고 싶",
	"극단적 선택",
	"해치고 싶",

	"suicide",
	"kill myself",
	"end my life",
	"take my life",
	"end it all",
	"self harm",
	"self-harm",
	"cut myself",
	"hurt myself",
	"harm myself",
	"want to die",
	"better off dead",
	"unalive",
}

var medicalRisk = []*regexp.Regexp{
	regexp.MustCompile(`진단`),
	regexp.MustCompile(`처방`),
	regexp.MustCompile(`병명`),
	regexp.MustCompile(`입원`),
	regexp.MustCompile(`약(?:물)?\s*(복용|드시|먹)`),
	regexp.MustCompile(`(우울증|불안장애|조현병|양극성)`),
	regexp.MustCompile(`치료\s*(가|를|받)`),
}

// IsCrisis reports whether text talks about self-harm. Matching ignores case
// and runs of whitespace.
func IsCrisis(text string) bool {
	lowered := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	for _, k := range crisisKeywords {
		if strings.Contains(lowered, k) {
			return true
		}
	}
	return false
}

// HasMedicalRisk reports whether text reads like a diagnosis or treatment
// advice.
func HasMedicalRisk(text string) bool {
	lowered := strings.ToLower(text)
	for _, re := range medicalRisk {
		if re.MatchString(lowered) {
			return true
		}
	}
	return false
}
