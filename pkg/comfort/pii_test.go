package comfort

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskMajorPatterns(t *testing.T) {
	got := Mask("연락처 010-1234-5678, 메일 hello@test.com, 주민번호 900101-1234567")

	assert.GreaterOrEqual(t, got.Replacements, 3)
	assert.Contains(t, got.Types, PIIPhone)
	assert.Contains(t, got.Types, PIIEmail)
	assert.Contains(t, got.Types, PIIRRN)
	assert.Contains(t, got.Text, "[휴대전화]")
	assert.Contains(t, got.Text, "[이메일]")
	assert.Contains(t, got.Text, "[주민번호]")
	assert.NotContains(t, got.Text, "010-1234-5678")
	assert.NotContains(t, got.Text, "hello@test.com")
	assert.True(t, got.Detected())
}

func TestMaskKoreanSuffixAfterPhone(t *testing.T) {
	got := Mask("핸드폰번호가 010-1234-5555인데 화가 납니다.")

	assert.Contains(t, got.Types, PIIPhone)
	assert.Contains(t, got.Text, "[휴대전화]인데")
	assert.NotContains(t, got.Text, "010-1234-5555")
}

func TestMaskCases(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		kind string
	}{
		{name: "international phone", in: "번호는 +82 10-9876-5432 입니다", want: "번호는 [휴대전화] 입니다", kind: PIIPhone},
		{name: "business number", in: "사업자 123-45-67890 확인", want: "사업자 [사업자번호] 확인", kind: PIIBusinessNo},
		{name: "card number", in: "카드 1234 5678 9012 3456 결제", want: "카드 [카드번호] 결제", kind: PIICardNo},
		{name: "digits glued on", in: "코드 90010112345678", want: "코드 90010112345678"},
		{name: "nothing to mask", in: "오늘은 그냥 피곤했어요", want: "오늘은 그냥 피곤했어요"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Mask(tt.in)
			assert.Equal(t, tt.want, got.Text)
			if tt.kind == "" {
				assert.False(t, got.Detected())
				assert.Zero(t, got.Replacements)
			} else {
				assert.Equal(t, []string{tt.kind}, got.Types)
			}
		})
	}
}
