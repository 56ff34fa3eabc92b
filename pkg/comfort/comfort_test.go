package comfort

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/haeuso/pkg/emotion"
)

type fakeLLM struct {
	reply   string
	err     error
	prompts []Prompt
}

func (f *fakeLLM) Complete(_ context.Context, p Prompt) (string, error) {
	f.prompts = append(f.prompts, p)
	return f.reply, f.err
}

func newService(mode Mode, llm Completer, fallback bool) (*Service, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(Options{
		Mode:     mode,
		LLM:      llm,
		Fallback: fallback,
		Logger:   log.New(&buf, "", 0),
	}), &buf
}

func TestValidate(t *testing.T) {
	_, err := Validate(Request{Content: "   "})
	assert.ErrorIs(t, err, ErrInvalidContent)

	_, err = Validate(Request{Content: strings.Repeat("가", MaxContentLength+1)})
	assert.ErrorIs(t, err, ErrInvalidContent)

	_, err = Validate(Request{Content: "  " + strings.Repeat("가", MaxContentLength) + "\n"})
	assert.ErrorIs(t, err, ErrInvalidContent, "surrounding whitespace counts toward the limit")

	req, err := Validate(Request{Content: strings.Repeat("가", MaxContentLength)})
	require.NoError(t, err)
	assert.Equal(t, emotion.Calm, req.Emotion)
}

func TestStubModeNeverCallsModel(t *testing.T) {
	llm := &fakeLLM{err: errors.New("should not be called")}
	s, _ := newService(ModeStub, llm, true)

	got, err := s.Comfort(context.Background(), Request{Content: "오늘은 조금 지쳤어요.", Emotion: emotion.Sad})
	require.NoError(t, err)
	assert.Equal(t, CategoryNormal, got.Category)
	assert.Empty(t, got.Resources)
	assert.NotNil(t, got.Resources)
	assert.True(t, strings.HasPrefix(got.Message, "테스트 모드 응답입니다."))
	assert.Empty(t, llm.prompts)
}

func TestCrisisSkipsModel(t *testing.T) {
	for _, note := range []string{"요즘은 정말 죽고 싶다는 생각만 들어요", "I want to   KILL myself"} {
		llm := &fakeLLM{reply: "unused"}
		s, logs := newService(ModeLive, llm, true)

		got, err := s.Comfort(context.Background(), Request{Content: note, Emotion: emotion.Sad})
		require.NoError(t, err)
		assert.Equal(t, CategoryCrisis, got.Category)
		assert.Equal(t, CrisisResources, got.Resources)
		assert.Contains(t, got.Message, "혼자 버티지 않으셔도 됩니다")
		assert.Empty(t, llm.prompts)
		assert.Contains(t, logs.String(), "category=crisis")
	}
}

func TestLiveMasksBeforeModel(t *testing.T) {
	llm := &fakeLLM{reply: "공감합니다. 오늘도 스스로를 지켜내고 계십니다."}
	s, logs := newService(ModeLive, llm, true)
	note := "제 이메일은 hello@test.com 이고 번호는 010-1234-5678 입니다."

	got, err := s.Comfort(context.Background(), Request{Content: note, Emotion: emotion.Anxious})
	require.NoError(t, err)
	assert.Equal(t, llm.reply, got.Message)

	require.Len(t, llm.prompts, 1)
	p := llm.prompts[0]
	assert.Contains(t, p.User, "[이메일]")
	assert.Contains(t, p.User, "[휴대전화]")
	assert.Contains(t, p.User, "감정: 불안")
	assert.NotContains(t, p.User, "hello@test.com")
	assert.NotContains(t, p.User, "010-1234-5678")
	assert.Equal(t, 0.6, p.Temperature)
	assert.Equal(t, int64(160), p.MaxTokens)

	assert.Contains(t, logs.String(), "pii_types=email,phone")
	assert.NotContains(t, logs.String(), "hello@test.com")
	assert.NotContains(t, logs.String(), note)
}

func TestGuardrailReplacesMedicalTone(t *testing.T) {
	llm := &fakeLLM{reply: "이건 우울증 진단이며 약 복용이 필요합니다."}
	s, logs := newService(ModeLive, llm, true)

	got, err := s.Comfort(context.Background(), Request{Content: "오늘은 많이 가라앉아요.", Emotion: emotion.Sad})
	require.NoError(t, err)
	assert.NotContains(t, got.Message, "진단")
	assert.NotContains(t, got.Message, "약 복용")
	assert.True(t, strings.HasSuffix(got.Message, "충분히 잘하고 계십니다."))
	assert.Contains(t, logs.String(), "guardrail_triggered=true")
}

func TestModelFailureFallsBack(t *testing.T) {
	for _, cause := range []error{ErrNotConfigured, fmt.Errorf("%w: 503", ErrRequest)} {
		s, logs := newService(ModeLive, &fakeLLM{err: cause}, true)
		note := "괜찮은 하루"

		got, err := s.Comfort(context.Background(), Request{Content: note, Emotion: emotion.Happy})
		require.NoError(t, err)
		assert.Equal(t, FallbackMessage(note, emotion.Happy), got.Message)
		assert.Contains(t, logs.String(), "fallback_used=true")
	}
}

func TestModelFailureWithoutFallback(t *testing.T) {
	s, _ := newService(ModeLive, &fakeLLM{err: ErrNotConfigured}, false)
	_, err := s.Comfort(context.Background(), Request{Content: "hello", Emotion: emotion.Calm})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestCanceledRequestDoesNotFallBack(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, _ := newService(ModeLive, &fakeLLM{err: fmt.Errorf("%w: %v", ErrRequest, context.Canceled)}, true)

	_, err := s.Comfort(ctx, Request{Content: "hello", Emotion: emotion.Calm})
	assert.ErrorIs(t, err, ErrRequest)
}

func TestNoCompleterIsNotConfigured(t *testing.T) {
	s, _ := newService(ModeLive, nil, false)
	_, err := s.Comfort(context.Background(), Request{Content: "hello"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestFallbackMessageIsDeterministic(t *testing.T) {
	// Index is the byte length of the trimmed note modulo the line count.
	assert.Equal(t, fallbackLines[emotion.Calm][0]+fallbackClosing, FallbackMessage(" ab ", emotion.Calm))
	assert.Equal(t, fallbackLines[emotion.Calm][1]+fallbackClosing, FallbackMessage("abc", emotion.Calm))
	assert.Equal(t, FallbackMessage("abc", emotion.Calm), FallbackMessage("abc", emotion.Emotion("bogus")))
}

func TestCannedLinesAreSafe(t *testing.T) {
	for _, em := range emotion.All() {
		assert.False(t, HasMedicalRisk(StubMessage(em)), em)
		for _, line := range fallbackLines[em] {
			assert.False(t, HasMedicalRisk(line), line)
			assert.False(t, IsCrisis(line), line)
		}
	}
}

func TestHasMedicalRisk(t *testing.T) {
	assert.True(t, HasMedicalRisk("약 먹고 푹 쉬세요"))
	assert.True(t, HasMedicalRisk("약물 복용을 고려하세요"))
	assert.True(t, HasMedicalRisk("치료를 받아보세요"))
	assert.True(t, HasMedicalRisk("양극성 경향"))
	assert.False(t, HasMedicalRisk("오늘 하루도 애쓰셨어요."))
}
