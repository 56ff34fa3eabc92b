// Package comfort turns a short journal note into a brief empathetic reply.
// Notes that mention self-harm get crisis resources instead; everything sent
// to the model has personal identifiers masked, and replies that read like
// medical advice are swapped for a canned line.
package comfort

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"tableflip.dev/haeuso/pkg/emotion"
)

// MaxContentLength is the longest note, in characters, Comfort accepts.
const MaxContentLength = 1000

// ErrInvalidContent is returned for empty or overlong notes.
var ErrInvalidContent = errors.New("comfort: content must be 1 to 1000 characters")

// Mode selects how replies are produced.
type Mode string

const (
	ModeLive Mode = "live"
	ModeStub Mode = "stub"
)

// Category classifies a Response.
type Category string

const (
	CategoryNormal Category = "normal"
	CategoryCrisis Category = "crisis"
)

// Request is a note to respond to.
type Request struct {
	Content string          `json:"content"`
	Emotion emotion.Emotion `json:"emotion,omitempty"`
}

// Response is what the user sees.
type Response struct {
	Category  Category `json:"category" yaml:"category"`
	Message   string   `json:"message" yaml:"message"`
	Resources []string `json:"resources" yaml:"resources,omitempty"`
}

// Options configures New.
type Options struct {
	Mode Mode
	// LLM is consulted in live mode.
	LLM Completer
	// Fallback answers with a canned line when the model fails. Without it
	// the failure is returned.
	Fallback bool
	Logger   *log.Logger
}

// Service answers comfort and insight requests.
type Service struct {
	mode     Mode
	llm      Completer
	fallback bool
	logger   *log.Logger
	now      func() time.Time
}

// New returns a Service.
func New(opts Options) *Service {
	s := &Service{
		mode:     opts.Mode,
		llm:      opts.LLM,
		fallback: opts.Fallback,
		logger:   opts.Logger,
		now:      time.Now,
	}
	if s.mode != ModeStub {
		s.mode = ModeLive
	}
	if s.logger == nil {
		s.logger = log.New(os.Stderr, "comfort: ", log.LstdFlags)
	}
	return s
}

// Mode reports the resolved mode.
func (s *Service) Mode() Mode { return s.mode }

// Validate checks req and fills in the default emotion.
func Validate(req Request) (Request, error) {
	if strings.TrimSpace(req.Content) == "" || utf8.RuneCountInString(req.Content) > MaxContentLength {
		return req, ErrInvalidContent
	}
	if !req.Emotion.Valid() {
		req.Emotion = emotion.Default
	}
	return req, nil
}

// Comfort responds to req. Crisis notes never reach the model.
func (s *Service) Comfort(ctx context.Context, req Request) (Response, error) {
	req, err := Validate(req)
	if err != nil {
		return Response{}, err
	}
	started := s.now()
	masked := Mask(req.Content)
	ev := event{
		id:      uuid.NewString(),
		mode:    s.mode,
		masked:  masked,
		started: started,
	}

	if IsCrisis(req.Content) {
		ev.category = CategoryCrisis
		s.logEvent(ev)
		return Response{
			Category:  CategoryCrisis,
			Message:   crisisMessage,
			Resources: append([]string(nil), CrisisResources...),
		}, nil
	}

	var message string
	if s.mode == ModeStub {
		message = StubMessage(req.Emotion)
	} else {
		message, err = s.complete(ctx, comfortPrompt(req.Emotion, masked.Text))
		if err != nil {
			if ctx.Err() != nil || !s.fallback {
				return Response{}, err
			}
			s.logger.Printf("falling back: %v", err)
			message = FallbackMessage(req.Content, req.Emotion)
			ev.fallback = true
		}
	}

	if HasMedicalRisk(message) {
		message = FallbackMessage(req.Content, req.Emotion)
		ev.guardrail = true
		ev.fallback = true
	}

	ev.category = CategoryNormal
	s.logEvent(ev)
	return Response{Category: CategoryNormal, Message: message, Resources: []string{}}, nil
}

func (s *Service) complete(ctx context.Context, p Prompt) (string, error) {
	if s.llm == nil {
		return "", ErrNotConfigured
	}
	return s.llm.Complete(ctx, p)
}

func comfortPrompt(em emotion.Emotion, content string) Prompt {
	return Prompt{
		System: "당신은 한국어 공감 메시지를 짧게 전하는 도우미입니다. " +
			"해결책/조언/훈계/진단을 하지 말고 감정을 먼저 알아주세요. " +
			"응답은 반드시 2문장, 총 120자 이내로 작성하세요. " +
			"클리셰 표현(예: 힘내세요) 사용을 피하세요.",
		User: "[사용자 입력]\n" +
			fmt.Sprintf("감정: %s\n", em.Label()) +
			fmt.Sprintf("내용: %s\n\n", content) +
			"조건:\n" +
			"- 공감 중심, 따뜻한 톤\n" +
			"- 의학적 판단 금지\n" +
			"- 한국어만 사용\n" +
			"- 결과는 순수 문장만 반환",
		Temperature: 0.6,
		MaxTokens:   160,
	}
}

// event is one comfort_processed log line. It never carries the note.
type event struct {
	id        string
	mode      Mode
	category  Category
	masked    Masked
	fallback  bool
	guardrail bool
	started   time.Time
}

func (s *Service) logEvent(ev event) {
	s.logger.Printf("comfort_processed request_id=%s mode=%s category=%s pii_detected=%t pii_types=%s pii_replacements=%d fallback_used=%t guardrail_triggered=%t duration_ms=%d",
		ev.id, ev.mode, ev.category,
		ev.masked.Detected(), strings.Join(ev.masked.Types, ","), ev.masked.Replacements,
		ev.fallback, ev.guardrail,
		s.now().Sub(ev.started).Milliseconds())
}
