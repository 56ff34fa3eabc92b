package comfort

import (
	"context"
	"fmt"
	"strings"

	"tableflip.dev/haeuso/pkg/emotion"
)

// NoDominant is the dominant emotion of an empty tally.
const NoDominant = "none"

// Insight summarizes the emotions recorded over a period.
type Insight struct {
	PeriodDays int                     `json:"periodDays" yaml:"periodDays"`
	Dominant   string                  `json:"dominantEmotion" yaml:"dominantEmotion"`
	Counts     map[emotion.Emotion]int `json:"emotionCounts" yaml:"emotionCounts"`
	Total      int                     `json:"total" yaml:"total"`
	Comment    string                  `json:"comment" yaml:"comment"`
}

// NormalizePeriod accepts 7 or 30 days; anything else is 7.
func NormalizePeriod(days int) int {
	if days == 30 {
		return 30
	}
	return 7
}

// Tally counts ems per emotion. Every emotion has a count, unknown values are
// ignored, and ties for the dominant emotion go to the one listed first in
// emotion.All.
func Tally(ems []emotion.Emotion) (counts map[emotion.Emotion]int, total int, dominant string) {
	counts = make(map[emotion.Emotion]int, len(emotion.All()))
	for _, em := range emotion.All() {
		counts[em] = 0
	}
	for _, em := range ems {
		if _, ok := counts[em]; ok {
			counts[em]++
			total++
		}
	}
	if total == 0 {
		return counts, 0, NoDominant
	}
	best := 0
	for _, em := range emotion.All() {
		if counts[em] > best {
			best = counts[em]
			dominant = string(em)
		}
	}
	return counts, total, dominant
}

// Insight tallies ems and writes a short comment about them. Model failures
// always fall back to a canned comment unless ctx is done.
func (s *Service) Insight(ctx context.Context, periodDays int, ems []emotion.Emotion) (Insight, error) {
	started := s.now()
	in := Insight{PeriodDays: NormalizePeriod(periodDays)}
	in.Counts, in.Total, in.Dominant = Tally(ems)

	fallback, guardrail := false, false
	if s.mode == ModeStub {
		in.Comment = stubComment(in.PeriodDays, in.Dominant, in.Total)
	} else {
		comment, err := s.complete(ctx, insightPrompt(in))
		if err != nil {
			if ctx.Err() != nil {
				return Insight{}, err
			}
			s.logger.Printf("falling back: %v", err)
			comment = fallbackComment(in.PeriodDays, in.Dominant, in.Total)
			fallback = true
		}
		in.Comment = comment
	}

	if HasMedicalRisk(in.Comment) {
		in.Comment = fallbackComment(in.PeriodDays, in.Dominant, in.Total)
		fallback, guardrail = true, true
	}

	s.logger.Printf("insight_processed mode=%s period_days=%d total_entries=%d dominant_emotion=%s fallback_used=%t guardrail_triggered=%t duration_ms=%d",
		s.mode, in.PeriodDays, in.Total, in.Dominant, fallback, guardrail, s.now().Sub(started).Milliseconds())
	return in, nil
}

func insightPrompt(in Insight) Prompt {
	parts := make([]string, 0, len(in.Counts))
	for _, em := range emotion.All() {
		parts = append(parts, fmt.Sprintf("%s:%d", em, in.Counts[em]))
	}
	return Prompt{
		System: "당신은 감정 기록을 다정하게 요약하는 도우미입니다. " +
			"판단/진단/치료 권고를 하지 말고, 관찰과 자기돌봄 힌트만 제시하세요. " +
			"응답은 2~3문장, 총 180자 이내의 한국어로 작성하세요.",
		User: fmt.Sprintf("최근 %d일 기록 수: %d\n", in.PeriodDays, in.Total) +
			fmt.Sprintf("감정 분포: %s\n\n", strings.Join(parts, ", ")) +
			"조건:\n" +
			"- 분포에서 보이는 흐름을 부드럽게 설명\n" +
			"- 자기돌봄 힌트 1개 포함\n" +
			"- 의료적 표현/확정적 진단 금지\n" +
			"- 한국어만 사용",
		Temperature: 0.4,
		MaxTokens:   220,
	}
}
