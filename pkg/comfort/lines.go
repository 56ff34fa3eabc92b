package comfort

import (
	"fmt"
	"strings"

	"tableflip.dev/haeuso/pkg/emotion"
)

const (
	crisisMessage = "이곳이 담기에는 너무 무거운 이야기일 수 있습니다. " +
		"혼자 버티지 않으셔도 됩니다. 지금 바로 도움을 받을 수 있는 곳에 연락해 주세요."

	fallbackClosing = " 지금 여기까지 오신 것만으로도 충분히 잘하고 계십니다."

	stubPrefix = "테스트 모드 응답입니다."
)

// CrisisResources are the hotlines offered with every crisis response.
var CrisisResources = []string{
	"자살예방상담전화 1393",
	"정신건강위기상담전화 1577-0199",
	"생명의전화 1588-9191",
}

var fallbackLines = map[emotion.Emotion][]string{
	emotion.Calm: {
		"지금의 고요함을 잘 지켜내고 계시네요.",
		"조용한 숨 하나가 마음을 단단하게 붙잡아줄 거예요.",
	},
	emotion.Sad: {
		"슬픔을 말로 꺼내는 데 이미 큰 용기가 필요했을 거예요.",
		"오늘은 버틴 자신을 조금 더 부드럽게 대해주셔도 됩니다.",
	},
	emotion.Angry: {
		"화가 올라온 마음에는 그만한 이유가 있었을 거예요.",
		"잠깐 멈춰 선 지금이, 마음을 다치지 않게 지키는 시간입니다.",
	},
	emotion.Anxious: {
		"불안한 마음을 혼자 붙잡고 있지 않아도 괜찮습니다.",
		"지금 이 순간 하나만 천천히 건너가도 충분합니다.",
	},
	emotion.Happy: {
		"기쁜 마음을 오래 붙잡고 싶은 하루였겠네요.",
		"지금의 밝은 감정이 오래 남아 주면 좋겠습니다.",
	},
}

var stubLines = map[emotion.Emotion]string{
	emotion.Calm:    stubPrefix + " 지금의 차분함을 그대로 지켜도 괜찮습니다.",
	emotion.Sad:     stubPrefix + " 오늘의 무거움을 잠시 내려놓아도 괜찮습니다.",
	emotion.Angry:   stubPrefix + " 올라온 감정을 여기서 잠깐 비워내셔도 됩니다.",
	emotion.Anxious: stubPrefix + " 불안이 큰 날일수록 한 호흡씩 천천히 가도 됩니다.",
	emotion.Happy:   stubPrefix + " 오늘의 밝은 감정을 충분히 느끼셔도 좋습니다.",
}

// FallbackMessage is the canned comfort line used when the model can't be
// reached or produced something unsafe. The line is picked by the length of
// the trimmed text, so the same input always gets the same line.
func FallbackMessage(text string, em emotion.Emotion) string {
	if !em.Valid() {
		em = emotion.Default
	}
	lines := fallbackLines[em]
	i := len(strings.TrimSpace(text)) % len(lines)
	return lines[i] + fallbackClosing
}

// StubMessage is the stub-mode comfort line for em.
func StubMessage(em emotion.Emotion) string {
	if !em.Valid() {
		em = emotion.Default
	}
	return stubLines[em]
}

func fallbackComment(periodDays int, dominant string, total int) string {
	if total == 0 {
		return "기록이 없어 해석을 만들 수 없습니다. 짧은 한 줄부터 시작해 보셔도 좋습니다."
	}
	switch emotion.Emotion(dominant) {
	case emotion.Anxious, emotion.Sad, emotion.Angry:
		return fmt.Sprintf("최근 %d일은 소진 감정이 상대적으로 많았습니다. "+
			"해야 할 일을 줄이고, 회복 루틴을 먼저 챙기는 것이 도움이 됩니다.", periodDays)
	}
	return fmt.Sprintf("최근 %d일은 버티는 힘과 회복 감정이 함께 보입니다. "+
		"잘 맞았던 휴식 방식은 다음 주에도 이어가 보세요.", periodDays)
}

func stubComment(periodDays int, dominant string, total int) string {
	switch {
	case total == 0:
		return stubPrefix + " 기록이 없어 분석 코멘트를 만들 수 없습니다."
	case dominant == NoDominant:
		return fmt.Sprintf("%s 최근 %d일 감정 흐름을 다시 모아보세요.", stubPrefix, periodDays)
	}
	return fmt.Sprintf("%s 최근 %d일의 대표 감정은 %s입니다.", stubPrefix, periodDays, dominant)
}
