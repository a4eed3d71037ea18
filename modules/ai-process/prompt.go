package aiprocess

import "strings"

// describeSystemInstruction - 이미지 묘사 시스템 지시문
// 한 문장짜리 캡션만 받도록 강하게 제한
const describeSystemInstruction = `You are an image captioning assistant for an art installation.
Describe the photo in exactly ONE sentence, focusing only on composition, subject, lighting and color.
Do NOT mention artistic style, photographic technique or image quality.
Do NOT identify, name or guess anything about specific people.
Return the sentence only, with no preamble.`

// describeUserText - 묘사 요청 시 이미지와 함께 보내는 텍스트
const describeUserText = "Describe this photo."

// ComposePrompt - 묘사 + 사용자 프롬프트 + 스타일을 결정론적으로 조합
// text 모드는 description 없이 호출됨
func ComposePrompt(description, userPrompt, style string) string {
	var parts []string

	if d := strings.TrimSpace(description); d != "" {
		parts = append(parts, strings.TrimSuffix(d, "."))
	}
	if p := strings.TrimSpace(userPrompt); p != "" {
		parts = append(parts, p)
	}

	prompt := strings.Join(parts, ". ")

	if s := strings.TrimSpace(style); s != "" {
		if prompt == "" {
			prompt = s + " style"
		} else {
			prompt += ", in " + s + " style"
		}
	}

	return prompt
}
