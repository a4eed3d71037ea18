package nanobanana

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"

	"github.com/gaogang1011/exhibition-app/modules/common/config"
)

// 이미지 생성 모델은 TEXT 모달리티도 함께 요청해야 함
var imageResponseModalities = []string{"TEXT", "IMAGE"}

// squareConstraint - 비율 지정 API가 없어 프롬프트로 정사각형 출력을 강제
const squareConstraint = "Render as a single square image with a 1:1 aspect ratio."

type Service struct {
	genaiClient *genai.Client
}

func NewService() *Service {
	cfg := config.GetConfig()

	// Genai 클라이언트 초기화
	ctx := context.Background()
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Printf("❌ [Nanobanana] Failed to create Genai client: %v", err)
		return nil
	}

	log.Println("✅ [Nanobanana] Service initialized")
	return &Service{
		genaiClient: genaiClient,
	}
}

// Generate - 프롬프트로 정사각형 이미지 1장 생성, 바이트 직접 반환
func (s *Service) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	cfg := config.GetConfig()

	// 모델 결정 (요청에서 지정하거나 기본값 사용)
	model := req.Model
	if model == "" {
		model = cfg.GeminiModel
	}

	log.Printf("🎨 [Nanobanana] Generating image - model: %s, prompt: %s",
		model, truncateString(req.Prompt, 50))

	content := &genai.Content{
		Parts: []*genai.Part{
			genai.NewPartFromText(withSquareConstraint(req.Prompt)),
		},
	}

	result, err := s.genaiClient.Models.GenerateContent(
		ctx,
		model,
		[]*genai.Content{content},
		&genai.GenerateContentConfig{
			ResponseModalities: imageResponseModalities,
			Temperature:        floatPtr(0.7),
		},
	)
	if err != nil {
		log.Printf("❌ [Nanobanana] Gemini API error: %v", err)
		return nil, fmt.Errorf("image generation failed: %w", err)
	}

	// 응답에서 이미지 추출
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}

		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				log.Printf("✅ [Nanobanana] Image generated: %d bytes", len(part.InlineData.Data))

				mimeType := part.InlineData.MIMEType
				if mimeType == "" {
					mimeType = "image/png"
				}
				return &GenerateResponse{
					Success:   true,
					ImageData: part.InlineData.Data,
					MimeType:  mimeType,
				}, nil
			}
		}
	}

	return &GenerateResponse{
		Success:      false,
		ErrorMessage: "No image generated from Gemini",
	}, nil
}

// withSquareConstraint - 프롬프트 끝에 정사각형 제약을 덧붙임
func withSquareConstraint(prompt string) string {
	p := strings.TrimSpace(prompt)
	if p == "" {
		return squareConstraint
	}
	return p + "\n" + squareConstraint
}

// Helper functions
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

func floatPtr(f float64) *float32 {
	f32 := float32(f)
	return &f32
}
