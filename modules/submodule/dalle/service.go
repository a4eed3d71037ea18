package dalle

import (
	"context"
	"fmt"
	"log"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/gaogang1011/exhibition-app/modules/common/config"
)

type Service struct {
	client openai.Client
	model  string
}

func NewService() *Service {
	cfg := config.GetConfig()

	if cfg.OpenAIAPIKey == "" {
		log.Println("⚠️ [DALL-E] OPENAI_API_KEY not configured")
	}

	client := openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey))

	log.Printf("✅ [DALL-E] Service initialized (model: %s)", cfg.OpenAIImageModel)
	return &Service{
		client: client,
		model:  cfg.OpenAIImageModel,
	}
}

// Generate - 프롬프트로 정사각형 이미지 1장 생성, 호스팅 URL 반환
func (s *Service) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	size := openai.ImageGenerateParamsSize1024x1024

	log.Printf("🎨 [DALL-E] Generating image - model: %s, prompt: %s",
		s.model, truncateString(req.Prompt, 50))

	result, err := s.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         req.Prompt,
		Model:          openai.ImageModel(s.model),
		N:              openai.Int(1),
		Size:           size,
		ResponseFormat: openai.ImageGenerateParamsResponseFormatURL,
	})
	if err != nil {
		log.Printf("❌ [DALL-E] API error: %v", err)
		return nil, fmt.Errorf("image generation failed: %w", err)
	}

	if len(result.Data) == 0 || result.Data[0].URL == "" {
		return &GenerateResponse{
			Success:      false,
			ErrorMessage: "No image URL in response",
		}, nil
	}

	log.Printf("✅ [DALL-E] Image generated: %s", truncateString(result.Data[0].URL, 80))
	return &GenerateResponse{
		Success:  true,
		ImageURL: result.Data[0].URL,
	}, nil
}

// truncateString - 로그용 문자열 자르기
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
