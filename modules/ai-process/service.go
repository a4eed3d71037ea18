package aiprocess

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/gaogang1011/exhibition-app/modules/common/artifact"
	"github.com/gaogang1011/exhibition-app/modules/common/config"
	"github.com/gaogang1011/exhibition-app/modules/common/utils"
	"github.com/gaogang1011/exhibition-app/modules/submodule/dalle"
	"github.com/gaogang1011/exhibition-app/modules/submodule/nanobanana"
)

// Describer - 입력 이미지 한 문장 묘사
type Describer interface {
	Describe(ctx context.Context, imageData []byte, mimeType string) (string, error)
}

// GeneratedImage - 백엔드 생성 결과
// URL 기반 백엔드는 URL만, 인라인 백엔드는 Data만 채움
type GeneratedImage struct {
	URL  string
	Data []byte
	Ext  string
}

// Generator - 프롬프트로 이미지 1장 생성
type Generator interface {
	Generate(ctx context.Context, prompt string) (*GeneratedImage, error)
}

type Service struct {
	store     *artifact.Store
	describer Describer
	generator Generator
}

// NewService - config의 IMAGE_BACKEND에 따라 백엔드 구성
func NewService(store *artifact.Store) *Service {
	cfg := config.GetConfig()

	var generator Generator
	switch cfg.ImageBackend {
	case config.BackendNanobanana:
		generator = &nanobananaGenerator{svc: nanobanana.NewService()}
	default:
		generator = &dalleGenerator{svc: dalle.NewService()}
	}

	return &Service{
		store:     store,
		describer: newOpenAIDescriber(cfg),
		generator: generator,
	}
}

// Process - 생성 파이프라인 실행
// Resolve는 핸들러에서 끝난 상태. Describe → Compose → Generate → Fetch → Persist 순서로
// 진행하며, 실패한 단계 이후는 수행하지 않음. 저장된 결과 파일명을 반환.
func (s *Service) Process(ctx context.Context, input Input, userPrompt, style string) (string, error) {
	// 1. Describe (입력 이미지가 있을 때만)
	description := ""
	if input.ImagePath != "" {
		imageData, err := os.ReadFile(input.ImagePath)
		if err != nil {
			log.Printf("❌ [AIProcess] Failed to read input image: %v", err)
			return "", inputFileErr(err)
		}

		// 묘사 전에 실제 이미지인지 확인 - 손상 파일은 별도 에러로 분류
		if _, _, err := utils.DecodeImage(imageData); err != nil {
			log.Printf("❌ [AIProcess] Input image undecodable: %v", err)
			return "", inputFileErr(err)
		}

		description, err = s.describer.Describe(ctx, imageData, mimeFromExt(input.ImagePath))
		if err != nil {
			log.Printf("❌ [AIProcess] Describe failed: %v", err)
			return "", externalErr(StageDescribe, err)
		}
		log.Printf("📝 [AIProcess] Description: %s", description)
	}

	// 2. Compose - 단순 문자열 조합
	finalPrompt := ComposePrompt(description, userPrompt, style)
	log.Printf("📝 [AIProcess] Final prompt (%d chars): %s", len(finalPrompt), finalPrompt)

	// 3. Generate
	generated, err := s.generator.Generate(ctx, finalPrompt)
	if err != nil {
		log.Printf("❌ [AIProcess] Generate failed: %v", err)
		return "", externalErr(StageGenerate, err)
	}

	// 4. Fetch - URL 기반 백엔드만 다운로드 필요
	resultData := generated.Data
	if len(resultData) == 0 {
		resultData, err = s.store.DownloadFromURL(ctx, generated.URL)
		if err != nil {
			return "", downloadErr(err)
		}
	}

	// 5. Persist
	fileName, err := s.store.SaveResult(resultData, generated.Ext)
	if err != nil {
		log.Printf("❌ [AIProcess] Persist failed: %v", err)
		return "", &PipelineError{Stage: StagePersist, Code: ErrCodeInternalError, Err: err}
	}

	return fileName, nil
}

// mimeFromExt - 확장자로 MIME 타입 결정
func mimeFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}

// openaiDescriber - OpenAI vision 모델로 이미지 묘사
type openaiDescriber struct {
	client openai.Client
	model  string
}

func newOpenAIDescriber(cfg *config.Config) *openaiDescriber {
	return &openaiDescriber{
		client: openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey)),
		model:  cfg.OpenAIVisionModel,
	}
}

func (d *openaiDescriber) Describe(ctx context.Context, imageData []byte, mimeType string) (string, error) {
	dataURL := "data:" + mimeType + ";base64," + utils.ConvertImageToBase64(imageData)

	log.Printf("🔍 [AIProcess] Describing image (model: %s, %d bytes)", d.model, len(imageData))

	completion, err := d.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(d.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(describeSystemInstruction),
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				{
					OfText: &openai.ChatCompletionContentPartTextParam{
						Text: describeUserText,
					},
				},
				{
					OfImageURL: &openai.ChatCompletionContentPartImageParam{
						ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
							URL: dataURL,
						},
					},
				},
			}),
		},
	})
	if err != nil {
		return "", fmt.Errorf("vision API call failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices in vision response")
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

// dalleGenerator - URL 결과를 반환하는 OpenAI 백엔드 어댑터
type dalleGenerator struct {
	svc *dalle.Service
}

func (g *dalleGenerator) Generate(ctx context.Context, prompt string) (*GeneratedImage, error) {
	resp, err := g.svc.Generate(ctx, &dalle.GenerateRequest{Prompt: prompt})
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("generation failed: %s", resp.ErrorMessage)
	}
	return &GeneratedImage{URL: resp.ImageURL, Ext: ".png"}, nil
}

// nanobananaGenerator - 바이트를 직접 반환하는 Gemini 백엔드 어댑터
type nanobananaGenerator struct {
	svc *nanobanana.Service
}

func (g *nanobananaGenerator) Generate(ctx context.Context, prompt string) (*GeneratedImage, error) {
	if g.svc == nil {
		return nil, fmt.Errorf("nanobanana service not initialized")
	}
	resp, err := g.svc.Generate(ctx, &nanobanana.GenerateRequest{Prompt: prompt})
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("generation failed: %s", resp.ErrorMessage)
	}

	ext := ".png"
	if resp.MimeType == "image/jpeg" {
		ext = ".jpg"
	}
	return &GeneratedImage{Data: resp.ImageData, Ext: ext}, nil
}
