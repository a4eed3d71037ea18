package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// 이미지 생성 백엔드 종류
const (
	BackendOpenAI     = "openai"
	BackendNanobanana = "nanobanana"
)

// Config 구조체 - 모든 환경변수를 담음
type Config struct {
	// Server
	Port         string
	PublicOrigin string
	PublicDir    string

	// OpenAI API
	OpenAIAPIKey      string
	OpenAIVisionModel string
	OpenAIImageModel  string

	// Gemini API
	GeminiAPIKey string
	GeminiModel  string

	// 이미지 생성 백엔드 선택 (openai | nanobanana)
	ImageBackend string
}

var globalConfig *Config

// LoadConfig - 환경변수 로드
func LoadConfig() (*Config, error) {
	// .env 파일 로드 (있으면)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env file not found, using environment variables")
	}

	port := getEnv("PORT", "8080")

	globalConfig = &Config{
		// Server
		Port:         port,
		PublicOrigin: getEnv("PUBLIC_ORIGIN", "http://localhost:"+port),
		PublicDir:    getEnv("PUBLIC_DIR", "./public"),

		// OpenAI
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIVisionModel: getEnv("OPENAI_VISION_MODEL", "gpt-4o-mini"),
		OpenAIImageModel:  getEnv("OPENAI_IMAGE_MODEL", "dall-e-3"),

		// Gemini
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash-image"),

		// Backend
		ImageBackend: getEnv("IMAGE_BACKEND", BackendOpenAI),
	}

	if err := globalConfig.validate(); err != nil {
		return nil, err
	}

	// API 키는 여기서 강제하지 않음 - 외부 호출 시점에 실패가 드러남
	if globalConfig.OpenAIAPIKey == "" {
		log.Println("⚠️  OPENAI_API_KEY not set - AI calls will fail until configured")
	}
	if globalConfig.ImageBackend == BackendNanobanana && globalConfig.GeminiAPIKey == "" {
		log.Println("⚠️  GEMINI_API_KEY not set - nanobanana backend will fail until configured")
	}

	log.Println("✅ Configuration loaded successfully")
	log.Printf("   Port: %s", globalConfig.Port)
	log.Printf("   Public origin: %s", globalConfig.PublicOrigin)
	log.Printf("   Public dir: %s", globalConfig.PublicDir)
	log.Printf("   Image backend: %s", globalConfig.ImageBackend)

	return globalConfig, nil
}

// GetConfig - 로드된 설정 가져오기
func GetConfig() *Config {
	if globalConfig == nil {
		log.Fatal("❌ Config not loaded. Call LoadConfig() first.")
	}
	return globalConfig
}

// validate - 설정 값 검증
func (c *Config) validate() error {
	if c.ImageBackend != BackendOpenAI && c.ImageBackend != BackendNanobanana {
		return fmt.Errorf("IMAGE_BACKEND must be %q or %q, got %q",
			BackendOpenAI, BackendNanobanana, c.ImageBackend)
	}
	return nil
}

// getEnv - 환경변수 가져오기 (기본값 지원)
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
