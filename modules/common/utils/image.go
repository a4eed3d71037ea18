package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log"

	_ "image/gif" // GIF 디코더 등록

	_ "github.com/kolesa-team/go-webp/decoder" // WebP 디코더 등록
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
)

// ConvertImageToBase64 - 이미지 바이너리를 base64로 변환
func ConvertImageToBase64(imageData []byte) string {
	return base64.StdEncoding.EncodeToString(imageData)
}

// DecodeImage - 이미지 디코드 (JPEG, PNG, GIF, WebP 자동 감지)
func DecodeImage(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}

// ScaleToMaxWidth - 지정 너비 이하로 비율 유지 축소 (확대는 하지 않음)
func ScaleToMaxWidth(src image.Image, maxWidth int) image.Image {
	bounds := src.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()

	if maxWidth <= 0 || srcWidth <= maxWidth {
		return src
	}

	scale := float64(maxWidth) / float64(srcWidth)
	newWidth := maxWidth
	newHeight := int(float64(srcHeight) * scale)
	if newHeight < 1 {
		newHeight = 1
	}

	// Nearest Neighbor 방식으로 리사이즈
	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	for y := 0; y < newHeight; y++ {
		for x := 0; x < newWidth; x++ {
			srcX := int(float64(x) / scale)
			srcY := int(float64(y) / scale)
			dst.Set(x, y, src.At(srcX, srcY))
		}
	}

	return dst
}

// EncodeImage - 포맷명에 맞춰 이미지 인코딩 (jpeg/png/webp, 그 외는 png)
func EncodeImage(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case "jpeg", "jpg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
	case "webp":
		options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, 90.0)
		if err != nil {
			return nil, fmt.Errorf("failed to create WebP encoder options: %w", err)
		}
		if err := webp.Encode(&buf, img, options); err != nil {
			return nil, fmt.Errorf("failed to encode WebP: %w", err)
		}
	default:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode PNG: %w", err)
		}
	}

	return buf.Bytes(), nil
}

// ConvertToWebP - 임의 포맷 이미지를 WebP로 변환
func ConvertToWebP(imageData []byte, quality float32) ([]byte, error) {
	img, format, err := DecodeImage(imageData)
	if err != nil {
		return nil, err
	}

	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, quality)
	if err != nil {
		return nil, fmt.Errorf("failed to create WebP encoder options: %w", err)
	}

	var webpBuffer bytes.Buffer
	if err := webp.Encode(&webpBuffer, img, options); err != nil {
		return nil, fmt.Errorf("failed to encode WebP: %w", err)
	}

	webpData := webpBuffer.Bytes()
	log.Printf("🔄 %s converted to WebP: %d bytes → %d bytes", format, len(imageData), len(webpData))

	return webpData, nil
}
