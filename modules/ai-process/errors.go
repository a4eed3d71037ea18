package aiprocess

import (
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
)

// Stage - 파이프라인 단계명 (에러 추적용)
type Stage string

const (
	StageResolve  Stage = "resolve"
	StageDescribe Stage = "describe"
	StageGenerate Stage = "generate"
	StageFetch    Stage = "fetch"
	StagePersist  Stage = "persist"
)

// PipelineError - 단계별 실패 정보
// 어느 단계든 실패하면 나머지 단계는 수행되지 않음
type PipelineError struct {
	Stage   Stage
	Code    string
	Message string
	Err     error
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s stage failed (%s): %v", e.Stage, e.Code, e.Err)
	}
	return fmt.Sprintf("%s stage failed (%s): %s", e.Stage, e.Code, e.Message)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// validationErr - 입력 검증 실패 (400)
func validationErr(code, message string) *PipelineError {
	return &PipelineError{Stage: StageResolve, Code: code, Message: message}
}

// inputFileErr - 입력 이미지 읽기/디코드 실패
func inputFileErr(err error) *PipelineError {
	return &PipelineError{Stage: StageDescribe, Code: ErrCodeInputFile, Err: err}
}

// externalErr - 외부 서비스 호출 실패 (정책 위반 별도 분류)
func externalErr(stage Stage, err error) *PipelineError {
	code := ErrCodeInternalError
	if isPolicyViolation(err) {
		code = ErrCodeContentPolicy
	}
	return &PipelineError{Stage: stage, Code: code, Err: err}
}

// downloadErr - 생성 결과 다운로드 실패
func downloadErr(err error) *PipelineError {
	return &PipelineError{Stage: StageFetch, Code: ErrCodeDownloadFailed, Err: err}
}

// isPolicyViolation - 콘텐츠 정책 거부 여부 판별
func isPolicyViolation(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == "content_policy_violation" {
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "content_policy") ||
		strings.Contains(msg, "content policy") ||
		strings.Contains(msg, "safety system")
}
