// Package assess 实现 ADHD 类型评估服务
// 输入为问卷答案集合，输出为类型标签 + 置信度 + 解释；
// 非法字段按兜底值纠正而不是报错，保证前端总能拿到可用分类
package assess

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"adhd_task/constant"
	"adhd_task/model"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

// ChatCompleter 上游调用能力，测试用桩替换
type ChatCompleter interface {
	ChatCompletionContent(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error)
	HasToken() bool
}

// Service 类型评估服务
type Service struct {
	llm ChatCompleter

	// busy 单飞标志：一次评估未返回前拒绝第二次调用
	busy int32
}

func NewService(llm ChatCompleter) *Service {
	return &Service{llm: llm}
}

type upstreamResult struct {
	AdhdType    string `json:"adhdType"`
	Confidence  string `json:"confidence"`
	Explanation string `json:"explanation"`
}

// Classify 根据问卷答案评估类型
func (s *Service) Classify(ctx context.Context, answers map[string]string) (*model.ClassifyResponse, error) {
	if len(answers) == 0 {
		return nil, model.NewError(model.ErrorEmptyAssessment, nil)
	}
	if !s.llm.HasToken() {
		return nil, model.NewError(model.ErrorNoCredential, nil)
	}

	if !atomic.CompareAndSwapInt32(&s.busy, 0, 1) {
		return nil, model.NewError(model.ErrorRequestInFlight, nil)
	}
	defer atomic.StoreInt32(&s.busy, 0)

	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: constant.ClassifySystemPrompt,
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: fmt.Sprintf(constant.ClassifyUserPromptTemplate, formatAnswers(answers)),
		},
	}

	content, err := s.llm.ChatCompletionContent(ctx, messages)
	if err != nil {
		return nil, model.NewError(model.ErrorUpstream, err)
	}

	result, err := parseUpstream(content)
	if err != nil {
		log.Warnf("assess: invalid upstream response: %v", err)
		return nil, model.NewError(model.ErrorInvalidResponse, err)
	}

	return sanitize(result), nil
}

// formatAnswers 按键排序拼接，保证提示词确定性
func formatAnswers(answers map[string]string) string {
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("%s: %s\n", k, answers[k]))
	}
	return sb.String()
}

func parseUpstream(content string) (*upstreamResult, error) {
	cleaned := cleanJSONResponse(content)

	var result upstreamResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("failed to parse upstream JSON: %w", err)
	}
	return &result, nil
}

// sanitize 非法类型回退 combined，非法置信度回退 medium
func sanitize(result *upstreamResult) *model.ClassifyResponse {
	adhdType := constant.Mode(strings.ToLower(strings.TrimSpace(result.AdhdType)))
	if !adhdType.IsValid() {
		adhdType = constant.ModeCombined
	}

	confidence := constant.Confidence(strings.ToLower(strings.TrimSpace(result.Confidence)))
	if !confidence.IsValid() {
		confidence = constant.ConfidenceMedium
	}

	explanation := strings.TrimSpace(result.Explanation)
	if explanation == constant.EmptyString {
		explanation = "Based on your responses, this type fits best."
	}

	return &model.ClassifyResponse{
		AdhdType:    adhdType.String(),
		Confidence:  string(confidence),
		Explanation: explanation,
	}
}

func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)
	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	response = strings.TrimSuffix(response, "```")
	return strings.TrimSpace(response)
}
