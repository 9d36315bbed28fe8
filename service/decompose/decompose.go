// Package decompose 实现 AI 任务拆解服务
// 核心只消费“文本 + 人格标签 -> 有序子任务列表或类型化失败”这一契约，
// 上游大模型通过 OpenAI 兼容客户端间接调用，返回的 JSON 必须校验后才接受
package decompose

import (
	"context"
	"encoding/json"
	"fmt"
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

// Service 任务拆解服务
type Service struct {
	llm ChatCompleter

	// busy 单飞标志：一次调用未观察到成败之前拒绝第二次调用，
	// 在途调用本身不可中止
	busy int32
}

func NewService(llm ChatCompleter) *Service {
	return &Service{llm: llm}
}

// upstreamResult 上游响应的合法形状
type upstreamResult struct {
	SubTasks    []string `json:"subTasks"`
	Subtasks    []string `json:"subtasks"`
	Explanation string   `json:"explanation"`
}

// Decompose 拆解任务
// 失败口径：空输入 / 凭证未配置 / 上游失败 / 响应格式非法 / 零子任务（需要用户重试，不静默接受）
func (s *Service) Decompose(ctx context.Context, userTask string, mode constant.Mode) (*model.DecomposeResponse, error) {
	task := strings.TrimSpace(userTask)
	if task == constant.EmptyString {
		return nil, model.NewError(model.ErrorEmptyTask, nil)
	}
	if !s.llm.HasToken() {
		return nil, model.NewError(model.ErrorNoCredential, nil)
	}
	if !mode.IsValid() {
		mode = constant.ModeCombined
	}

	if !atomic.CompareAndSwapInt32(&s.busy, 0, 1) {
		return nil, model.NewError(model.ErrorRequestInFlight, nil)
	}
	defer atomic.StoreInt32(&s.busy, 0)

	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: constant.DecomposeSystemPrompt,
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: fmt.Sprintf(constant.DecomposeUserPromptTemplate, constant.ModePersonaGuidance[mode], task),
		},
	}

	content, err := s.llm.ChatCompletionContent(ctx, messages)
	if err != nil {
		return nil, model.NewError(model.ErrorUpstream, err)
	}

	result, err := parseUpstream(content)
	if err != nil {
		log.Warnf("decompose: invalid upstream response: %v", err)
		return nil, model.NewError(model.ErrorInvalidResponse, err)
	}

	subTasks := normalizeSubtasks(result)
	if len(subTasks) == 0 {
		return nil, model.NewError(model.ErrorNoSubtasks, nil)
	}

	return &model.DecomposeResponse{
		SubTasks:     subTasks,
		Explanation:  result.Explanation,
		OriginalTask: task,
		Subtype:      mode.String(),
	}, nil
}

// parseUpstream 清理代码围栏后解析；必须是含字符串数组字段的对象
func parseUpstream(content string) (*upstreamResult, error) {
	cleaned := cleanJSONResponse(content)

	var result upstreamResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("failed to parse upstream JSON: %w", err)
	}
	return &result, nil
}

// normalizeSubtasks 取数组字段（两种命名都接受），去掉空白项
func normalizeSubtasks(result *upstreamResult) []string {
	raw := result.SubTasks
	if len(raw) == 0 {
		raw = result.Subtasks
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != constant.EmptyString {
			out = append(out, s)
		}
	}
	return out
}

// cleanJSONResponse 清理 JSON 响应外层的 markdown 代码围栏
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
