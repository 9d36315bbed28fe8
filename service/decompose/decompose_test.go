package decompose

import (
	"context"
	"fmt"
	"testing"

	"adhd_task/constant"
	"adhd_task/model"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCompleter 不走网络的上游桩
type stubCompleter struct {
	content  string
	err      error
	hasToken bool
	calls    int
	lastUser string
}

func (s *stubCompleter) ChatCompletionContent(_ context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	s.calls++
	for _, m := range messages {
		if m.Role == openai.ChatMessageRoleUser {
			s.lastUser = m.Content
		}
	}
	return s.content, s.err
}

func (s *stubCompleter) HasToken() bool {
	return s.hasToken
}

func TestDecomposeEmptyTaskRejectedWithoutUpstreamCall(t *testing.T) {
	stub := &stubCompleter{hasToken: true}
	svc := NewService(stub)

	_, err := svc.Decompose(context.Background(), "   ", constant.ModeCombined)
	require.Error(t, err)
	assert.Equal(t, model.ErrorEmptyTask, model.CodeOf(err))
	assert.Equal(t, 0, stub.calls)
}

func TestDecomposeMissingCredential(t *testing.T) {
	stub := &stubCompleter{hasToken: false}
	svc := NewService(stub)

	_, err := svc.Decompose(context.Background(), "收拾房间", constant.ModeCombined)
	require.Error(t, err)
	assert.Equal(t, model.ErrorNoCredential, model.CodeOf(err))
	assert.Equal(t, 0, stub.calls)
}

func TestDecomposeParsesFencedJSON(t *testing.T) {
	stub := &stubCompleter{
		hasToken: true,
		content: "```json\n" +
			`{"subTasks": ["  找三个垃圾袋 ", "先清理桌面", "", "最后扫地"], "explanation": "从小处着手"}` +
			"\n```",
	}
	svc := NewService(stub)

	res, err := svc.Decompose(context.Background(), "  收拾房间  ", constant.ModeInattentive)
	require.NoError(t, err)
	assert.Equal(t, []string{"找三个垃圾袋", "先清理桌面", "最后扫地"}, res.SubTasks)
	assert.Equal(t, "从小处着手", res.Explanation)
	assert.Equal(t, "收拾房间", res.OriginalTask)
	assert.Equal(t, "inattentive", res.Subtype)
}

func TestDecomposeAcceptsLowercaseFieldName(t *testing.T) {
	stub := &stubCompleter{
		hasToken: true,
		content:  `{"subtasks": ["一步"], "explanation": "ok"}`,
	}
	svc := NewService(stub)

	res, err := svc.Decompose(context.Background(), "任务", constant.ModeCombined)
	require.NoError(t, err)
	assert.Equal(t, []string{"一步"}, res.SubTasks)
}

func TestDecomposeMalformedResponse(t *testing.T) {
	stub := &stubCompleter{hasToken: true, content: "这不是 JSON"}
	svc := NewService(stub)

	_, err := svc.Decompose(context.Background(), "任务", constant.ModeCombined)
	require.Error(t, err)
	assert.Equal(t, model.ErrorInvalidResponse, model.CodeOf(err))
}

func TestDecomposeEmptySubtaskList(t *testing.T) {
	stub := &stubCompleter{hasToken: true, content: `{"subTasks": ["  ", ""], "explanation": ""}`}
	svc := NewService(stub)

	_, err := svc.Decompose(context.Background(), "任务", constant.ModeCombined)
	require.Error(t, err)
	assert.Equal(t, model.ErrorNoSubtasks, model.CodeOf(err))
}

func TestDecomposeUpstreamError(t *testing.T) {
	stub := &stubCompleter{hasToken: true, err: fmt.Errorf("connection refused")}
	svc := NewService(stub)

	_, err := svc.Decompose(context.Background(), "任务", constant.ModeCombined)
	require.Error(t, err)
	assert.Equal(t, model.ErrorUpstream, model.CodeOf(err))
}

func TestDecomposeInvalidModeFallsBackToCombined(t *testing.T) {
	stub := &stubCompleter{hasToken: true, content: `{"subTasks": ["x"]}`}
	svc := NewService(stub)

	res, err := svc.Decompose(context.Background(), "任务", constant.Mode("nonsense"))
	require.NoError(t, err)
	assert.Equal(t, "combined", res.Subtype)
}

func TestDecomposePromptCarriesPersonaGuidance(t *testing.T) {
	stub := &stubCompleter{hasToken: true, content: `{"subTasks": ["x"]}`}
	svc := NewService(stub)

	_, err := svc.Decompose(context.Background(), "收拾房间", constant.ModeHyperactive)
	require.NoError(t, err)
	assert.Contains(t, stub.lastUser, "收拾房间")
	assert.Contains(t, stub.lastUser, constant.ModePersonaGuidance[constant.ModeHyperactive])
}

// blockingCompleter 卡住上游调用，验证单飞拒绝
type blockingCompleter struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingCompleter) ChatCompletionContent(_ context.Context, _ []openai.ChatCompletionMessage) (string, error) {
	close(b.entered)
	<-b.release
	return `{"subTasks": ["x"]}`, nil
}

func (b *blockingCompleter) HasToken() bool { return true }

func TestDecomposeRejectsSecondInFlightCall(t *testing.T) {
	stub := &blockingCompleter{entered: make(chan struct{}), release: make(chan struct{})}
	svc := NewService(stub)

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Decompose(context.Background(), "任务", constant.ModeCombined)
		firstDone <- err
	}()

	<-stub.entered
	_, err := svc.Decompose(context.Background(), "另一个任务", constant.ModeCombined)
	require.Error(t, err)
	assert.Equal(t, model.ErrorRequestInFlight, model.CodeOf(err))

	close(stub.release)
	require.NoError(t, <-firstDone)
}

func TestCleanJSONResponse(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSONResponse("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSONResponse("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSONResponse("  {\"a\":1}  "))
}
