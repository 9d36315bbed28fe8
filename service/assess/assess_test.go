package assess

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"adhd_task/model"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/suite"
)

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

type ClassifyServiceTest struct {
	suite.Suite

	stub *stubCompleter
	svc  *Service
}

func (c *ClassifyServiceTest) SetupTest() {
	// 每个用例重建服务，避免忙碌标记残留
	c.stub = &stubCompleter{hasToken: true}
	c.svc = NewService(c.stub)
}

func (c *ClassifyServiceTest) TestEmptyAnswersRejected() {
	_, err := c.svc.Classify(context.Background(), nil)
	c.Error(err)
	c.Equal(model.ErrorEmptyAssessment, model.CodeOf(err))
	c.Equal(0, c.stub.calls)
}

func (c *ClassifyServiceTest) TestMissingCredential() {
	c.stub.hasToken = false

	_, err := c.svc.Classify(context.Background(), map[string]string{"q1": "often"})
	c.Error(err)
	c.Equal(model.ErrorNoCredential, model.CodeOf(err))
}

func (c *ClassifyServiceTest) TestHappyPath() {
	c.stub.content = `{"adhdType": "hyperactive", "confidence": "high", "explanation": "Restlessness dominates the answers."}`

	res, err := c.svc.Classify(context.Background(), map[string]string{"q1": "often", "q2": "rarely"})
	c.NoError(err)
	c.Equal("hyperactive", res.AdhdType)
	c.Equal("high", res.Confidence)
	c.Equal("Restlessness dominates the answers.", res.Explanation)
}

func (c *ClassifyServiceTest) TestDefaultsOnInvalidFields() {
	c.stub.content = `{"adhdType": "ADD", "confidence": "certain", "explanation": ""}`

	res, err := c.svc.Classify(context.Background(), map[string]string{"q1": "often"})
	c.NoError(err)
	c.Equal("combined", res.AdhdType)
	c.Equal("medium", res.Confidence)
	c.NotEmpty(res.Explanation)
}

func (c *ClassifyServiceTest) TestNormalizesCase() {
	c.stub.content = `{"adhdType": " Inattentive ", "confidence": "HIGH", "explanation": "ok"}`

	res, err := c.svc.Classify(context.Background(), map[string]string{"q1": "often"})
	c.NoError(err)
	c.Equal("inattentive", res.AdhdType)
	c.Equal("high", res.Confidence)
}

func (c *ClassifyServiceTest) TestMalformedResponse() {
	c.stub.content = "not json"

	_, err := c.svc.Classify(context.Background(), map[string]string{"q1": "often"})
	c.Error(err)
	c.Equal(model.ErrorInvalidResponse, model.CodeOf(err))
}

func (c *ClassifyServiceTest) TestUpstreamError() {
	c.stub.err = fmt.Errorf("timeout")

	_, err := c.svc.Classify(context.Background(), map[string]string{"q1": "often"})
	c.Error(err)
	c.Equal(model.ErrorUpstream, model.CodeOf(err))
}

func (c *ClassifyServiceTest) TestPromptIsDeterministic() {
	c.stub.content = `{"adhdType":"combined","confidence":"low","explanation":"x"}`

	answers := map[string]string{"q3": "c", "q1": "a", "q2": "b"}
	_, err := c.svc.Classify(context.Background(), answers)
	c.NoError(err)

	// 答案按题目键排序后拼接，提示词与 map 遍历顺序无关
	i1 := strings.Index(c.stub.lastUser, "q1: a")
	i2 := strings.Index(c.stub.lastUser, "q2: b")
	i3 := strings.Index(c.stub.lastUser, "q3: c")
	c.True(i1 >= 0 && i2 >= 0 && i3 >= 0)
	c.Less(i1, i2)
	c.Less(i2, i3)
}

func TestClassifyService(t *testing.T) {
	suite.Run(t, new(ClassifyServiceTest))
}
