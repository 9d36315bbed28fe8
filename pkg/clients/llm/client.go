package llm

import (
	"adhd_task/config"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

const clientNameChatModel = "chat_model"

// Client 大模型客户端，OpenAI 兼容接口，地址/模型/温度走配置
// 凭证可在运行期被持久化槽位里的值覆盖
type Client struct {
	config *Config

	mu sync.RWMutex
}

var (
	instance *Client
	once     sync.Once
)

func GetInstance() *Client {
	once.Do(func() {
		conf := &Config{
			Addr:        config.GetInstance().GetString(config.ClientChatModelAddr),
			Model:       config.GetInstance().GetString(config.ClientChatModelModel),
			Token:       config.GetModelAPIKey(),
			Temperature: cast.ToFloat32(config.GetInstance().GetFloat64(config.ClientChatModelTemperature)),
			MaxTokens:   config.GetInstance().GetInt(config.ClientChatModelMaxTokens),
		}
		instance = &Client{config: conf}
	})
	return instance
}

// NewClient 测试或多实例场景直接构造
func NewClient(conf *Config) *Client {
	return &Client{config: conf}
}

// HasToken 上游凭证是否已配置
func (c *Client) HasToken() bool {
	return c.token() != ""
}

// SetToken 运行期更新凭证（凭证槽位写入后调用）
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.Token = token
}

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config.Token
}

// @Description 封装非流式调用，直接返回完整结果
// @Param ctx context.Context
// @Param messages []openai.ChatCompletionMessage
// @Success *openai.ChatCompletionResponse
// @Success error
func (c *Client) ChatCompletion(ctx context.Context, messages []openai.ChatCompletionMessage) (*openai.ChatCompletionResponse, error) {
	defaultReq := openai.DefaultConfig(c.token())
	if c.config.Addr != "" {
		defaultReq.BaseURL = c.config.Addr
	}

	client := openai.NewClientWithConfig(defaultReq)

	request := openai.ChatCompletionRequest{
		Model:       c.config.Model,
		Messages:    messages,
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
		Stream:      false,
	}

	// debug 级别时输出完整请求参数，直接写标准输出避免日志系统转义换行
	if log.GetLevel() == log.DebugLevel {
		if requestJson, err := json.MarshalIndent(request, "", "  "); err == nil {
			_, _ = fmt.Fprintf(os.Stdout, "[DEBUG] %s chat completion request:\n%s\n", clientNameChatModel, string(requestJson))
		}
	}

	response, err := client.CreateChatCompletion(ctx, request)
	if err != nil {
		log.Errorf("%s chat completion error: %v", clientNameChatModel, err)
		return nil, err
	}

	return &response, nil
}

// @Description 封装非流式调用，只返回响应内容字符串
// @Param ctx context.Context
// @Param messages []openai.ChatCompletionMessage
// @Success string
// @Success error
func (c *Client) ChatCompletionContent(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	response, err := c.ChatCompletion(ctx, messages)
	if err != nil {
		return "", err
	}

	if response == nil {
		log.Errorf("%s chat completion response is nil", clientNameChatModel)
		return "", fmt.Errorf("chat completion response is nil")
	}

	if len(response.Choices) == 0 {
		log.Errorf("%s chat completion response has no choices", clientNameChatModel)
		return "", fmt.Errorf("chat completion response has no choices")
	}

	content := response.Choices[0].Message.Content
	if content == "" {
		log.Warnf("%s chat completion response content is empty", clientNameChatModel)
	}

	return content, nil
}
