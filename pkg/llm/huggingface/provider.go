// Package huggingface 提供 HuggingFace Inference API 供应商实现。
package huggingface

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/NikhilAnand12/BOT-GPT/pkg/llm"
	"github.com/NikhilAnand12/BOT-GPT/pkg/utils/httpclient"
	"github.com/NikhilAnand12/BOT-GPT/pkg/utils/json"
)

// ProviderName 是 HuggingFace 供应商的名称标识符。
const ProviderName = "huggingface"

func init() {
	llm.RegisterProvider(ProviderName, NewProvider)
}

// Config HuggingFace 供应商配置。
type Config struct {
	// BaseURL API 基础地址。
	BaseURL string `json:"base_url" mapstructure:"base_url"`

	// APIKey HuggingFace API Token，必填。
	APIKey string `json:"api_key" mapstructure:"api_key"`

	// EmbedModel 用于生成嵌入的模型 ID。
	EmbedModel string `json:"embed_model" mapstructure:"embed_model"`

	// ChatModel 用于对话的模型 ID。
	ChatModel string `json:"chat_model" mapstructure:"chat_model"`

	// Timeout 请求超时时间。
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`

	// WaitForModel 模型冷启动时是否等待加载完成。
	WaitForModel bool `json:"wait_for_model" mapstructure:"wait_for_model"`
}

// DefaultConfig 返回默认配置。
func DefaultConfig() *Config {
	return &Config{
		BaseURL:      "https://api-inference.huggingface.co",
		EmbedModel:   "sentence-transformers/all-MiniLM-L6-v2",
		ChatModel:    "mistralai/Mistral-7B-Instruct-v0.2",
		Timeout:      120 * time.Second,
		WaitForModel: true,
	}
}

// Provider HuggingFace 供应商实现。
type Provider struct {
	config *Config
	client *httpclient.Client
}

// NewProvider 从配置 map 创建 HuggingFace 供应商。
func NewProvider(configMap map[string]any) (llm.Provider, error) {
	cfg := DefaultConfig()

	stringKeys := map[string]*string{
		"base_url":    &cfg.BaseURL,
		"api_key":     &cfg.APIKey,
		"embed_model": &cfg.EmbedModel,
		"chat_model":  &cfg.ChatModel,
	}
	for key, target := range stringKeys {
		if v, ok := configMap[key].(string); ok && v != "" {
			*target = v
		}
	}
	if v, ok := configMap["timeout"].(time.Duration); ok && v > 0 {
		cfg.Timeout = v
	}
	if v, ok := configMap["wait_for_model"].(bool); ok {
		cfg.WaitForModel = v
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("huggingface: api_key is required")
	}

	return NewProviderWithConfig(cfg), nil
}

// NewProviderWithConfig 使用结构化配置创建 HuggingFace 供应商。
func NewProviderWithConfig(cfg *Config) *Provider {
	return &Provider{
		config: cfg,
		client: httpclient.NewClient(cfg.Timeout),
	}
}

// Name 返回供应商名称。
func (p *Provider) Name() string {
	return ProviderName
}

type featureExtractionRequest struct {
	Inputs  []string        `json:"inputs"`
	Options *requestOptions `json:"options,omitempty"`
}

type requestOptions struct {
	WaitForModel bool `json:"wait_for_model,omitempty"`
}

// Embed 通过 Feature Extraction API 为一批文本生成向量嵌入。
func (p *Provider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	reqBody := featureExtractionRequest{Inputs: texts}
	if p.config.WaitForModel {
		reqBody.Options = &requestOptions{WaitForModel: true}
	}

	url := fmt.Sprintf("%s/pipeline/feature-extraction/%s", p.config.BaseURL, p.config.EmbedModel)
	req, err := p.newRequest(ctx, url, reqBody)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.DoRequest(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("huggingface embed failed with status %d: %s", resp.StatusCode, string(raw))
	}

	return decodeEmbeddings(raw)
}

// decodeEmbeddings 解析嵌入响应。API 可能返回句子级向量 [][]float32，
// 也可能返回 token 级向量 [][][]float32，后者取平均池化。
func decodeEmbeddings(raw []byte) ([][]float32, error) {
	var sentenceVectors [][]float32
	if err := json.Unmarshal(raw, &sentenceVectors); err == nil {
		return sentenceVectors, nil
	}

	var tokenVectors [][][]float32
	if err := json.Unmarshal(raw, &tokenVectors); err != nil {
		return nil, fmt.Errorf("huggingface: unexpected embedding response: %w", err)
	}

	pooled := make([][]float32, len(tokenVectors))
	for i, tokens := range tokenVectors {
		if len(tokens) == 0 {
			continue
		}
		vec := make([]float32, len(tokens[0]))
		for _, token := range tokens {
			for j, v := range token {
				vec[j] += v
			}
		}
		for j := range vec {
			vec[j] /= float32(len(tokens))
		}
		pooled[i] = vec
	}
	return pooled, nil
}

// EmbedSingle 为单个文本生成向量嵌入。
func (p *Provider) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := p.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("huggingface: no embedding returned")
	}
	return embeddings[0], nil
}

type textGenerationRequest struct {
	Inputs     string          `json:"inputs"`
	Parameters *textGenParams  `json:"parameters,omitempty"`
	Options    *requestOptions `json:"options,omitempty"`
}

type textGenParams struct {
	MaxNewTokens   int     `json:"max_new_tokens,omitempty"`
	Temperature    float64 `json:"temperature,omitempty"`
	TopP           float64 `json:"top_p,omitempty"`
	DoSample       bool    `json:"do_sample,omitempty"`
	ReturnFullText bool    `json:"return_full_text,omitempty"`
}

type textGenerationResponse struct {
	GeneratedText string `json:"generated_text"`
}

// Chat 将多轮消息展开为指令模板后生成回复。
func (p *Provider) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	return p.generate(ctx, renderPrompt(messages))
}

// Generate 根据提示生成文本。
func (p *Provider) Generate(ctx context.Context, prompt string, systemPrompt string) (string, error) {
	if systemPrompt != "" {
		prompt = fmt.Sprintf("[INST] %s [/INST]\n\n%s", systemPrompt, prompt)
	}
	return p.generate(ctx, prompt)
}

func (p *Provider) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := textGenerationRequest{
		Inputs: prompt,
		Parameters: &textGenParams{
			MaxNewTokens:   1024,
			Temperature:    0.7,
			TopP:           0.95,
			DoSample:       true,
			ReturnFullText: false,
		},
	}
	if p.config.WaitForModel {
		reqBody.Options = &requestOptions{WaitForModel: true}
	}

	url := fmt.Sprintf("%s/models/%s", p.config.BaseURL, p.config.ChatModel)
	req, err := p.newRequest(ctx, url, reqBody)
	if err != nil {
		return "", err
	}

	var responses []textGenerationResponse
	if err := p.client.DoJSON(req, &responses); err != nil {
		return "", err
	}
	if len(responses) == 0 {
		return "", fmt.Errorf("huggingface: empty generation response")
	}

	return responses[0].GeneratedText, nil
}

// renderPrompt 将消息序列渲染为 Mistral 指令模板。
func renderPrompt(messages []llm.Message) string {
	var b strings.Builder
	for _, msg := range messages {
		switch msg.Role {
		case llm.RoleSystem, llm.RoleUser:
			fmt.Fprintf(&b, "[INST] %s [/INST]\n", msg.Content)
		case llm.RoleAssistant:
			b.WriteString(msg.Content)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (p *Provider) newRequest(ctx context.Context, url string, body any) (*http.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("huggingface: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("huggingface: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	return req, nil
}
