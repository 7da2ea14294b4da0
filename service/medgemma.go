package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"lungcare/config"
	"lungcare/models"

	openai "github.com/sashabaranov/go-openai"
)

// MedGemmaClassifier 视觉语言模型分类器
// 通过 OpenAI 兼容接口发送 few-shot 提示词 + 待分类图片，
// 模型只被要求回答闭集内的类别名，回答经归一化和闭集校验后才采用
type MedGemmaClassifier struct {
	client                *openai.Client
	model                 string
	placeholderConfidence float64
	references            []config.MedGemmaReference
}

// NewMedGemmaClassifier 创建视觉语言模型分类器
func NewMedGemmaClassifier(cfg *config.MedGemmaConfig) *MedGemmaClassifier {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	return &MedGemmaClassifier{
		client:                openai.NewClientWithConfig(clientConfig),
		model:                 cfg.Model,
		placeholderConfidence: cfg.PlaceholderConfidence,
		references:            cfg.References,
	}
}

// buildPrompt 构建 few-shot 提示词（参考样例来自配置，不在代码里写死路径）
func (m *MedGemmaClassifier) buildPrompt() string {
	var sb strings.Builder
	sb.WriteString("You are an expert histopathologist specializing in lung tissue diagnosis.\n\n")

	if len(m.references) > 0 {
		sb.WriteString("Here are the reference examples and their true categories:\n\n")
		for i, ref := range m.references {
			sb.WriteString(fmt.Sprintf("%d. %s -> %s\n", i+1, ref.Label, ref.ImageURL))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Now analyze the attached lung tissue image.\n\n")
	sb.WriteString("Predict which category it most closely matches:\n")
	sb.WriteString("[normal, adenocarcinoma, squamous cell carcinoma, large cell carcinoma].\n")
	sb.WriteString("Respond only with the category name.")
	return sb.String()
}

// Classify 发送图片做分类，模型回答不在闭集内视为推理失败
func (m *MedGemmaClassifier) Classify(ctx context.Context, image []byte) (*ClassificationResult, error) {
	mime := http.DetectContentType(image)
	dataURL := fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(image))

	resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: m.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an expert histopathologist.",
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: m.buildPrompt()},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURL},
					},
				},
			},
		},
		MaxTokens: 128,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: 请求视觉语言模型失败: %v", ErrInference, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: 视觉语言模型未返回结果", ErrInference)
	}

	// 模型被要求只回答类别名，但生成文本不可全信，必须过闭集校验
	label := models.NormalizeLabel(resp.Choices[0].Message.Content)
	if !models.IsValidLabel(label) {
		return nil, fmt.Errorf("%w: 视觉语言模型返回了闭集之外的标签: %q", ErrInference, resp.Choices[0].Message.Content)
	}

	// 该后端不提供可用的置信度，使用配置的占位值
	return &ClassificationResult{
		Label:      label,
		Confidence: m.placeholderConfidence,
		Model:      m.model,
	}, nil
}
