package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"lungcare/config"

	openai "github.com/sashabaranov/go-openai"
)

// ModelFinding 报告引用的单个模型结论（置信度为 0-100 的百分数）
type ModelFinding struct {
	DiagnosisType string
	Confidence    float64
}

// ReportSections 报告的五段叙述文本
type ReportSections struct {
	ExecutiveSummary string `json:"executive_summary"`
	RiskAssessment   string `json:"risk_assessment"`
	FinalFindings    string `json:"final_findings"`
	NextSteps        string `json:"next_steps"`
	Disclaimer       string `json:"disclaimer"`
}

// NarrativeGenerator 叙述生成器契约
type NarrativeGenerator interface {
	Generate(ctx context.Context, dl, vlm ModelFinding) (*ReportSections, error)
}

// NarrativeService 通过 OpenAI 兼容接口生成报告叙述
type NarrativeService struct {
	client *openai.Client
	model  string
}

// NewNarrativeService 创建叙述生成服务
func NewNarrativeService(cfg *config.ReportConfig) *NarrativeService {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	return &NarrativeService{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}
}

// buildNarrativePrompt 构建叙述生成提示词，置信度按百分数保留两位小数
func buildNarrativePrompt(dl, vlm ModelFinding) string {
	return fmt.Sprintf(`You are helping generate the narrative text for a lung cancer AI screening report.

Return ONLY valid JSON with this exact structure (no extra text):

{
  "executive_summary": "...",
  "risk_assessment": "...",
  "final_findings": "...",
  "next_steps": "...",
  "disclaimer": "..."
}

Rules:
- Executive summary: general overview of the AI screening. Do NOT state a diagnosis.
- Risk assessment & final findings: base ONLY on these AI model outputs, not on the executive summary or patient data:
   - Deep Learning model diagnosis: "%s" (confidence %.2f%%)
   - MedGemma model diagnosis: "%s" (confidence %.2f%%)
- Do not invent diseases, probabilities, or treatment plans.
- Next steps: general, conservative clinical suggestions, reminding that only a clinician can diagnose.
- Disclaimer: clearly state that this report is AI-generated support information and not a medical diagnosis.
- Keep language clear and professional, suitable for a medical report.`,
		dl.DiagnosisType, dl.Confidence,
		vlm.DiagnosisType, vlm.Confidence)
}

// ParseNarrativeSections 解析模型返回的 JSON 叙述
// 解析失败时降级：原文整体放进 executive_summary，其余四段留空（不重试）
func ParseNarrativeSections(raw string) *ReportSections {
	raw = strings.TrimSpace(raw)

	var sections ReportSections
	if err := json.Unmarshal([]byte(raw), &sections); err != nil {
		return &ReportSections{ExecutiveSummary: raw}
	}
	return &sections
}

// Generate 生成五段叙述
func (s *NarrativeService) Generate(ctx context.Context, dl, vlm ModelFinding) (*ReportSections, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buildNarrativePrompt(dl, vlm)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: 请求叙述生成失败: %v", ErrComposition, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: 叙述生成未返回结果", ErrComposition)
	}

	return ParseNarrativeSections(resp.Choices[0].Message.Content), nil
}
