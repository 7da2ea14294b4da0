package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSections() *ReportSections {
	return &ReportSections{
		ExecutiveSummary: "An AI screening of the uploaded lung tissue image was performed.",
		RiskAssessment:   "Both models indicate elevated risk.",
		FinalFindings:    "The two models produced consistent findings.",
		NextSteps:        "Consult a qualified clinician for confirmation.",
		Disclaimer:       "This report is AI-generated support information.",
	}
}

func TestReportFilename(t *testing.T) {
	ts := time.Date(2026, 8, 31, 14, 5, 9, 0, time.UTC)
	assert.Equal(t, "Diagnosis_Report_20260831_140509.pdf", ReportFilename(ts))
}

func TestRenderReportPDF(t *testing.T) {
	data, err := RenderReportPDF(testSections(),
		ModelFinding{DiagnosisType: "adenocarcinoma", Confidence: 87.5},
		ModelFinding{DiagnosisType: "normal", Confidence: 92},
		PatientInfo{Name: "Jane Doe", Age: "63", Gender: "female"},
	)
	require.NoError(t, err)

	body := string(data)
	assert.True(t, len(data) > 0)
	assert.Equal(t, "%PDF", body[:4])

	// 固定版式的标题与小节标题
	assert.Contains(t, body, "LUNG CANCER AI DIAGNOSTIC REPORT")
	assert.Contains(t, body, "Patient Information")
	assert.Contains(t, body, "AI Model Findings")
	assert.Contains(t, body, "1. Executive Summary")
	assert.Contains(t, body, "2. Risk Assessment (AI-Based Only)")
	assert.Contains(t, body, "3. Final Combined Findings")
	assert.Contains(t, body, "4. Recommended Next Steps")
	assert.Contains(t, body, "5. Disclaimer")

	// 置信度按百分数保留两位小数
	assert.Contains(t, body, "87.50%")
	assert.Contains(t, body, "92.00%")
	assert.Contains(t, body, "adenocarcinoma")
	assert.Contains(t, body, "normal")
}

func TestRenderReportPDF_SkipsEmptySections(t *testing.T) {
	sections := testSections()
	sections.RiskAssessment = ""
	sections.NextSteps = ""

	data, err := RenderReportPDF(sections, ModelFinding{}, ModelFinding{}, PatientInfo{})
	require.NoError(t, err)

	body := string(data)
	// 空段连标题都不渲染
	assert.NotContains(t, body, "2. Risk Assessment (AI-Based Only)")
	assert.NotContains(t, body, "4. Recommended Next Steps")
	assert.Contains(t, body, "1. Executive Summary")
	assert.Contains(t, body, "5. Disclaimer")
}

func TestRenderReportPDF_FallbackSections(t *testing.T) {
	// 叙述降级后的形态：只有 executive_summary 有内容
	sections := ParseNarrativeSections("narrative service returned plain text")

	data, err := RenderReportPDF(sections,
		ModelFinding{DiagnosisType: "adenocarcinoma", Confidence: 87.5},
		ModelFinding{DiagnosisType: "normal", Confidence: 92},
		PatientInfo{Name: "Test"},
	)
	require.NoError(t, err)

	body := string(data)
	assert.Contains(t, body, "narrative service returned plain text")
	assert.Contains(t, body, "1. Executive Summary")
	assert.NotContains(t, body, "5. Disclaimer")
	// 结论表不受叙述降级影响
	assert.Contains(t, body, "87.50%")
}
