package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// PatientInfo 病人信息（仅用于 PDF 渲染，不落库、不校验）
type PatientInfo struct {
	Name              string
	Age               string
	Gender            string
	MedicalConditions string
	PatientHistory    string
}

// 报告配色（灰黑极简风）
var (
	colorInk       = [3]int{17, 24, 39}    // #111827
	colorBody      = [3]int{55, 65, 81}    // #374151
	colorRule      = [3]int{156, 163, 175} // #9ca3af
	colorGrid      = [3]int{209, 213, 219} // #d1d5db
	colorHeaderBG  = [3]int{229, 231, 235} // #e5e7eb
	colorLabelCell = [3]int{243, 244, 246} // #f3f4f6
)

const (
	pageMarginX   = 50.0
	pageMarginTop = 60.0
	contentWidth  = 512.0 // Letter 宽 612pt 减去左右边距
	lineHeight    = 15.0
)

// ReportFilename 生成精确到秒的报告文件名
func ReportFilename(t time.Time) string {
	return fmt.Sprintf("Diagnosis_Report_%s.pdf", t.Format("20060102_150405"))
}

// RenderReportPDF 渲染固定版式的筛查报告
// 版式：居中标题、病人信息表（5 行）、AI 结论表（2 个模型）、五段编号叙述（空段跳过）
func RenderReportPDF(sections *ReportSections, dl, vlm ModelFinding, patient PatientInfo) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetCompression(false)
	pdf.SetMargins(pageMarginX, pageMarginTop, pageMarginX)
	pdf.SetAutoPageBreak(true, pageMarginTop)
	pdf.AddPage()

	// 标题 + 顶部分隔线
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(colorInk[0], colorInk[1], colorInk[2])
	pdf.CellFormat(0, 28, "LUNG CANCER AI DIAGNOSTIC REPORT", "", 1, "C", false, 0, "")
	pdf.Ln(6)
	pdf.SetDrawColor(colorRule[0], colorRule[1], colorRule[2])
	pdf.SetLineWidth(1)
	y := pdf.GetY()
	pdf.Line(pageMarginX, y, pageMarginX+contentWidth, y)
	pdf.Ln(14)

	// 病人信息表
	sectionHeader(pdf, "Patient Information")
	patientRow(pdf, "Name", patient.Name)
	patientRow(pdf, "Age", patient.Age)
	patientRow(pdf, "Gender", patient.Gender)
	patientRow(pdf, "Medical Conditions", patient.MedicalConditions)
	patientRow(pdf, "Patient History", patient.PatientHistory)
	pdf.Ln(18)

	// AI 结论表（置信度按百分数保留两位小数）
	sectionHeader(pdf, "AI Model Findings")
	findingsHeaderRow(pdf)
	findingsRow(pdf, "Deep Learning", dl)
	findingsRow(pdf, "MedGemma", vlm)
	pdf.Ln(18)

	// 叙述段落，字段为空则整段（含标题）不渲染
	narrativeSection(pdf, "1. Executive Summary", sections.ExecutiveSummary)
	narrativeSection(pdf, "2. Risk Assessment (AI-Based Only)", sections.RiskAssessment)
	narrativeSection(pdf, "3. Final Combined Findings", sections.FinalFindings)
	narrativeSection(pdf, "4. Recommended Next Steps", sections.NextSteps)
	narrativeSection(pdf, "5. Disclaimer", sections.Disclaimer)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: PDF 渲染失败: %v", ErrComposition, err)
	}
	return buf.Bytes(), nil
}

// sectionHeader 灰底小节标题
func sectionHeader(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(colorInk[0], colorInk[1], colorInk[2])
	pdf.SetFillColor(colorHeaderBG[0], colorHeaderBG[1], colorHeaderBG[2])
	pdf.CellFormat(0, 22, "  "+title, "", 1, "L", true, 0, "")
	pdf.Ln(4)
}

// patientRow 病人信息表的一行：左列标签灰底右对齐，右列取值可折行
func patientRow(pdf *fpdf.Fpdf, label, value string) {
	const labelWidth = 130.0
	valueWidth := contentWidth - labelWidth

	pdf.SetDrawColor(colorGrid[0], colorGrid[1], colorGrid[2])
	pdf.SetLineWidth(0.5)

	x := pdf.GetX()
	y := pdf.GetY()

	// 先画值列，行高由折行后的内容决定
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(colorInk[0], colorInk[1], colorInk[2])
	pdf.SetXY(x+labelWidth, y)
	pdf.MultiCell(valueWidth, 14, value, "1", "L", false)
	rowHeight := pdf.GetY() - y
	if rowHeight < 14 {
		rowHeight = 14
	}

	// 再补画标签列
	pdf.SetXY(x, y)
	pdf.SetFillColor(colorLabelCell[0], colorLabelCell[1], colorLabelCell[2])
	pdf.CellFormat(labelWidth, rowHeight, label+"  ", "1", 0, "R", true, 0, "")

	pdf.SetXY(x, y+rowHeight)
}

// findingsHeaderRow AI 结论表表头
func findingsHeaderRow(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(colorInk[0], colorInk[1], colorInk[2])
	pdf.SetFillColor(colorHeaderBG[0], colorHeaderBG[1], colorHeaderBG[2])
	pdf.SetDrawColor(colorGrid[0], colorGrid[1], colorGrid[2])
	pdf.SetLineWidth(0.5)
	pdf.CellFormat(130, 18, "Model", "1", 0, "L", true, 0, "")
	pdf.CellFormat(260, 18, "Diagnosis", "1", 0, "L", true, 0, "")
	pdf.CellFormat(122, 18, "Confidence", "1", 1, "L", true, 0, "")
}

// findingsRow AI 结论表数据行
func findingsRow(pdf *fpdf.Fpdf, model string, finding ModelFinding) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(colorInk[0], colorInk[1], colorInk[2])
	pdf.CellFormat(130, 18, model, "1", 0, "L", false, 0, "")
	pdf.CellFormat(260, 18, finding.DiagnosisType, "1", 0, "L", false, 0, "")
	pdf.CellFormat(122, 18, fmt.Sprintf("%.2f%%", finding.Confidence), "1", 1, "L", false, 0, "")
}

// narrativeSection 单段叙述，内容为空则不渲染
func narrativeSection(pdf *fpdf.Fpdf, title, text string) {
	if text == "" {
		return
	}
	sectionHeader(pdf, title)
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(colorBody[0], colorBody[1], colorBody[2])
	pdf.MultiCell(0, lineHeight, text, "", "L", false)
	pdf.Ln(14)
}
