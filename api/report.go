package api

import (
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"lungcare/service"

	"github.com/gin-gonic/gin"
)

// ReportHandler 报告生成与发送处理器
type ReportHandler struct {
	narrative service.NarrativeGenerator
	email     service.EmailSender
}

// NewReportHandler 创建报告处理器
func NewReportHandler(narrative service.NarrativeGenerator, email service.EmailSender) *ReportHandler {
	return &ReportHandler{narrative: narrative, email: email}
}

// ModelResultPayload 单个模型的结论（confidence 为 0-100 百分数）
type ModelResultPayload struct {
	DiagnosisType string  `json:"diagnosis_type" binding:"required"`
	Confidence    float64 `json:"confidence" binding:"gte=0,lte=100"`
}

// PatientPayload 病人信息（自由文本，不做校验、不落库）
type PatientPayload struct {
	Name              string `json:"name"`
	Age               any    `json:"age"` // 前端可能传数字或字符串，按原样转成文本渲染
	Gender            string `json:"gender"`
	MedicalConditions string `json:"medical_conditions"`
	PatientHistory    string `json:"patient_history"`
}

// GenerateReportRequest 生成报告请求
type GenerateReportRequest struct {
	DLResult       *ModelResultPayload `json:"dlResult" binding:"required"`
	MedGemmaResult *ModelResultPayload `json:"medgemmaResult" binding:"required"`
	Patient        *PatientPayload     `json:"patient" binding:"required"`
}

// GenerateReportResponse 生成报告响应
type GenerateReportResponse struct {
	PDF      string `json:"pdf"` // 十六进制编码的 PDF 字节流
	Filename string `json:"filename"`
}

// GenerateReport 生成 PDF 筛查报告
// @Summary 生成筛查报告
// @Description 根据两个模型的结论和病人信息生成五段叙述并渲染 PDF，任一步失败则整体失败
// @Tags 报告
// @Accept json
// @Produce json
// @Param request body GenerateReportRequest true "两个模型结论 + 病人信息"
// @Success 200 {object} GenerateReportResponse "十六进制 PDF + 文件名"
// @Failure 400 {object} ErrorResponse "请求体不合法"
// @Failure 500 {object} ErrorResponse "叙述生成或渲染失败"
// @Router /report/generate-report [post]
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	var req GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	dl := service.ModelFinding{
		DiagnosisType: req.DLResult.DiagnosisType,
		Confidence:    req.DLResult.Confidence,
	}
	vlm := service.ModelFinding{
		DiagnosisType: req.MedGemmaResult.DiagnosisType,
		Confidence:    req.MedGemmaResult.Confidence,
	}

	sections, err := h.narrative.Generate(c.Request.Context(), dl, vlm)
	if err != nil {
		FailWithError(c, err, "报告叙述生成失败")
		return
	}

	patient := service.PatientInfo{
		Name:              req.Patient.Name,
		Age:               stringifyAge(req.Patient.Age),
		Gender:            req.Patient.Gender,
		MedicalConditions: req.Patient.MedicalConditions,
		PatientHistory:    req.Patient.PatientHistory,
	}

	pdfBytes, err := service.RenderReportPDF(sections, dl, vlm, patient)
	if err != nil {
		FailWithError(c, err, "报告渲染失败")
		return
	}

	c.JSON(http.StatusOK, GenerateReportResponse{
		PDF:      hex.EncodeToString(pdfBytes),
		Filename: service.ReportFilename(time.Now()),
	})
}

// stringifyAge 把任意类型的年龄转成渲染文本
func stringifyAge(age any) string {
	if age == nil {
		return ""
	}
	if f, ok := age.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%v", age)
}

// SendReportEmailRequest 发送报告邮件请求
type SendReportEmailRequest struct {
	Email    string `json:"email" binding:"required,email"`
	PDF      string `json:"pdf" binding:"required"` // 十六进制编码的 PDF 字节流
	Filename string `json:"filename" binding:"required"`
}

// SendReportEmail 把报告 PDF 发送到指定邮箱
// @Summary 发送报告邮件
// @Description 解码十六进制 PDF 并作为附件发送，同步发送一次不重试
// @Tags 报告
// @Accept json
// @Produce json
// @Param request body SendReportEmailRequest true "收件人 + PDF"
// @Success 200 {object} map[string]bool "发送成功"
// @Failure 400 {object} ErrorResponse "请求体不合法"
// @Failure 500 {object} ErrorResponse "发送失败"
// @Router /report/send-report-email [post]
func (h *ReportHandler) SendReportEmail(c *gin.Context) {
	var req SendReportEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	pdfBytes, err := hex.DecodeString(req.PDF)
	if err != nil {
		BadRequest(c, "PDF 内容不是合法的十六进制")
		return
	}

	if err := h.email.SendReportEmail(req.Email, pdfBytes, req.Filename); err != nil {
		FailWithError(c, err, "邮件发送失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
