package api

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lungcare/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubNarrative 固定返回给定叙述的生成器
type stubNarrative struct {
	sections *service.ReportSections
	err      error
}

func (s *stubNarrative) Generate(_ context.Context, _, _ service.ModelFinding) (*service.ReportSections, error) {
	return s.sections, s.err
}

// stubEmail 记录发送参数的邮件发送器
type stubEmail struct {
	err      error
	to       string
	pdf      []byte
	filename string
}

func (s *stubEmail) SendReportEmail(toEmail string, pdf []byte, filename string) error {
	s.to = toEmail
	s.pdf = pdf
	s.filename = filename
	return s.err
}

func newReportRouter(narrative service.NarrativeGenerator, email service.EmailSender) *gin.Engine {
	r := gin.New()
	h := NewReportHandler(narrative, email)
	r.POST("/report/generate-report", h.GenerateReport)
	r.POST("/report/send-report-email", h.SendReportEmail)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, url string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validGenerateRequest() map[string]any {
	return map[string]any{
		"dlResult":       map[string]any{"diagnosis_type": "adenocarcinoma", "confidence": 87.5},
		"medgemmaResult": map[string]any{"diagnosis_type": "normal", "confidence": 92},
		"patient": map[string]any{
			"name":   "Jane Doe",
			"age":    63,
			"gender": "female",
		},
	}
}

func TestReportHandler_GenerateReport(t *testing.T) {
	narrative := &stubNarrative{sections: &service.ReportSections{
		ExecutiveSummary: "An AI screening was performed.",
		RiskAssessment:   "Both models indicate risk.",
		FinalFindings:    "Findings are consistent.",
		NextSteps:        "Consult a clinician.",
		Disclaimer:       "Not a medical diagnosis.",
	}}
	r := newReportRouter(narrative, &stubEmail{})

	w := postJSON(t, r, "/report/generate-report", validGenerateRequest())
	require.Equal(t, http.StatusOK, w.Code)

	var resp GenerateReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// 文件名精确到秒
	assert.True(t, strings.HasPrefix(resp.Filename, "Diagnosis_Report_"))
	assert.True(t, strings.HasSuffix(resp.Filename, ".pdf"))

	// pdf 字段是十六进制编码的 PDF 字节流
	pdfBytes, err := hex.DecodeString(resp.PDF)
	require.NoError(t, err)
	require.True(t, len(pdfBytes) > 4)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))

	body := string(pdfBytes)
	assert.Contains(t, body, "87.50%")
	assert.Contains(t, body, "92.00%")
	// 数字年龄渲染成整数文本
	assert.Contains(t, body, "63")
}

func TestReportHandler_GenerateReport_MissingField(t *testing.T) {
	r := newReportRouter(&stubNarrative{}, &stubEmail{})

	req := validGenerateRequest()
	delete(req, "dlResult")

	w := postJSON(t, r, "/report/generate-report", req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandler_GenerateReport_NarrativeError(t *testing.T) {
	r := newReportRouter(&stubNarrative{
		err: fmt.Errorf("%w: 请求叙述生成失败", service.ErrComposition),
	}, &stubEmail{})

	w := postJSON(t, r, "/report/generate-report", validGenerateRequest())
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestStringifyAge(t *testing.T) {
	assert.Equal(t, "", stringifyAge(nil))
	assert.Equal(t, "63", stringifyAge(float64(63))) // JSON 数字解码成 float64
	assert.Equal(t, "63.5", stringifyAge(63.5))
	assert.Equal(t, "sixty-three", stringifyAge("sixty-three"))
}

func TestReportHandler_SendReportEmail(t *testing.T) {
	email := &stubEmail{}
	r := newReportRouter(&stubNarrative{}, email)

	pdf := []byte("%PDF-1.4 fake")
	w := postJSON(t, r, "/report/send-report-email", map[string]any{
		"email":    "patient@example.com",
		"pdf":      hex.EncodeToString(pdf),
		"filename": "Diagnosis_Report_20260831_140509.pdf",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true}`, w.Body.String())

	assert.Equal(t, "patient@example.com", email.to)
	assert.Equal(t, pdf, email.pdf)
	assert.Equal(t, "Diagnosis_Report_20260831_140509.pdf", email.filename)
}

func TestReportHandler_SendReportEmail_BadHex(t *testing.T) {
	r := newReportRouter(&stubNarrative{}, &stubEmail{})

	w := postJSON(t, r, "/report/send-report-email", map[string]any{
		"email":    "patient@example.com",
		"pdf":      "zz-not-hex",
		"filename": "report.pdf",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "PDF 内容不是合法的十六进制", resp.Error)
}

func TestReportHandler_SendReportEmail_InvalidEmail(t *testing.T) {
	r := newReportRouter(&stubNarrative{}, &stubEmail{})

	w := postJSON(t, r, "/report/send-report-email", map[string]any{
		"email":    "not-an-email",
		"pdf":      hex.EncodeToString([]byte("%PDF")),
		"filename": "report.pdf",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandler_SendReportEmail_SendFailure(t *testing.T) {
	r := newReportRouter(&stubNarrative{}, &stubEmail{
		err: fmt.Errorf("%w: SMTP 连接失败", service.ErrEmail),
	})

	w := postJSON(t, r, "/report/send-report-email", map[string]any{
		"email":    "patient@example.com",
		"pdf":      hex.EncodeToString([]byte("%PDF")),
		"filename": "report.pdf",
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)
}
