package service

import (
	"testing"

	"lungcare/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailService_Disabled(t *testing.T) {
	s := NewEmailService(&config.EmailConfig{Enabled: false})

	err := s.SendReportEmail("patient@example.com", []byte("%PDF-1.4"), "Diagnosis_Report_20260831_140509.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmail)
}

func TestEmailService_DialFailure(t *testing.T) {
	// 指向一个不存在的 SMTP 服务器，发送失败必须归类为邮件错误
	s := NewEmailService(&config.EmailConfig{
		Enabled:  true,
		Host:     "127.0.0.1",
		Port:     1, // 无人监听
		Username: "noreply@example.com",
		Password: "secret",
		From:     "noreply@example.com",
	})

	err := s.SendReportEmail("patient@example.com", []byte("%PDF-1.4"), "report.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmail)
}
