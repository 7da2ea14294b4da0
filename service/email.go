package service

import (
	"fmt"
	"io"
	"time"

	"lungcare/config"

	"gopkg.in/gomail.v2"
)

// EmailSender 邮件发送契约
type EmailSender interface {
	SendReportEmail(toEmail string, pdf []byte, filename string) error
}

// EmailService 邮件服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendReportEmail 把 PDF 报告作为附件发给收件人
// 同步发送一次，不重试，也不做送达确认
func (s *EmailService) SendReportEmail(toEmail string, pdf []byte, filename string) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("%w: 邮件服务未启用，请配置 EMAIL_ENABLED=true", ErrEmail)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Lung Cancer AI Report - %s", time.Now().Format("2006-01-02")))
	m.SetBody("text/plain", "Please find attached your AI diagnosis report.")
	m.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(pdf)
		return err
	}))

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("%w: %v", ErrEmail, err)
	}

	return nil
}
