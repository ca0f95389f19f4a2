package service

import (
	"ai_interview_backend/internal/config"
	"bytes"
	"context"
	"html/template"
	"strings"

	"gopkg.in/gomail.v2"
)

type Notifier interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// MailService 通过 SMTP 发送结果邮件
type MailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailService(cfg *config.MailConfig) *MailService {
	return &MailService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (s *MailService) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	return s.dialer.DialAndSend(m)
}

const ResultSubject = "Your Interview Results"

var resultTemplate = template.Must(template.New("result").Parse(`<div style="font-family: Arial, sans-serif; line-height: 1.6;">
  <h2>Hi {{.Name}},</h2>
  <p>Thank you for completing your interview. Here are your results:</p>
  <p><strong>Total Score:</strong> {{.TotalScore}}</p>
  <p><strong>Summary:</strong></p>
  <p>{{range $i, $line := .Lines}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>
  <p>Best regards,<br>The AI Interview Team</p>
</div>`))

type resultView struct {
	Name       string
	TotalScore int
	Lines      []string
}

// RenderResultEmail 渲染结果邮件正文，摘要中的换行转换为 <br>，其余内容转义
func RenderResultEmail(name string, totalScore int, summary string) (string, error) {
	var buf bytes.Buffer
	err := resultTemplate.Execute(&buf, resultView{
		Name:       name,
		TotalScore: totalScore,
		Lines:      strings.Split(strings.ReplaceAll(summary, "\r\n", "\n"), "\n"),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
