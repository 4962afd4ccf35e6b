package domain

import "time"

// MailSendHistory хранит успешно отправленное письмо. Записи только добавляются.
type MailSendHistory struct {
	ID        int64
	FromEmail string
	ToEmail   string
	Subject   string
	Content   string
	CreatedAt time.Time
}

func NewMailSendHistory(from, to, subject, content string) *MailSendHistory {
	return &MailSendHistory{
		FromEmail: from,
		ToEmail:   to,
		Subject:   subject,
		Content:   content,
	}
}
