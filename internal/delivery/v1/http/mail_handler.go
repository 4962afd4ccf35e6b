package http

import (
	"net/http"

	"github.com/DRSN-tech/cafe-kiosk/internal/usecase"
	"github.com/DRSN-tech/cafe-kiosk/pkg/logger"
)

type MailHandler struct {
	mailUsecase usecase.MailUC
	logger      logger.Logger
}

func NewMailHandler(mailUsecase usecase.MailUC, logger logger.Logger) *MailHandler {
	return &MailHandler{mailUsecase: mailUsecase, logger: logger}
}

// sendMail
//
//	@Summary		Отправка письма
//	@Description	Одна попытка отправки. История сохраняется только при успехе
//	@Tags			mail
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SendMailRequest	true	"Письмо"
//	@Success		200		{object}	ApiResponse{data=SendMailResponse}
//	@Router			/mail/send [post]
func (m *MailHandler) sendMail(w http.ResponseWriter, r *http.Request) {
	var req SendMailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		m.logger.Warnf("%d: %v", http.StatusBadRequest, err)
		WriteError(w, err)
		return
	}

	sent, err := m.mailUsecase.SendMail(r.Context(), usecase.NewSendMailReq(req.FromEmail, req.ToEmail, req.Subject, req.Content))
	if err != nil {
		m.logger.Errorf(err, "failed to send mail")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, SendMailResponse{Sent: sent})
}
