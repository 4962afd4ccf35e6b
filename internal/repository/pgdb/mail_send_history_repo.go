package pgdb

import (
	"context"

	"github.com/DRSN-tech/cafe-kiosk/internal/domain"
	"github.com/DRSN-tech/cafe-kiosk/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/cafe-kiosk/pkg/e"
	"github.com/DRSN-tech/cafe-kiosk/pkg/tr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

type MailSendHistoryRepo struct {
	pool *pgxpool.Pool
	conv converter.MailSendHistoryConverter
}

func NewMailSendHistoryRepo(pool *pgxpool.Pool, conv converter.MailSendHistoryConverter) *MailSendHistoryRepo {
	return &MailSendHistoryRepo{pool: pool, conv: conv}
}

// Create добавляет запись об отправленном письме.
func (m *MailSendHistoryRepo) Create(ctx context.Context, history *domain.MailSendHistory) (*domain.MailSendHistory, error) {
	model := m.conv.ToModel(history)
	query := `
		INSERT INTO mail_send_history (from_email, to_email, subject, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at;
	`

	if err := tr.Executor(ctx, m.pool).QueryRow(ctx, query,
		model.FromEmail,
		model.ToEmail,
		model.Subject,
		model.Content,
	).Scan(&model.ID, &model.CreatedAt); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return m.conv.ToEntity(model), nil
}
