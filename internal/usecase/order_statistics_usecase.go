package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/cafe-kiosk/internal/domain"
	"github.com/DRSN-tech/cafe-kiosk/pkg/e"
	"github.com/DRSN-tech/cafe-kiosk/pkg/logger"
)

const dateLayout = "2006-01-02"

// OrderStatisticsUseCase считает дневную выручку по оплаченным заказам и рассылает её по почте.
type OrderStatisticsUseCase struct {
	orderRepo    OrderRepository
	mailUC       MailUC
	reportsInfra ReportsInfra
	fromEmail    string
	logger       logger.Logger
}

func NewOrderStatisticsUC(
	orderRepo OrderRepository,
	mailUC MailUC,
	reportsInfra ReportsInfra,
	fromEmail string,
	logger logger.Logger,
) *OrderStatisticsUseCase {
	return &OrderStatisticsUseCase{
		orderRepo:    orderRepo,
		mailUC:       mailUC,
		reportsInfra: reportsInfra,
		fromEmail:    fromEmail,
		logger:       logger,
	}
}

// SendOrderStatisticsMail собирает заказы, оплаченные за сутки req.OrderDate, выгружает CSV-отчёт в S3
// и отправляет письмо с итогом. Если письмо не ушло, отчёт удаляется и возвращается e.ErrMailSendFailed.
func (s *OrderStatisticsUseCase) SendOrderStatisticsMail(ctx context.Context, req *OrderStatisticsReq) (*OrderStatisticsRes, error) {
	const op = "OrderStatisticsUseCase.SendOrderStatisticsMail"

	if strings.TrimSpace(req.Email) == "" {
		return nil, e.Wrap(op, e.ErrEmailRequired)
	}

	from, to := dayWindow(req.OrderDate)
	orders, err := s.orderRepo.FindOrdersBy(ctx, from, to, domain.OrderStatusPaymentCompleted)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	var total int64
	for _, o := range orders {
		total += o.TotalPrice
	}

	data, err := buildSalesReport(orders)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	uploaded, err := s.reportsInfra.UploadReport(ctx, NewUploadReportReq(from, data))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	subject := fmt.Sprintf("[sales statistics] %s", from.Format(dateLayout))
	content := fmt.Sprintf("total sales: %d won (orders: %d, report: %s)", total, len(orders), uploaded.ReportKey)

	sent, err := s.mailUC.SendMail(ctx, NewSendMailReq(s.fromEmail, req.Email, subject, content))
	if err != nil || !sent {
		s.logger.Warnf("Cleaning up sales report after mail failure. report_key: %s", uploaded.ReportKey)
		s.reportsInfra.CleanupReports([]string{uploaded.ReportKey})

		if err != nil {
			return nil, e.Wrap(op, err)
		}
		return nil, e.Wrap(op, e.ErrMailSendFailed)
	}

	return &OrderStatisticsRes{
		OrderDate:  from,
		OrderCount: len(orders),
		TotalPrice: total,
		ReportKey:  uploaded.ReportKey,
	}, nil
}

// dayWindow возвращает полуинтервал [начало дня, начало следующего дня) в часовом поясе date.
func dayWindow(date time.Time) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}

// buildSalesReport формирует CSV: по строке на заказ и итоговую строку.
func buildSalesReport(orders []domain.Order) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"order_id", "payment_completed_at", "items", "total_price"}); err != nil {
		return nil, err
	}

	var total int64
	for _, o := range orders {
		completedAt := ""
		if o.PaymentCompletedAt != nil {
			completedAt = o.PaymentCompletedAt.Format(time.RFC3339)
		}

		record := []string{
			strconv.FormatInt(o.ID, 10),
			completedAt,
			strconv.Itoa(len(o.Products)),
			strconv.FormatInt(o.TotalPrice, 10),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
		total += o.TotalPrice
	}

	if err := w.Write([]string{"total", "", "", strconv.FormatInt(total, 10)}); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
