package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/DRSN-tech/cafe-kiosk/internal/domain"
	"github.com/DRSN-tech/cafe-kiosk/pkg/e"
	"github.com/DRSN-tech/cafe-kiosk/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statisticsFixture struct {
	orders  *fakeOrderRepo
	client  *fakeMailClient
	history *fakeHistoryRepo
	reports *fakeReportsInfra
	uc      *OrderStatisticsUseCase
}

func newStatisticsFixture(mailResult bool) *statisticsFixture {
	orders := newFakeOrderRepo()
	client := &fakeMailClient{result: mailResult}
	history := &fakeHistoryRepo{}
	reports := newFakeReportsInfra()
	mailUC := NewMailUC(client, history, logger.Nop{})

	return &statisticsFixture{
		orders:  orders,
		client:  client,
		history: history,
		reports: reports,
		uc:      NewOrderStatisticsUC(orders, mailUC, reports, "no-reply@cafekiosk.local", logger.Nop{}),
	}
}

// seedDailyOrders сохраняет заказы вокруг суток 2026-03-05: в окно попадают только 4000 и 5000.
func (f *statisticsFixture) seedDailyOrders(t *testing.T) time.Time {
	t.Helper()

	day := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	p1 := domain.Product{ID: 1, ProductNumber: "001", Price: 1000}
	p2 := domain.Product{ID: 2, ProductNumber: "002", Price: 3000}
	p3 := domain.Product{ID: 3, ProductNumber: "003", Price: 5000}

	paid := func(products []domain.Product, at time.Time) {
		o := domain.NewOrder(products, at.Add(-time.Minute))
		require.NoError(t, o.PaymentCompleted(at))
		f.orders.put(*o)
	}

	paid([]domain.Product{p1, p2}, day.Add(-time.Second))
	paid([]domain.Product{p1, p2}, day)
	paid([]domain.Product{p3}, day.Add(24*time.Hour-time.Second))
	paid([]domain.Product{p1, p2, p3}, day.Add(24*time.Hour))
	f.orders.put(*domain.NewOrder([]domain.Product{p3}, day.Add(time.Hour)))

	return day
}

func TestSendOrderStatisticsMail(t *testing.T) {
	f := newStatisticsFixture(true)
	day := f.seedDailyOrders(t)

	res, err := f.uc.SendOrderStatisticsMail(context.Background(), NewOrderStatisticsReq(day.Add(15*time.Hour), "owner@cafe.kr"))

	require.NoError(t, err)
	assert.Equal(t, day, res.OrderDate)
	assert.Equal(t, 2, res.OrderCount)
	assert.Equal(t, int64(9000), res.TotalPrice)

	require.Len(t, f.client.sent, 1)
	mail := f.client.sent[0]
	assert.Equal(t, "no-reply@cafekiosk.local", mail.FromEmail)
	assert.Equal(t, "owner@cafe.kr", mail.ToEmail)
	assert.Equal(t, "[sales statistics] 2026-03-05", mail.Subject)
	assert.Contains(t, mail.Content, "total sales: 9000 won")
	assert.Len(t, f.history.histories, 1)

	data, ok := f.reports.uploaded[res.ReportKey]
	require.True(t, ok)
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"total", "", "", "9000"}, records[3])
	assert.Empty(t, f.reports.cleaned)
}

func TestSendOrderStatisticsMail_NoOrders(t *testing.T) {
	f := newStatisticsFixture(true)

	res, err := f.uc.SendOrderStatisticsMail(context.Background(), NewOrderStatisticsReq(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "owner@cafe.kr"))

	require.NoError(t, err)
	assert.Zero(t, res.OrderCount)
	assert.Zero(t, res.TotalPrice)
	require.Len(t, f.client.sent, 1)
	assert.Contains(t, f.client.sent[0].Content, "total sales: 0 won")
}

func TestSendOrderStatisticsMail_MailFailure(t *testing.T) {
	f := newStatisticsFixture(false)
	day := f.seedDailyOrders(t)

	_, err := f.uc.SendOrderStatisticsMail(context.Background(), NewOrderStatisticsReq(day, "owner@cafe.kr"))

	assert.ErrorIs(t, err, e.ErrMailSendFailed)
	assert.Empty(t, f.history.histories)
	require.Len(t, f.reports.cleaned, 1)
	assert.Contains(t, f.reports.uploaded, f.reports.cleaned[0])
}

func TestSendOrderStatisticsMail_EmailRequired(t *testing.T) {
	f := newStatisticsFixture(true)

	_, err := f.uc.SendOrderStatisticsMail(context.Background(), NewOrderStatisticsReq(time.Now(), " "))

	assert.ErrorIs(t, err, e.ErrEmailRequired)
	assert.Empty(t, f.client.sent)
}
