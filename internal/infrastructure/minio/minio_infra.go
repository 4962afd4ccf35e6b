package minio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DRSN-tech/cafe-kiosk/internal/cfg"
	"github.com/DRSN-tech/cafe-kiosk/internal/domain"
	"github.com/DRSN-tech/cafe-kiosk/internal/usecase"
	"github.com/DRSN-tech/cafe-kiosk/pkg/e"
	"github.com/DRSN-tech/cafe-kiosk/pkg/jitter"
	"github.com/DRSN-tech/cafe-kiosk/pkg/logger"
	"github.com/google/uuid"
)

const (
	reportContentType     = "text/csv"
	cleanupAttempts       = 3
	defaultCleanupBackoff = time.Second
	maxCleanupBackoff     = 10 * time.Second
)

// MinioInfrastructure управляет выгрузкой и очисткой отчётов о продажах в MinIO.
type MinioInfrastructure struct {
	reportRepo     usecase.ReportRepository
	cfg            *cfg.MinIOCfg
	logger         logger.Logger
	shutdownCtx    context.Context
	wg             sync.WaitGroup
	cleanupBackoff time.Duration
}

func NewMinioInfrastructure(reportRepo usecase.ReportRepository, cfg *cfg.MinIOCfg, logger logger.Logger, shutdownCtx context.Context) *MinioInfrastructure {
	return &MinioInfrastructure{
		reportRepo:     reportRepo,
		cfg:            cfg,
		logger:         logger,
		shutdownCtx:    shutdownCtx,
		cleanupBackoff: defaultCleanupBackoff,
	}
}

// UploadReport сохраняет CSV-отчёт за день под уникальным ключом sales/YYYY/MM/DD/<uuid>.csv.
func (m *MinioInfrastructure) UploadReport(ctx context.Context, req *usecase.UploadReportReq) (*usecase.UploadReportRes, error) {
	const op = "MinioInfrastructure.UploadReport"

	objKey := reportKey(req.Date, uuid.NewString())
	report := domain.NewSalesReport(m.cfg.BucketName, objKey, req.Date, req.Data, reportContentType)

	key, err := m.reportRepo.Upload(ctx, report)
	if err != nil {
		return nil, e.Wrap(op, fmt.Errorf("upload %s failed: %w", objKey, err))
	}

	return usecase.NewUploadReportRes(key), nil
}

// CleanupReports запускает фоновую очистку указанных ключей MinIO
func (m *MinioInfrastructure) CleanupReports(keys []string) {
	if len(keys) == 0 {
		return
	}
	m.wg.Add(1)
	go m.cleanupUploadedKeys(keys)
}

// cleanupUploadedKeys удаляет указанные объекты из MinIO с экспоненциальной задержкой и jitter.
func (m *MinioInfrastructure) cleanupUploadedKeys(keys []string) {
	defer m.wg.Done()
	const op = "MinioInfrastructure.cleanupUploadedKeys"
	m.logger.Infof("%s: cleaning up %d report(s)", op, len(keys))

	ctx, cancel := context.WithTimeout(m.shutdownCtx, 30*time.Second)
	defer cancel()

	for _, key := range keys {
		for attempt := 0; attempt < cleanupAttempts; attempt++ {
			err := m.reportRepo.Delete(ctx, key)
			if err == nil {
				break
			}

			if attempt == cleanupAttempts-1 {
				m.logger.Errorf(err, "%s: giving up on key=%s", op, key)
				break
			}

			sleepTime := jitter.ExponentialBackoff(m.cleanupBackoff, maxCleanupBackoff, attempt, jitter.DefaultJitter)
			select {
			case <-time.After(sleepTime):
			case <-ctx.Done():
				m.logger.Warnf("cleanup interrupted by shutdown, key=%v", key)
				return
			}
		}
	}
}

// WaitForCleanup ожидает завершения всех фоновых задач очистки с учётом таймаута завершения приложения.
func (m *MinioInfrastructure) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("minio cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}

func reportKey(date time.Time, id string) string {
	return fmt.Sprintf("sales/%s/%s.csv", date.Format("2006/01/02"), id)
}
