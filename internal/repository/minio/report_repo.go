package minio

import (
	"bytes"
	"context"

	"github.com/DRSN-tech/cafe-kiosk/internal/cfg"
	"github.com/DRSN-tech/cafe-kiosk/internal/domain"
	"github.com/DRSN-tech/cafe-kiosk/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// ReportRepo реализует хранилище отчётов о продажах поверх MinIO.
type ReportRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewReportRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *ReportRepo {
	return &ReportRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Upload загружает отчёт в бакет и возвращает ключ объекта.
func (r *ReportRepo) Upload(ctx context.Context, report *domain.SalesReport) (string, error) {
	reader := bytes.NewReader(report.Data)

	info, err := r.mc.PutObject(ctx, r.bucket(report), report.ObjectKey, reader, report.Size, minio.PutObjectOptions{
		ContentType: report.ContentType,
		UserMetadata: map[string]string{
			"report-date": report.Date.Format("2006-01-02"),
		},
	})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return info.Key, nil
}

// Delete удаляет объект из MinIO по указанному ключу.
func (r *ReportRepo) Delete(ctx context.Context, key string) error {
	if err := r.mc.RemoveObject(ctx, r.cfg.BucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (r *ReportRepo) bucket(report *domain.SalesReport) string {
	if report.Bucket != "" {
		return report.Bucket
	}
	return r.cfg.BucketName
}
