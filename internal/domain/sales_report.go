package domain

import "time"

// SalesReport описывает выгруженный в S3 отчёт о продажах за день
type SalesReport struct {
	ObjectKey   string
	Bucket      string
	Date        time.Time
	Data        []byte
	Size        int64
	ContentType string
}

func NewSalesReport(bucket, objectKey string, date time.Time, data []byte, contentType string) *SalesReport {
	return &SalesReport{
		ObjectKey:   objectKey,
		Bucket:      bucket,
		Date:        date,
		Data:        data,
		Size:        int64(len(data)),
		ContentType: contentType,
	}
}
