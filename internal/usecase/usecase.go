package usecase

import "context"

type ProductUC interface {
	CreateProduct(ctx context.Context, req *CreateProductReq) (*ProductInfo, error)
	GetSellingProducts(ctx context.Context) ([]ProductInfo, error)
}

type OrderUC interface {
	CreateOrder(ctx context.Context, req *CreateOrderReq) (*OrderInfo, error)
	CompletePayment(ctx context.Context, req *CompletePaymentReq) (*OrderInfo, error)
	FindOrders(ctx context.Context, req *FindOrdersReq) ([]OrderInfo, error)
}

type MailUC interface {
	SendMail(ctx context.Context, req *SendMailReq) (bool, error)
}

type OrderStatisticsUC interface {
	SendOrderStatisticsMail(ctx context.Context, req *OrderStatisticsReq) (*OrderStatisticsRes, error)
}
