package grpc

import (
	"context"

	"github.com/DRSN-tech/cafe-kiosk/internal/usecase"
	"github.com/DRSN-tech/cafe-kiosk/pkg/e"
	"github.com/DRSN-tech/cafe-kiosk/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const productServiceName = "cafekiosk.v1.ProductService"

// ProductServiceServer отдаёт витрину киоска по gRPC. Сообщения построены на well-known типах protobuf.
type ProductServiceServer interface {
	GetSellingProducts(ctx context.Context, req *emptypb.Empty) (*structpb.ListValue, error)
}

type ProductService struct {
	prUC   usecase.ProductUC
	logger logger.Logger
}

func NewProductService(prUC usecase.ProductUC, logger logger.Logger) *ProductService {
	return &ProductService{prUC: prUC, logger: logger}
}

func (g *ProductService) GetSellingProducts(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	const op = "grpc.GetSellingProducts"

	products, err := g.prUC.GetSellingProducts(ctx)
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	res, err := toGRPCProducts(products)
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	return res, nil
}

func toGRPCProduct(pr *usecase.ProductInfo) (*structpb.Value, error) {
	s, err := structpb.NewStruct(map[string]any{
		"id":            pr.ID,
		"productNumber": pr.ProductNumber,
		"type":          string(pr.Type),
		"sellingStatus": string(pr.SellingStatus),
		"name":          pr.Name,
		"price":         pr.Price,
	})
	if err != nil {
		return nil, err
	}

	return structpb.NewStructValue(s), nil
}

func toGRPCProducts(prs []usecase.ProductInfo) (*structpb.ListValue, error) {
	values := make([]*structpb.Value, len(prs))
	for i := range prs {
		v, err := toGRPCProduct(&prs[i])
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	return &structpb.ListValue{Values: values}, nil
}

func productServiceGetSellingProductsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(ProductServiceServer).GetSellingProducts(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + productServiceName + "/GetSellingProducts",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProductServiceServer).GetSellingProducts(ctx, req.(*emptypb.Empty))
	}

	return interceptor(ctx, in, info, handler)
}

var productServiceDesc = grpc.ServiceDesc{
	ServiceName: productServiceName,
	HandlerType: (*ProductServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetSellingProducts",
			Handler:    productServiceGetSellingProductsHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cafekiosk/v1/product.proto",
}
