package grpc

import (
	"errors"

	"github.com/DRSN-tech/cafe-kiosk/pkg/e"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errorCodes = []struct {
	err  error
	code codes.Code
}{
	{e.ErrInvalidTimeWindow, codes.InvalidArgument},
	{e.ErrInvalidOrderStatus, codes.InvalidArgument},
	{e.ErrNoProducts, codes.InvalidArgument},
	{e.ErrProductNotFound, codes.NotFound},
	{e.ErrOrderNotFound, codes.NotFound},
	{e.ErrInvalidStatusTransition, codes.FailedPrecondition},
	{e.ErrProductNumberConflict, codes.Aborted},
}

// GRPCErrorResponse переводит ошибку usecase в статус gRPC. Неизвестные ошибки скрываются за Internal.
func GRPCErrorResponse(err error) error {
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return status.Error(c.code, c.err.Error())
		}
	}

	return status.Error(codes.Internal, e.ErrInternalServerError.Error())
}
