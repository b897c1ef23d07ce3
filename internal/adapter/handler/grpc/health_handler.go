package grpc

import (
	"context"
	"time"

	pkgErrors "github.com/wekeepgrowing/launch-revenue/pkg/errors"
	"go.uber.org/zap"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const pingTimeout = 2 * time.Second

// Pinger is a dependency the service cannot serve without
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler answers grpc.health.v1 checks by pinging the product store
type HealthHandler struct {
	healthpb.UnimplementedHealthServer

	serviceName string
	store       Pinger
	logger      *zap.Logger
}

// NewHealthHandler creates a health handler. serviceName and "" are the only known services.
func NewHealthHandler(serviceName string, store Pinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		store:       store,
		logger:      logger,
	}
}

func (h *HealthHandler) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if svc := req.GetService(); svc != "" && svc != h.serviceName {
		return nil, pkgErrors.ToGRPCStatus(pkgErrors.NewAppError(pkgErrors.ErrNotFound, "unknown service: "+svc, nil))
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("Health check failed", zap.Error(err))
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
	}

	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}
