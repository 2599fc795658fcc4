package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/musicstore/orders-api/internal/orders/application/types"
	"github.com/musicstore/orders-api/internal/orders/domain"
	"github.com/musicstore/orders-api/internal/orders/ports"
)

const tracerName = "github.com/musicstore/orders-api/internal/orders/adapters/observability/service"

// Service decorates the orders application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// GetOrder loads a single order view with instrumentation.
func (s *Service) GetOrder(ctx context.Context, key types.OrderKey) (*types.OrderRepresentation, error) {
	ctx, span := s.startSpan(ctx, "Service.GetOrder",
		attribute.String("order.customer_id", key.CustomerID),
		attribute.String("order.order_id", key.OrderID),
	)
	defer span.End()

	s.logInfo(ctx, "loading order", slog.String("customer.id", key.CustomerID), slog.String("order.id", key.OrderID))
	result, err := s.inner.GetOrder(ctx, key)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("customer.id", key.CustomerID), slog.String("order.id", key.OrderID))
	}
	if result != nil {
		s.logInfo(ctx, "order loaded", slog.String("order.id", result.OrderID), slog.String("status", string(result.OrderStatus)))
	}
	return result, nil
}

// ListOrders returns every order view owned by the customer.
func (s *Service) ListOrders(ctx context.Context, customerID string) ([]*types.OrderRepresentation, error) {
	ctx, span := s.startSpan(ctx, "Service.ListOrders", attribute.String("order.customer_id", customerID))
	defer span.End()

	s.logInfo(ctx, "listing orders", slog.String("customer.id", customerID))
	result, err := s.inner.ListOrders(ctx, customerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.String("customer.id", customerID))
	}
	span.SetAttributes(attribute.Int("order.result.count", len(result)))
	s.logInfo(ctx, "listed orders", slog.String("customer.id", customerID), slog.Int("count", len(result)))
	return result, nil
}

// CreateOrder validates and persists a new order aggregate.
func (s *Service) CreateOrder(ctx context.Context, input types.CreateOrderInput) (*types.OrderRepresentation, error) {
	ctx, span := s.startSpan(ctx, "Service.CreateOrder",
		attribute.String("order.customer_id", input.CustomerID),
		attribute.String("order.album_id", input.Request.AlbumID),
		attribute.String("order.store_id", input.Request.StoreID),
	)
	defer span.End()

	s.logInfo(ctx, "placing order", slog.String("customer.id", input.CustomerID), slog.String("album.id", input.Request.AlbumID))
	result, err := s.inner.CreateOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.String("customer.id", input.CustomerID), slog.String("album.id", input.Request.AlbumID))
	}
	if result != nil {
		s.metrics.recordPlaced(ctx, result.Condition)
		s.logInfo(ctx, "order placed", slog.String("order.id", result.OrderID), slog.String("condition", string(result.Condition)))
	}
	return result, nil
}

// UpdateOrder replaces an existing order with freshly validated state.
func (s *Service) UpdateOrder(ctx context.Context, input types.UpdateOrderInput) (*types.OrderRepresentation, error) {
	ctx, span := s.startSpan(ctx, "Service.UpdateOrder",
		attribute.String("order.customer_id", input.CustomerID),
		attribute.String("order.order_id", input.OrderID),
	)
	defer span.End()

	s.logInfo(ctx, "updating order", slog.String("customer.id", input.CustomerID), slog.String("order.id", input.OrderID))
	result, err := s.inner.UpdateOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order", slog.String("customer.id", input.CustomerID), slog.String("order.id", input.OrderID))
	}
	if result != nil {
		s.metrics.recordUpdated(ctx, result.Condition)
		s.logInfo(ctx, "order updated", slog.String("order.id", result.OrderID), slog.String("status", string(result.OrderStatus)))
	}
	return result, nil
}

// DeleteOrder removes one order.
func (s *Service) DeleteOrder(ctx context.Context, key types.OrderKey) error {
	ctx, span := s.startSpan(ctx, "Service.DeleteOrder",
		attribute.String("order.customer_id", key.CustomerID),
		attribute.String("order.order_id", key.OrderID),
	)
	defer span.End()

	s.logInfo(ctx, "deleting order", slog.String("customer.id", key.CustomerID), slog.String("order.id", key.OrderID))
	if err := s.inner.DeleteOrder(ctx, key); err != nil {
		return s.handleError(ctx, span, err, "failed to delete order", slog.String("customer.id", key.CustomerID), slog.String("order.id", key.OrderID))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "order deleted", slog.String("order.id", key.OrderID))
	return nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	ordersPlaced  metric.Int64Counter
	ordersUpdated metric.Int64Counter
	ordersDeleted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("orders.service.placed", metric.WithDescription("Number of orders placed"))
	ordersUpdated, _ := m.Int64Counter("orders.service.updated", metric.WithDescription("Number of orders updated"))
	ordersDeleted, _ := m.Int64Counter("orders.service.deleted", metric.WithDescription("Number of orders deleted"))
	return serviceMetrics{
		ordersPlaced:  ordersPlaced,
		ordersUpdated: ordersUpdated,
		ordersDeleted: ordersDeleted,
	}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, condition domain.Condition) {
	addCounter(ctx, m.ordersPlaced, 1, attribute.String("order.condition", string(condition)))
}

func (m serviceMetrics) recordUpdated(ctx context.Context, condition domain.Condition) {
	addCounter(ctx, m.ordersUpdated, 1, attribute.String("order.condition", string(condition)))
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	addCounter(ctx, m.ordersDeleted, 1)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
