package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/airquery/api"
	"github.com/Domenick1991/airquery/api/openapi"
	"github.com/Domenick1991/airquery/config"
	"github.com/Domenick1991/airquery/internal/logger"
	"github.com/Domenick1991/airquery/internal/service/booking"
	"github.com/Domenick1991/airquery/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const openAPIPath = "/openapi/airquery.swagger.json"

type Servers struct {
	grpcServer *grpc.Server
	health     *health.Server
	gateway    *grpc.ClientConn
	httpServer *http.Server
}

// Run starts the gRPC health server and the HTTP API and blocks until ctx is
// cancelled or a server fails.
func Run(ctx context.Context, cfg *config.Config, log logger.Logger, gatherer prometheus.Gatherer, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase) error {
	s, err := newServers(cfg, log, gatherer, flightSvc, bookingSvc)
	if err != nil {
		return err
	}
	defer s.gateway.Close()

	errCh := make(chan error, 2)

	lis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
	}
	go func() { errCh <- s.grpcServer.Serve(lis) }()

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	log.Info("servers started", "http", cfg.HTTP.Address, "grpc", cfg.GRPC.Address)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down servers")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.health.Shutdown()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		s.grpcServer.GracefulStop()
		return nil
	}
}

func newServers(cfg *config.Config, log logger.Logger, gatherer prometheus.Gatherer, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase) (*Servers, error) {
	grpcSrv := grpc.NewServer()
	healthSrv := health.NewServer()
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)

	conn, err := grpc.NewClient(dialAddress(cfg.GRPC.Address), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial gRPC health endpoint: %w", err)
	}
	gwmux := runtime.NewServeMux(runtime.WithHealthzEndpoint(healthpb.NewHealthClient(conn)))

	router := newRouter(cfg, log, gatherer, flightSvc, bookingSvc)
	router.GET("/healthz", gin.WrapH(gwmux))

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Servers{
		grpcServer: grpcSrv,
		health:     healthSrv,
		gateway:    conn,
		httpServer: httpSrv,
	}, nil
}

func newRouter(cfg *config.Config, log logger.Logger, gatherer prometheus.Gatherer, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase) *gin.Engine {
	router := gin.New()
	router.Use(api.Recovery(log), api.RequestID(), api.AccessLog(log))

	v1 := router.Group("/api/v1", api.RateLimit(cfg.HTTP.RateLimitPerSecond, cfg.HTTP.RateLimitBurst, log))
	api.NewFlightHandler(flightSvc, log).Register(v1.Group("/flights"))
	api.NewBookingHandler(bookingSvc, log).Register(v1.Group("/bookings"))

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	router.GET(openAPIPath, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", openapi.Document)
	})
	router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL(openAPIPath))))

	return router
}

// dialAddress turns a listen address such as ":9090" into one a client can dial.
func dialAddress(listen string) string {
	host, port, err := net.SplitHostPort(listen)
	if err != nil {
		return listen
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}
