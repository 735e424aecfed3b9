package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/vendq/vendq/entity"
	"github.com/vendq/vendq/querier/ast"
)

// VendorSource pages through vendors matching a compiled filter chain.
type VendorSource interface {
	Query(ctx context.Context, chain ast.Chain, page, size int) ([]entity.Vendor, error)
	Count(ctx context.Context, chain ast.Chain) (uint64, error)
}

// PaymentTermSource pages through payment terms matching a compiled filter
// chain and reports the total match count in one call.
type PaymentTermSource interface {
	Query(chain ast.Chain, page, size int) ([]entity.PaymentTerm, int, error)
}

type server struct {
	cfg     Config
	logger  *slog.Logger
	vendors VendorSource
	terms   PaymentTermSource
}

func NewServer(cfg Config, logger *slog.Logger, vendors VendorSource, terms PaymentTermSource) (*server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &server{
		cfg:     cfg,
		logger:  logger,
		vendors: vendors,
		terms:   terms,
	}, nil
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/healthcheck", s.healthCheckHandler)
	mux.HandleFunc("GET /api/v1/vendors", s.listVendorsHandler)
	mux.HandleFunc("GET /api/v1/payment-terms", s.listPaymentTermsHandler)

	return s.recoverPanicMiddleware(s.requestLoggerMiddleware(s.corsMiddleware(mux)))
}

func (s *server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down server", "addr", s.cfg.Addr)
		if err := srv.Shutdown(ctx); err != nil {
			s.logger.Error("failed to shutdown server", "addr", s.cfg.Addr, "error", err)
		}
	}()

	var serverErr error
	if s.cfg.CertFile != "" && s.cfg.KeyFile != "" {
		s.logger.Info("starting server with TLS", "addr", s.cfg.Addr)
		serverErr = srv.ListenAndServeTLS(s.cfg.CertFile, s.cfg.KeyFile)
	} else {
		s.logger.Info("starting server without TLS", "addr", s.cfg.Addr)
		serverErr = srv.ListenAndServe()
	}

	if serverErr != nil && serverErr != http.ErrServerClosed {
		return serverErr
	}

	return nil
}
