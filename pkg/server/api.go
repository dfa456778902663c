package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"

	"github.com/NeuralTrust/TrustMask/pkg/config"
	handlers "github.com/NeuralTrust/TrustMask/pkg/handlers/http"
	"github.com/NeuralTrust/TrustMask/pkg/infra/prometheus"
	"github.com/NeuralTrust/TrustMask/pkg/middleware"
	"github.com/NeuralTrust/TrustMask/pkg/server/router"
	"github.com/sirupsen/logrus"
)

type (
	APIServerDI struct {
		Config              *config.Config
		Logger              *logrus.Logger
		MiddlewareTransport middleware.Transport
		HandlerTransport    handlers.HandlerTransport
	}
	APIServer struct {
		*BaseServer
		middlewareTransport middleware.Transport
		handlerTransport    handlers.HandlerTransport
	}
)

func NewAPIServer(di APIServerDI) *APIServer {
	prometheus.Initialize(prometheus.MetricsConfig{
		EnableLatency:    di.Config.Metrics.EnableLatency,
		EnableDetections: di.Config.Metrics.EnableDetections,
	})

	s := &APIServer{
		BaseServer:          NewBaseServer(di.Config, di.Logger),
		middlewareTransport: di.MiddlewareTransport,
		handlerTransport:    di.HandlerTransport,
	}
	s.setupRoutes()
	return s
}

func (s *APIServer) setupRoutes() {
	for _, h := range s.middlewareTransport.Global() {
		s.Router.Use(h)
	}
	s.setupHealthCheck()
	s.WithRouters(router.NewAPIRouter(&s.middlewareTransport, s.handlerTransport))
}

func (s *APIServer) Run() error {
	s.setupMetricsEndpoint()

	addr := fmt.Sprintf("%s:%d", s.Config.Server.Host, s.Config.Server.Port)
	if !s.Config.Server.TLS.Enabled {
		s.Logger.WithField("addr", addr).Info("starting API server")
		return s.Router.Listen(addr)
	}

	tlsConfig, err := config.BuildServerTLSConfig(s.Config.Server.TLS)
	if err != nil {
		return fmt.Errorf("failed to build TLS config: %w", err)
	}
	ln, err := tls.Listen("tcp", addr, tlsConfig)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.Logger.WithFields(logrus.Fields{
		"addr": addr,
		"mtls": s.Config.Server.TLS.EnableMTLS,
	}).Info("starting API server with TLS")
	return s.Router.Listener(ln)
}

func (s *APIServer) Shutdown(ctx context.Context) error {
	return errors.Join(
		s.Router.ShutdownWithContext(ctx),
		s.shutdownMetrics(ctx),
	)
}
