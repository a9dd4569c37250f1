package metrics

import (
	"context"
	"net/http"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewServer returns a server exposing /metrics on addr.
func NewServer(addr string) *http.Server {
	var mux http.ServeMux
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{Addr: addr, Handler: &mux}
}

// ListenAndServe runs s until ctx is done.
func ListenAndServe(ctx context.Context, s *http.Server) {
	go func() {
		<-ctx.Done()

		if err := s.Shutdown(context.Background()); err != nil {
			logs.Warn(errors.New("shutting down the metrics server failed").
				WithTag("addr", s.Addr).
				Wrap(err))
		}
	}()

	logs.WithTag("addr", s.Addr).Info("starting metrics server")

	switch err := s.ListenAndServe(); err {
	case nil, http.ErrServerClosed, context.Canceled:
		logs.WithTag("addr", s.Addr).Info("stopping metrics server")

	default:
		logs.Warn(errors.New("metrics server stopped").
			WithTag("addr", s.Addr).
			Wrap(err))
	}
}
