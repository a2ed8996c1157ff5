package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/maisdocacau/storefront/internal/config"
)

const (
	httpReadHeaderTimeout = 10 * time.Second
	httpIdleTimeout       = 60 * time.Second
	// 支付提交在请求内同步等待网关，写超时需覆盖支付超时
	httpWriteSlack = 15 * time.Second
)

// HTTPService 前台 API 与后台接口的 HTTP 服务
type HTTPService struct {
	name   string
	server *http.Server
}

// NewHTTPService 创建 HTTP 服务
func NewHTTPService(addr string, handler http.Handler, writeTimeout time.Duration) *HTTPService {
	return &HTTPService{
		name: ModeAPI,
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: httpReadHeaderTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       httpIdleTimeout,
		},
	}
}

// httpWriteTimeout 按结算支付超时计算写超时，未配置时不限制
func httpWriteTimeout(cfg config.CheckoutConfig) time.Duration {
	if cfg.PaymentTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(cfg.PaymentTimeoutSeconds)*time.Second + httpWriteSlack
}

// Name 服务名称
func (s *HTTPService) Name() string {
	if s == nil || s.name == "" {
		return ModeAPI
	}
	return s.name
}

// Start 阻塞监听，直到 Stop 关闭服务
func (s *HTTPService) Start(ctx context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("http server not initialized")
	}
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop 等待进行中的请求（包括支付提交）结束
func (s *HTTPService) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
