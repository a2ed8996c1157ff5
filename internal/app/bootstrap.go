package app

import (
	"context"
	"errors"

	"github.com/maisdocacau/storefront/internal/config"
	"github.com/maisdocacau/storefront/internal/provider"
	"github.com/maisdocacau/storefront/internal/router"
	"github.com/maisdocacau/storefront/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container := provider.NewContainer(cfg)

	var services []Service

	// 初始化 HTTP 服务
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		httpService := NewHTTPService(addr, engine, httpWriteTimeout(cfg.Checkout))
		services = append(services, httpService)
	}

	// 初始化 Worker 服务
	if mode == ModeAll || mode == ModeWorker {
		consumer := worker.NewConsumer(container)
		workerService, err := worker.NewService(&cfg.Queue, consumer)
		if err != nil {
			return nil, err
		}
		services = append(services, workerService)
	}

	// 容器最后停止，关闭队列客户端与事件发布器
	services = append(services, newContainerService(container))

	// 如果没有服务被启动（例如模式错误或配置导致都没起），应该报错或至少打日志
	if len(services) <= 1 {
		container.Close()
		return nil, errors.New("no services initialized (check mode and config)")
	}

	return NewRunner(services...), nil
}

// containerService 将容器资源纳入运行器生命周期
type containerService struct {
	container *provider.Container
}

func newContainerService(container *provider.Container) *containerService {
	return &containerService{container: container}
}

func (s *containerService) Name() string {
	return "container"
}

// Start 阻塞至运行器退出
func (s *containerService) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

// Stop 释放容器持有的连接
func (s *containerService) Stop(_ context.Context) error {
	s.container.Close()
	return nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr, "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}
