package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vincentzyu233/youtube-linkcard/render"
)

// AppServer 应用服务器结构体，封装所有服务和处理器
type AppServer struct {
	youtubeService *YoutubeService
	sessionManager *SessionManager
	pool           *render.Pool
	router         *gin.Engine
	httpServer     *http.Server
}

// NewAppServer 创建新的应用服务器实例
func NewAppServer(youtubeService *YoutubeService, pool *render.Pool) *AppServer {
	appServer := &AppServer{
		youtubeService: youtubeService,
		pool:           pool,
	}

	// 初始化会话管理器（需要在创建 appServer 之后，因为工具注册需要访问 appServer）
	appServer.sessionManager = NewSessionManager(appServer)

	return appServer
}

// Start 启动服务器
func (s *AppServer) Start(addr string) error {
	s.router = setupRoutes(s)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	// 启动服务器的 goroutine
	go func() {
		logrus.Infof("启动 HTTP 服务器: %s", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Errorf("服务器启动失败: %v", err)
			os.Exit(1)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Infof("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		logrus.Warnf("等待连接关闭超时，强制退出: %v", err)
	} else {
		logrus.Infof("服务器已优雅关闭")
	}

	// 连接关闭后再回收浏览器，避免正在渲染的请求被掐断
	if s.pool != nil {
		s.pool.Close()
	}

	return nil
}
