package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vincentzyu233/youtube-linkcard/restclient"
)

// setupRoutes 设置路由配置
func setupRoutes(appServer *AppServer) *gin.Engine {
	// 设置 Gin 模式
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// 健康检查
	router.GET("/health", healthHandler)

	// MCP 端点 - 使用官方 SDK 的 Streamable HTTP Handler
	// 使用会话管理器为每个唯一会话维护独立的MCP Server实例
	mcpHandler := mcp.NewStreamableHTTPHandler(
		func(r *http.Request) *mcp.Server {
			// 从请求中获取会话ID，如果没有则使用默认会话
			// HTTP客户端应该在Header中提供 X-Session-Id
			sessionID := r.Header.Get("X-Session-Id")
			if sessionID == "" {
				// 如果没有提供会话ID，使用远程地址作为会话标识
				sessionID = r.RemoteAddr
			}

			// 获取或创建该会话的MCP Server实例
			return appServer.sessionManager.GetOrCreateSession(sessionID)
		},
		&mcp.StreamableHTTPOptions{
			JSONResponse: true, // 支持 JSON 响应
		},
	)
	router.POST("/mcp", gin.WrapH(mcpHandler))
	router.POST("/mcp/*path", gin.WrapH(mcpHandler))

	// 委托协议端点，路径常量与客户端共用
	router.POST(restclient.PathParse, appServer.parseHandler)
	router.POST(restclient.PathRenderFromURL, appServer.renderFromURLHandler)
	router.POST(restclient.PathRender, appServer.renderHandler)

	return router
}

// corsMiddleware 跨域中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Session-Id")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
