package main

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
)

// MCP 工具参数结构体定义

// ParseVideoArgs 解析视频的参数
type ParseVideoArgs struct {
	URL string `json:"url" jsonschema:"YouTube 视频链接，支持 watch/shorts/embed/youtu.be 短链等形态"`
}

// InitMCPServer 初始化 MCP Server
func InitMCPServer(appServer *AppServer) *mcp.Server {
	// 创建 MCP Server
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "youtube-linkcard",
			Version: "1.0.0",
		},
		nil,
	)

	// 注册所有工具
	registerTools(server, appServer)

	logrus.Info("MCP Server initialized with official SDK")

	return server
}

// registerTools 注册所有 MCP 工具
func registerTools(server *mcp.Server, appServer *AppServer) {
	// 工具 1: 解析视频信息
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "parse_video",
			Description: "解析 YouTube 视频链接，返回标题、频道、发布时间、播放量、简介、标签和封面图",
		},
		func(ctx context.Context, req *mcp.CallToolRequest, args ParseVideoArgs) (*mcp.CallToolResult, any, error) {
			logrus.Infof("MCP Server: 收到解析请求, url: %s", args.URL)
			return appServer.handleParseVideo(ctx, args.URL), nil, nil
		},
	)

	// 工具 2: 渲染视频卡片
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "render_video_card",
			Description: "解析 YouTube 视频链接并渲染成信息卡片图片（需要浏览器渲染能力）",
		},
		func(ctx context.Context, req *mcp.CallToolRequest, args ParseVideoArgs) (*mcp.CallToolResult, any, error) {
			logrus.Infof("MCP Server: 收到渲染请求, url: %s", args.URL)
			return appServer.handleRenderVideoCard(ctx, args.URL), nil, nil
		},
	)

	logrus.Infof("Registered %d MCP tools", 2)
}
