package main

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/vincentzyu233/youtube-linkcard/bot"
)

// handleParseVideo 解析视频并返回文本信息加封面图
func (s *AppServer) handleParseVideo(ctx context.Context, videoURL string) *mcp.CallToolResult {
	payload, err := s.youtubeService.Parse(ctx, videoURL)
	if err != nil {
		return errorToolResult("解析视频失败", err)
	}

	card, err := payload.ToVideoCard()
	if err != nil {
		return errorToolResult("解析视频失败", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: bot.CardText(card)},
			&mcp.ImageContent{
				Data:     card.Thumbnail,
				MIMEType: card.ThumbnailMime,
			},
		},
	}
}

// handleRenderVideoCard 解析并渲染成卡片图片
func (s *AppServer) handleRenderVideoCard(ctx context.Context, videoURL string) *mcp.CallToolResult {
	image, err := s.youtubeService.RenderFromURL(ctx, videoURL)
	if err != nil {
		return errorToolResult("渲染视频卡片失败", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.ImageContent{
				Data:     image,
				MIMEType: "image/png",
			},
		},
	}
}

// errorToolResult 把内部错误转成 MCP 工具的失败结果
func errorToolResult(prefix string, err error) *mcp.CallToolResult {
	logrus.Errorf("%s: %v", prefix, err)
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: prefix + ": " + err.Error()},
		},
		IsError: true,
	}
}
