package main

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondWireError 委托协议的错误响应，固定为平铺的 {error} 结构
func respondWireError(c *gin.Context, statusCode int, message string) {
	logrus.Errorf("%s %s %d: %s", c.Request.Method, c.Request.URL.Path, statusCode, message)
	c.JSON(statusCode, ErrorResponse{Error: message})
}

// parseHandler 处理 [POST /parse] 请求。
// 解析视频链接并返回归一化负载，委托模式的对端靠它拿文本内容。
func (s *AppServer) parseHandler(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		respondWireError(c, http.StatusBadRequest, "URL is required")
		return
	}

	payload, err := s.youtubeService.Parse(c.Request.Context(), req.URL)
	if err != nil {
		respondWireError(c, http.StatusInternalServerError,
			"Failed to parse video info: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, payload)
}

// renderFromURLHandler 处理 [POST /render-from-url] 请求。
// 解析并渲染，一步拿到 base64 编码的卡片图片。
func (s *AppServer) renderFromURLHandler(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		respondWireError(c, http.StatusBadRequest, "URL is required")
		return
	}

	image, err := s.youtubeService.RenderFromURL(c.Request.Context(), req.URL)
	if err != nil {
		respondWireError(c, http.StatusInternalServerError,
			"Failed to render image: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, RenderResponse{
		ImageBase64: base64.StdEncoding.EncodeToString(image),
	})
}

// renderHandler 处理 [POST /render] 请求。
// 渲染调用方已解析好的完整负载，不重新拉取元数据。
func (s *AppServer) renderHandler(c *gin.Context) {
	var payload ParsePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondWireError(c, http.StatusBadRequest, "Invalid payload: "+err.Error())
		return
	}

	image, err := s.youtubeService.RenderPayload(c.Request.Context(), &payload)
	if err != nil {
		respondWireError(c, http.StatusInternalServerError,
			"Failed to render image: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, RenderResponse{
		ImageBase64: base64.StdEncoding.EncodeToString(image),
	})
}

// healthHandler 健康检查
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "youtube-linkcard",
	})
}
