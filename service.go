package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/vincentzyu233/youtube-linkcard/configs"
	"github.com/vincentzyu233/youtube-linkcard/render"
	"github.com/vincentzyu233/youtube-linkcard/restclient"
	"github.com/vincentzyu233/youtube-linkcard/youtube"
)

// YoutubeService 视频解析与卡片渲染服务，REST 和 MCP 两个入口共用
type YoutubeService struct {
	fetcher  *youtube.Fetcher
	renderer *render.Renderer
	policy   youtube.DescriptionPolicy
}

// NewYoutubeService 创建服务实例，简介策略取自配置
func NewYoutubeService(fetcher *youtube.Fetcher, renderer *render.Renderer, cfg *configs.Config) *YoutubeService {
	return &YoutubeService{
		fetcher:  fetcher,
		renderer: renderer,
		policy: youtube.DescriptionPolicy{
			Hide:      cfg.HideDescription,
			MaxLength: cfg.MaxDescriptionLength,
		},
	}
}

// Parse 解析视频链接，返回线格式负载（缩略图转 base64）
func (s *YoutubeService) Parse(ctx context.Context, videoURL string) (*restclient.ParsePayload, error) {
	card, err := s.parseCard(ctx, videoURL)
	if err != nil {
		return nil, err
	}
	return restclient.FromVideoCard(card), nil
}

// RenderFromURL 解析视频链接并渲染成卡片图片
func (s *YoutubeService) RenderFromURL(ctx context.Context, videoURL string) ([]byte, error) {
	card, err := s.parseCard(ctx, videoURL)
	if err != nil {
		return nil, err
	}
	return s.renderer.RenderCard(ctx, card)
}

// RenderPayload 渲染调用方已解析好的负载，不重新拉取元数据
func (s *YoutubeService) RenderPayload(ctx context.Context, payload *restclient.ParsePayload) ([]byte, error) {
	card, err := payload.ToVideoCard()
	if err != nil {
		return nil, err
	}
	return s.renderer.RenderCard(ctx, card)
}

func (s *YoutubeService) parseCard(ctx context.Context, videoURL string) (*youtube.VideoCard, error) {
	card, err := s.fetcher.ParseVideo(ctx, videoURL, s.policy)
	if err != nil {
		return nil, err
	}
	logrus.Infof("解析视频成功: %s", card.Title)
	return card, nil
}
