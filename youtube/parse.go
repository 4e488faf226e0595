package youtube

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNoVideoLink 消息里没有可识别的视频链接。正常控制流，不是故障。
var ErrNoVideoLink = errors.New("no youtube video link found")

// ParseVideo 完整的解析流程：提取 ID → 拉取元数据 → 归一化 → 下载缩略图。
// 独立模式的本地路径和 REST 服务的 /parse 都走这里。
func (f *Fetcher) ParseVideo(ctx context.Context, rawText string, policy DescriptionPolicy) (*VideoCard, error) {
	id, ok := ExtractVideoID(rawText)
	if !ok {
		return nil, ErrNoVideoLink
	}

	resp, err := f.FetchVideo(ctx, id)
	if err != nil {
		return nil, err
	}

	card, err := Normalize(resp, policy)
	if err != nil {
		return nil, errors.Wrapf(err, "解析视频数据失败, id: %s", id)
	}

	thumbnail, err := f.DownloadThumbnail(ctx, card.ThumbnailURL)
	if err != nil {
		return nil, errors.Wrapf(err, "获取缩略图失败, id: %s", id)
	}
	card.Thumbnail = thumbnail

	return card, nil
}
