package youtube

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/h2non/filetype"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vincentzyu233/youtube-linkcard/pkg/httpclient"
)

const apiEndpointPrefix = "https://www.googleapis.com/youtube/v3/videos"

// VideoListResponse YouTube Data API v3 videos.list 的响应。
// 取回后立刻按这个结构解码，上游格式不对在这里就失败，
// 不让未定义字段漏进后面的格式化环节。
type VideoListResponse struct {
	Items []VideoItem `json:"items"`
}

// VideoItem 单个视频条目
type VideoItem struct {
	ID         string     `json:"id"`
	Snippet    Snippet    `json:"snippet"`
	Statistics Statistics `json:"statistics"`
}

// Snippet 视频基本信息
type Snippet struct {
	PublishedAt  string     `json:"publishedAt"`
	ChannelTitle string     `json:"channelTitle"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Thumbnails   Thumbnails `json:"thumbnails"`
	Tags         []string   `json:"tags"`
}

// Thumbnails 各分辨率缩略图，部分视频没有 maxres
type Thumbnails struct {
	Default  *Thumbnail `json:"default"`
	Medium   *Thumbnail `json:"medium"`
	High     *Thumbnail `json:"high"`
	Standard *Thumbnail `json:"standard"`
	Maxres   *Thumbnail `json:"maxres"`
}

// Thumbnail 单个缩略图
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Statistics 播放量等统计数据。隐藏统计的视频没有 viewCount 字段。
type Statistics struct {
	ViewCount string `json:"viewCount"`
}

// Fetcher 负责调用元数据 API 和下载缩略图
type Fetcher struct {
	client   httpclient.Doer
	apiKey   string
	endpoint string
}

// FetcherOption Fetcher 可选配置
type FetcherOption func(*Fetcher)

// WithEndpoint 替换 API 端点（测试用）
func WithEndpoint(endpoint string) FetcherOption {
	return func(f *Fetcher) {
		f.endpoint = endpoint
	}
}

// NewFetcher 创建 Fetcher，client 决定走宿主客户端还是代理客户端
func NewFetcher(client httpclient.Doer, apiKey string, options ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:   client,
		apiKey:   apiKey,
		endpoint: apiEndpointPrefix,
	}
	for _, opt := range options {
		opt(f)
	}
	return f
}

// FetchVideo 调用 videos.list 获取原始元数据
func (f *Fetcher) FetchVideo(ctx context.Context, id string) (*VideoListResponse, error) {
	query := url.Values{}
	query.Set("id", id)
	query.Set("key", f.apiKey)
	query.Set("part", "snippet,contentDetails,statistics,status")
	apiURL := f.endpoint + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "创建 API 请求失败, id: %s", id)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "请求 YouTube API 失败, id: %s", id)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Errorf("YouTube API 返回非成功状态码 %d, id: %s", resp.StatusCode, id)
	}

	var result VideoListResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Wrapf(err, "上游响应格式错误, id: %s", id)
	}

	return &result, nil
}

// DownloadThumbnail 下载缩略图原始字节，瞬时网络错误自动重试
func (f *Fetcher) DownloadThumbnail(ctx context.Context, thumbnailURL string) ([]byte, error) {
	var data []byte

	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, thumbnailURL, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}

			resp, err := f.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return errors.Errorf("下载缩略图失败, 状态码 %d", resp.StatusCode)
			}

			data, err = io.ReadAll(resp.Body)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.OnRetry(func(n uint, err error) {
			logrus.Warnf("第 %d 次下载缩略图失败: %v", n+1, err)
		}),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "下载缩略图失败: %s", thumbnailURL)
	}

	if !filetype.IsImage(data) {
		return nil, errors.Errorf("缩略图内容不是有效图片: %s", thumbnailURL)
	}

	return data, nil
}

// PickThumbnail 选择最佳缩略图：优先最高分辨率，缺失时逐级回退
func PickThumbnail(t Thumbnails) (*Thumbnail, bool) {
	for _, candidate := range []*Thumbnail{t.Maxres, t.Standard, t.High, t.Medium, t.Default} {
		if candidate != nil && candidate.URL != "" {
			return candidate, true
		}
	}
	return nil, false
}

// MimeFromURL 按缩略图 URL 的扩展名推导 MIME 类型
func MimeFromURL(thumbnailURL string) string {
	if parsed, err := url.Parse(thumbnailURL); err == nil {
		if ext := strings.TrimPrefix(path.Ext(parsed.Path), "."); ext != "" {
			return "image/" + ext
		}
	}
	return "image/jpeg"
}
