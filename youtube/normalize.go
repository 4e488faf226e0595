package youtube

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// 归一化时用到的固定占位文案
const (
	ViewCountUnknown  = "未知"
	NoTagsSentinel    = "[NO TAGS]"
	DescriptionHidden = "[DESCRIPTION HAS BEEN HIDDEN.]"
)

// ErrNoData 指定 ID 查不到任何数据（视频被删/ID 无效/配额内容不可见）
var ErrNoData = errors.New("no video data for id")

// DescriptionPolicy 视频简介的展示策略
type DescriptionPolicy struct {
	Hide      bool // 整体隐藏，替换为固定占位文案
	MaxLength int  // 不隐藏时的最大字符数，超出截断
}

// VideoCard 归一化后的视频元数据，与传输方式无关。
// 文本格式化和图片渲染都只消费这个结构。
type VideoCard struct {
	Title       string
	Channel     string
	PublishTime string
	Description string
	Tags        string
	ViewCount   string

	Thumbnail     []byte
	ThumbnailMime string
	ThumbnailURL  string
}

var viewCountPrinter = message.NewPrinter(language.English)

// Normalize 把原始 API 响应映射为 VideoCard。纯函数，不做网络请求，
// 缩略图只记录 URL 和 MIME，字节由调用方下载后填入。
func Normalize(resp *VideoListResponse, policy DescriptionPolicy) (*VideoCard, error) {
	if resp == nil || len(resp.Items) == 0 {
		return nil, ErrNoData
	}

	item := resp.Items[0]
	snippet := item.Snippet

	thumbnail, ok := PickThumbnail(snippet.Thumbnails)
	if !ok {
		return nil, errors.New("视频没有任何可用缩略图")
	}

	return &VideoCard{
		Title:         snippet.Title,
		Channel:       snippet.ChannelTitle,
		PublishTime:   snippet.PublishedAt,
		Description:   formatDescription(snippet.Description, policy),
		Tags:          formatTags(snippet.Tags),
		ViewCount:     formatViewCount(item.Statistics.ViewCount),
		ThumbnailMime: MimeFromURL(thumbnail.URL),
		ThumbnailURL:  thumbnail.URL,
	}, nil
}

// formatViewCount 播放量转为带千位分隔的可读字符串。
// 字段缺失（视频隐藏了统计数据）时给固定占位，绝不报错。
func formatViewCount(raw string) string {
	if raw == "" {
		return ViewCountUnknown
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return ViewCountUnknown
	}
	return viewCountPrinter.Sprintf("%d", n)
}

// formatTags 多个标签用逗号连接，单个直接用，没有则占位
func formatTags(tags []string) string {
	switch len(tags) {
	case 0:
		return NoTagsSentinel
	case 1:
		return tags[0]
	default:
		return strings.Join(tags, ", ")
	}
}

// formatDescription 按策略隐藏或截断简介
func formatDescription(description string, policy DescriptionPolicy) string {
	if policy.Hide {
		return DescriptionHidden
	}
	runes := []rune(description)
	if policy.MaxLength > 0 && len(runes) > policy.MaxLength {
		omitted := len(runes) - policy.MaxLength
		return string(runes[:policy.MaxLength]) +
			fmt.Sprintf("...(%dCHARACTERS HAS BEEN OMITEED.)", omitted)
	}
	return description
}
