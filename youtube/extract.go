package youtube

import (
	"regexp"
	"strings"
)

// WatchURLPrefix 视频标准链接前缀
const WatchURLPrefix = "https://www.youtube.com/watch?v="

// 通用匹配：覆盖 youtube.com / youtu.be / ytimg.com 的常见路径形态，
// 捕获 11 位视频 ID（字母数字加 - 和 _）
var generalIDPattern = regexp.MustCompile(`(?:https?://)?(?:i\.|www\.|img\.)?(?:youtu\.be/|youtube\.com/|ytimg\.com/)(?:shorts/|embed/|v/|vi/|vi_webp/|watch\?v=|watch\?.+&v=)([\w-]{11})`)

// 短链接：https://youtu.be/<id>
var shortLinkPattern = regexp.MustCompile(`youtu\.be/([\w-]{11})`)

var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// VideoReference 从消息文本里识别出来的一个视频
type VideoReference struct {
	ID        string
	SourceURL string
}

// HasYoutubeLink 廉价预过滤：消息里是否出现 YouTube 域名。
// 命中后才值得跑完整的 ID 提取。
func HasYoutubeLink(text string) bool {
	return strings.Contains(text, "youtube.com") || strings.Contains(text, "youtu.be")
}

// NormalizeMessageText 规范化原始消息文本。
// 有些平台会把外发文本做 HTML 实体转义（& 变成 &amp;），
// 或者把裸 URL 包在尖括号里，这里先还原再匹配。
func NormalizeMessageText(raw string) string {
	s := strings.TrimSpace(raw)
	s = entityReplacer.Replace(s)
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	return s
}

// ExtractVideoID 从任意消息文本中提取视频 ID。
// 找不到时返回 ok=false，这是常态而不是错误：大多数消息都不是视频链接。
func ExtractVideoID(raw string) (string, bool) {
	src := NormalizeMessageText(raw)

	if strings.Contains(src, "https://youtu.be") {
		if m := shortLinkPattern.FindStringSubmatch(src); m != nil {
			return m[1], true
		}
		return "", false
	}

	if m := generalIDPattern.FindStringSubmatch(src); m != nil {
		return m[1], true
	}
	return "", false
}

// ExtractVideoReference 提取视频 ID 并附带标准链接
func ExtractVideoReference(raw string) (VideoReference, bool) {
	id, ok := ExtractVideoID(raw)
	if !ok {
		return VideoReference{}, false
	}
	return VideoReference{
		ID:        id,
		SourceURL: WatchURLPrefix + id,
	}, true
}
