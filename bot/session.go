package bot

import "context"

// Segment 一条消息里的一个片段：纯文本或图片二选一
type Segment struct {
	Text      string
	Image     []byte
	ImageMime string
}

// TextSegment 文本片段
func TextSegment(text string) Segment {
	return Segment{Text: text}
}

// ImageSegment 图片片段
func ImageSegment(data []byte, mime string) Segment {
	return Segment{Image: data, ImageMime: mime}
}

// Message 要发出去的一条回复
type Message struct {
	// 非空时引用这条消息
	QuoteMessageID string
	Segments       []Segment
}

// Session 聊天宿主会话的最小接口。宿主运行时（消息总线、指令中间件、
// 各平台适配）都在本仓库之外，协调器只通过这几个方法与它交互。
type Session interface {
	Platform() string
	UserID() string
	MessageID() string
	Content() string

	// Send 发送回复，返回可用于撤回的消息 ID
	Send(ctx context.Context, msg *Message) (string, error)
	// Delete 撤回之前发出的消息
	Delete(ctx context.Context, messageID string) error
}
