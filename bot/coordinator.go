package bot

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vincentzyu233/youtube-linkcard/configs"
	"github.com/vincentzyu233/youtube-linkcard/render"
	"github.com/vincentzyu233/youtube-linkcard/restclient"
	"github.com/vincentzyu233/youtube-linkcard/youtube"
)

// Parser 本地解析能力
type Parser interface {
	ParseVideo(ctx context.Context, rawText string, policy youtube.DescriptionPolicy) (*youtube.VideoCard, error)
}

// CardRenderer 本地渲染能力
type CardRenderer interface {
	RenderCard(ctx context.Context, card *youtube.VideoCard) ([]byte, error)
}

// DelegateClient 委托模式下调用远端实例的能力
type DelegateClient interface {
	Parse(ctx context.Context, videoURL string) (*restclient.ParsePayload, error)
	RenderFromURL(ctx context.Context, videoURL string) ([]byte, error)
}

// Coordinator 消息处理协调器。每条进来的消息走同一条流水线：
// 链接预筛 -> 提取视频 ID -> 白名单校验 -> 按工作模式分发 -> 按配置的形式逐个发送。
// 处理中的任何失败都在这里兜住，绝不抛回宿主运行时。
type Coordinator struct {
	cfg      *configs.Config
	parser   Parser
	renderer CardRenderer
	delegate DelegateClient
}

// NewCoordinator 创建协调器。standalone 模式需要 parser（renderer 可为 nil，
// 此时图片形式降级跳过）；delegate 模式需要 delegate。
func NewCoordinator(cfg *configs.Config, parser Parser, renderer CardRenderer, delegate DelegateClient) *Coordinator {
	return &Coordinator{
		cfg:      cfg,
		parser:   parser,
		renderer: renderer,
		delegate: delegate,
	}
}

// HandleMessage 处理一条群聊消息。没有 YouTube 链接、功能被禁用、
// 或提取不到视频 ID 时静默返回，不打扰会话。
func (c *Coordinator) HandleMessage(ctx context.Context, session Session) {
	content := youtube.NormalizeMessageText(session.Content())
	if !youtube.HasYoutubeLink(content) {
		return
	}

	if !c.cfg.EnableParseURL {
		logrus.Info("URL 解析功能已禁用，跳过处理。")
		return
	}

	ref, ok := youtube.ExtractVideoReference(content)
	if !ok {
		return
	}
	logrus.Infof("检测到 YouTube 视频: %s", ref.ID)

	decision := EvaluateAccess(session.Platform(), session.UserID(), c.cfg.WhitelistTable(), c.cfg.SendWhitelistHint)

	var hintMsgID string
	if decision.HintMessage != "" {
		id, err := session.Send(ctx, &Message{
			QuoteMessageID: session.MessageID(),
			Segments:       []Segment{TextSegment(decision.HintMessage)},
		})
		if err != nil {
			logrus.Warnf("发送白名单提示失败: %v", err)
		} else {
			hintMsgID = id
		}
	}

	if !decision.Allowed {
		return
	}

	if err := c.dispatch(ctx, session, ref); err != nil {
		c.reportFailure(ctx, session, err)
		return
	}

	// 成功后撤回提示消息，失败时留着方便用户知道发生过什么
	if hintMsgID != "" {
		if err := session.Delete(ctx, hintMsgID); err != nil {
			logrus.Warnf("撤回提示消息失败: %v", err)
		}
	}
}

func (c *Coordinator) dispatch(ctx context.Context, session Session, ref youtube.VideoReference) error {
	switch c.cfg.WorkMode {
	case configs.WorkModeDelegate:
		return c.dispatchDelegate(ctx, session, ref)
	default:
		return c.dispatchStandalone(ctx, session, ref)
	}
}

// dispatchStandalone 本地解析一次，然后按配置顺序逐个形式发送
func (c *Coordinator) dispatchStandalone(ctx context.Context, session Session, ref youtube.VideoReference) error {
	policy := youtube.DescriptionPolicy{
		Hide:      c.cfg.HideDescription,
		MaxLength: c.cfg.MaxDescriptionLength,
	}

	card, err := c.parser.ParseVideo(ctx, ref.SourceURL, policy)
	if err != nil {
		return err
	}

	for _, form := range c.cfg.MsgForms {
		switch form {
		case configs.MsgFormText:
			if err := c.send(ctx, session, cardTextSegments(card)); err != nil {
				return err
			}
		case configs.MsgFormImage:
			if c.renderer == nil {
				logrus.Error("未配置渲染器，跳过图片消息")
				continue
			}
			image, err := c.renderer.RenderCard(ctx, card)
			if err != nil {
				if errors.Is(err, render.ErrUnavailable) {
					logrus.Errorf("渲染能力不可用，跳过图片消息: %v", err)
					continue
				}
				return err
			}
			if err := c.send(ctx, session, []Segment{ImageSegment(image, "image/png")}); err != nil {
				return err
			}
		case configs.MsgFormForward:
			// 合并转发暂未实现，按无操作处理
		}
	}
	return nil
}

// dispatchDelegate 不在本地动用 API key 和浏览器，全部交给远端实例
func (c *Coordinator) dispatchDelegate(ctx context.Context, session Session, ref youtube.VideoReference) error {
	if c.delegate == nil {
		return errors.New("委托模式未配置远端服务客户端")
	}
	logrus.Infof("委托模式: 调用远端服务 %s", c.cfg.DelegateTargetURL)

	for _, form := range c.cfg.MsgForms {
		switch form {
		case configs.MsgFormText:
			payload, err := c.delegate.Parse(ctx, ref.SourceURL)
			if err != nil {
				return err
			}
			card, err := payload.ToVideoCard()
			if err != nil {
				return err
			}
			if err := c.send(ctx, session, cardTextSegments(card)); err != nil {
				return err
			}
		case configs.MsgFormImage:
			image, err := c.delegate.RenderFromURL(ctx, ref.SourceURL)
			if err != nil {
				return err
			}
			if err := c.send(ctx, session, []Segment{ImageSegment(image, "image/png")}); err != nil {
				return err
			}
		case configs.MsgFormForward:
			// 合并转发暂未实现，按无操作处理
		}
	}
	return nil
}

func (c *Coordinator) send(ctx context.Context, session Session, segments []Segment) error {
	msg := &Message{Segments: segments}
	if c.cfg.QuoteWhenSend {
		msg.QuoteMessageID = session.MessageID()
	}
	if _, err := session.Send(ctx, msg); err != nil {
		return errors.Wrap(err, "发送消息失败")
	}
	return nil
}

// CardText 文本形式的卡片内容，字段顺序与原有输出保持一致。
// 会话文本消息和 MCP 工具共用这套排版。
func CardText(card *youtube.VideoCard) string {
	return "标题：\t" + card.Title + "\n" +
		"频道：\t" + card.Channel + "\n" +
		"发布时间：\t" + card.PublishTime + "\n" +
		"播放量：\t" + card.ViewCount + "\n" +
		"简介：\t" + card.Description + "\n" +
		"标签：\t" + card.Tags
}

// cardTextSegments 文本形式的消息内容，封面图在前
func cardTextSegments(card *youtube.VideoCard) []Segment {
	return []Segment{
		ImageSegment(card.Thumbnail, card.ThumbnailMime),
		TextSegment(CardText(card)),
	}
}

// reportFailure 把失败转成一条带引用的会话通知。详细原因只在开了
// 对应的 verbose 开关时展示，避免把内部错误细节泄漏到群里。
func (c *Coordinator) reportFailure(ctx context.Context, session Session, err error) {
	prefix := string(c.cfg.WorkMode) + "工作模式时发生错误:"

	sessionDetail := ""
	if c.cfg.EnableVerboseSessionOutput {
		sessionDetail = err.Error()
	}
	if _, sendErr := session.Send(ctx, &Message{
		QuoteMessageID: session.MessageID(),
		Segments:       []Segment{TextSegment(prefix + "\n\t " + sessionDetail)},
	}); sendErr != nil {
		logrus.Warnf("发送错误通知失败: %v", sendErr)
	}

	if c.cfg.EnableVerboseConsoleOutput {
		logrus.Errorf("%s %+v", prefix, err)
	} else {
		logrus.Error(prefix)
	}
}
