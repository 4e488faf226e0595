package render

import (
	"context"
	"math"
	"time"

	"github.com/go-rod/rod"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vincentzyu233/youtube-linkcard/youtube"
)

// ErrUnavailable 渲染能力不可用（没装浏览器、启动失败等）。
// 调用方据此降级，不把它当成普通渲染错误。
var ErrUnavailable = errors.New("浏览器渲染能力不可用")

const renderTimeout = 30 * time.Second

// Renderer 把视频卡片渲染成 PNG 截图
type Renderer struct {
	pool *Pool
}

// NewRenderer 创建渲染器。pool 传 nil 表示渲染能力关闭。
func NewRenderer(pool *Pool) *Renderer {
	return &Renderer{pool: pool}
}

// Available 渲染能力是否可用
func (r *Renderer) Available() bool {
	return r != nil && r.pool != nil
}

// RenderCard 渲染视频卡片，返回 PNG 字节
func (r *Renderer) RenderCard(ctx context.Context, card *youtube.VideoCard) ([]byte, error) {
	if !r.Available() {
		return nil, ErrUnavailable
	}

	html, err := CardHTML(card)
	if err != nil {
		return nil, err
	}

	page, err := r.pool.GetPage()
	if err != nil {
		logrus.Errorf("获取渲染页面失败: %v", err)
		return nil, errors.Wrap(ErrUnavailable, err.Error())
	}
	defer page.Close()

	var screenshot []byte
	err = rod.Try(func() {
		p := page.Context(ctx).Timeout(renderTimeout)

		p.MustSetDocumentContent(html)
		p.MustWaitStable()

		// 视口贴合卡片大小，只截卡片本身
		container := p.MustElement(".main-container")
		box := container.MustShape().Box()
		p.MustSetViewport(int(math.Ceil(box.Width)), int(math.Ceil(box.Height)), 1, false)

		screenshot = p.MustScreenshot()
	})
	if err != nil {
		return nil, errors.Wrap(err, "渲染视频卡片失败")
	}

	if len(screenshot) == 0 {
		return nil, errors.New("渲染结果为空")
	}

	return screenshot, nil
}
