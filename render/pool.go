package render

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/sirupsen/logrus"
	"github.com/xpzouying/headless_browser"

	"github.com/vincentzyu233/youtube-linkcard/browser"
)

// Pool 管理共享的浏览器实例，避免每次渲染都冷启动 Chromium。
// 浏览器是外部共享资源，随时可能不可用：拿不到就报错，绝不让渲染把进程带崩。
type Pool struct {
	mu      sync.Mutex
	browser *headless_browser.Browser

	headless bool
	binPath  string
}

// NewPool 创建浏览器池。headlessMode 取 "false" 时开窗口（调试用）。
func NewPool(headlessMode, binPath string) *Pool {
	return &Pool{
		headless: headlessMode != "false",
		binPath:  binPath,
	}
}

// GetPage 获取一个新页面，复用全局浏览器实例
func (p *Pool) GetPage() (page *rod.Page, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureBrowser(); err != nil {
		return nil, fmt.Errorf("获取浏览器失败: %w", err)
	}

	page, err = p.newPage()
	if err != nil {
		// 浏览器可能已崩溃，重建一次
		logrus.Warnf("创建页面失败，尝试重建浏览器: %v", err)
		p.closeLocked()
		if err2 := p.ensureBrowser(); err2 != nil {
			return nil, fmt.Errorf("重建浏览器失败: %w", err2)
		}
		page, err = p.newPage()
		if err != nil {
			return nil, fmt.Errorf("重建后仍无法创建页面: %w", err)
		}
	}

	return page, nil
}

// ensureBrowser 确保浏览器存在（必须在持有锁时调用）。
// headless_browser 内部启动失败会 panic，这里转成错误。
func (p *Pool) ensureBrowser() (err error) {
	if p.browser != nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("启动浏览器失败: %v", r)
		}
	}()

	var options []browser.Option
	if p.binPath != "" {
		options = append(options, browser.WithBinPath(p.binPath))
	}

	p.browser = browser.NewBrowser(p.headless, options...)
	logrus.Info("全局浏览器实例已创建")
	return nil
}

// newPage 创建页面，panic 转错误（必须在持有锁时调用）
func (p *Pool) newPage() (page *rod.Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("创建页面失败: %v", r)
		}
	}()
	page = p.browser.NewPage()
	return page, nil
}

// closeLocked 关闭浏览器（必须在持有锁时调用）
func (p *Pool) closeLocked() {
	if p.browser != nil {
		p.browser.Close()
		p.browser = nil
	}
}

// Close 关闭浏览器池，进程退出时调用
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
}
