package httpclient

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"h12.io/socks"

	"github.com/vincentzyu233/youtube-linkcard/configs"
)

// Doer 统一的 HTTP 客户端接口。宿主默认客户端和独立代理客户端
// 都实现它，对同样的请求必须产生一致的结果。
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// 传输层统一超时，避免远端卡死时整个周期被无限挂起
const defaultTimeout = 30 * time.Second

var ambient = &http.Client{Timeout: defaultTimeout}

// Ambient 返回宿主环境的默认 HTTP 客户端
func Ambient() Doer {
	return ambient
}

// New 根据配置选择客户端：ambient 或带代理的独立客户端
func New(cfg *configs.Config) (Doer, error) {
	if cfg.RequestLib == configs.RequestLibProxy {
		return NewProxyClient(cfg)
	}
	return Ambient(), nil
}

// uaTransport 为每个请求补上配置的 User-Agent
type uaTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *uaTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}
	return t.base.RoundTrip(req)
}

// NewProxyClient 创建独立客户端，支持 http/https/socks4/socks5/socks5h 代理
func NewProxyClient(cfg *configs.Config) (Doer, error) {
	transport := &http.Transport{}

	switch cfg.ProxyProtocol {
	case configs.ProxyHTTP, configs.ProxyHTTPS:
		proxyURL, err := url.Parse(cfg.ProxyAddr())
		if err != nil {
			return nil, errors.Wrapf(err, "无效的代理地址: %s", cfg.ProxyAddr())
		}
		transport.Proxy = http.ProxyURL(proxyURL)

	case configs.ProxySOCKS4, configs.ProxySOCKS5, configs.ProxySOCKS5H:
		addr := cfg.ProxyAddr()
		if cfg.ProxyProtocol == configs.ProxySOCKS5H {
			// h12.io/socks 的 socks5 由代理端解析域名，等同 socks5h 语义
			addr = fmt.Sprintf("socks5://%s:%d", cfg.ProxyHost, cfg.ProxyPort)
		}
		dial := socks.Dial(addr)
		transport.DialContext = func(ctx context.Context, network, address string) (net.Conn, error) {
			return dial(network, address)
		}

	default:
		return nil, errors.Errorf("不支持的代理协议: %q", cfg.ProxyProtocol)
	}

	return &http.Client{
		Timeout: defaultTimeout,
		Transport: &uaTransport{
			base:      transport,
			userAgent: cfg.UserAgent,
		},
	}, nil
}
