package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/vincentzyu233/youtube-linkcard/configs"
	"github.com/vincentzyu233/youtube-linkcard/pkg/httpclient"
	"github.com/vincentzyu233/youtube-linkcard/render"
	"github.com/vincentzyu233/youtube-linkcard/youtube"
)

func main() {
	var (
		configPath   string
		addr         string
		headlessMode string
		binPath      string // 浏览器二进制文件路径
	)
	flag.StringVar(&configPath, "config", "", "配置文件路径，默认在当前目录查找 config.yaml")
	flag.StringVar(&addr, "port", "", "监听地址，覆盖配置里的 rest_bind_host/rest_bind_port")
	flag.StringVar(&headlessMode, "headless-mode", "", "headless模式: new(推荐)/true/false，覆盖配置")
	flag.StringVar(&binPath, "bin", "", "浏览器二进制文件路径，覆盖配置")
	flag.Parse()

	cfg, err := configs.Load(configPath)
	if err != nil {
		logrus.Fatalf("加载配置失败: %v", err)
	}

	if headlessMode != "" {
		cfg.HeadlessMode = headlessMode
	}
	if binPath == "" {
		binPath = os.Getenv("ROD_BROWSER_BIN")
	}
	if binPath != "" {
		cfg.BrowserBinPath = binPath
	}
	if addr == "" {
		addr = cfg.RestBindAddr()
	}

	httpClient, err := httpclient.New(cfg)
	if err != nil {
		logrus.Fatalf("初始化 HTTP 客户端失败: %v", err)
	}

	fetcher := youtube.NewFetcher(httpClient, cfg.YoutubeAPIKey)
	pool := render.NewPool(cfg.HeadlessMode, cfg.BrowserBinPath)
	renderer := render.NewRenderer(pool)

	// 初始化服务
	youtubeService := NewYoutubeService(fetcher, renderer, cfg)

	// 以独立进程方式运行时总是提供 REST 服务，
	// enable_rest_service 开关针对的是嵌入聊天宿主的场景
	if !cfg.EnableRestService {
		logrus.Info("enable_rest_service 未开启，独立运行时仍启动 REST 服务")
	}

	// 创建并启动应用服务器
	appServer := NewAppServer(youtubeService, pool)
	if err := appServer.Start(addr); err != nil {
		logrus.Fatalf("failed to run server: %v", err)
	}
}
