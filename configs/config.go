package configs

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// WorkMode 中间件工作模式
type WorkMode string

const (
	WorkModeStandalone WorkMode = "standalone" // 独立模式：本地解析+渲染
	WorkModeDelegate   WorkMode = "delegate"   // 委托模式：转发给远端实例处理
)

// MsgForm 消息发送形式
type MsgForm string

const (
	MsgFormText    MsgForm = "text"
	MsgFormImage   MsgForm = "image"
	MsgFormForward MsgForm = "forward" // 合并转发，暂未实现
)

// RequestLib 网络请求方式
type RequestLib string

const (
	RequestLibAmbient RequestLib = "ambient"      // 使用宿主环境默认的 HTTP 客户端
	RequestLibProxy   RequestLib = "proxy_client" // 使用独立客户端（支持代理和自定义 UA）
)

// ProxyProtocol 代理协议
type ProxyProtocol string

const (
	ProxyHTTP    ProxyProtocol = "http"
	ProxyHTTPS   ProxyProtocol = "https"
	ProxySOCKS4  ProxyProtocol = "socks4"
	ProxySOCKS5  ProxyProtocol = "socks5"
	ProxySOCKS5H ProxyProtocol = "socks5h" // 支持远程 DNS
)

// PlatformWhitelist 单个平台的白名单条目
type PlatformWhitelist struct {
	PlatformName    string   `mapstructure:"platform_name"`
	UserIDWhitelist []string `mapstructure:"user_id_whitelist"`
}

// Config 插件完整配置。启动时加载一次，之后只读。
type Config struct {
	// 基础配置
	YoutubeAPIKey     string   `mapstructure:"youtube_api_key"`
	EnableParseURL    bool     `mapstructure:"enable_parse_url"`
	WorkMode          WorkMode `mapstructure:"work_mode"`
	DelegateTargetURL string   `mapstructure:"delegate_target_url"`

	// 网络请求代理配置
	RequestLib    RequestLib    `mapstructure:"request_lib"`
	ProxyProtocol ProxyProtocol `mapstructure:"proxy_protocol"`
	ProxyHost     string        `mapstructure:"proxy_host"`
	ProxyPort     int           `mapstructure:"proxy_port"`
	UserAgent     string        `mapstructure:"user_agent"`

	// 视频简介配置
	HideDescription      bool `mapstructure:"hide_description"`
	MaxDescriptionLength int  `mapstructure:"max_description_length"`

	// 消息发送形式配置
	MsgForms      []MsgForm `mapstructure:"msg_forms"`
	QuoteWhenSend bool      `mapstructure:"quote_when_send"`

	// 平台白名单配置
	PlatformWhitelists []PlatformWhitelist `mapstructure:"platform_whitelists"`
	SendWhitelistHint  bool                `mapstructure:"send_whitelist_hint"`

	// REST 服务配置
	EnableRestService bool   `mapstructure:"enable_rest_service"`
	RestBindHost      string `mapstructure:"rest_bind_host"`
	RestBindPort      int    `mapstructure:"rest_bind_port"`

	// 浏览器配置
	HeadlessMode   string `mapstructure:"headless_mode"` // new(推荐)/true/false
	BrowserBinPath string `mapstructure:"browser_bin_path"`

	// 调试配置
	EnableVerboseSessionOutput bool `mapstructure:"enable_verbose_session_output"`
	EnableVerboseConsoleOutput bool `mapstructure:"enable_verbose_console_output"`
}

// setDefaults 与原插件的默认值保持一致
func setDefaults(v *viper.Viper) {
	v.SetDefault("enable_parse_url", true)
	v.SetDefault("work_mode", string(WorkModeStandalone))
	v.SetDefault("delegate_target_url", "http://127.0.0.1:8020")

	v.SetDefault("request_lib", string(RequestLibAmbient))
	v.SetDefault("proxy_protocol", string(ProxySOCKS5))
	v.SetDefault("proxy_host", "127.0.0.1")
	v.SetDefault("proxy_port", 7890)
	v.SetDefault("user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/138.0.0.0 Safari/537.36")

	v.SetDefault("hide_description", true)
	v.SetDefault("max_description_length", 300)

	v.SetDefault("msg_forms", []string{string(MsgFormText)})
	v.SetDefault("quote_when_send", true)

	v.SetDefault("send_whitelist_hint", true)

	v.SetDefault("enable_rest_service", false)
	v.SetDefault("rest_bind_host", "0.0.0.0")
	v.SetDefault("rest_bind_port", 18020)

	v.SetDefault("headless_mode", "new")
}

// Load 从配置文件加载配置并校验。path 为空时在当前目录查找 config.yaml。
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		// 配置文件不存在时允许纯默认值启动，其余读取错误直接失败
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "读取配置文件失败")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "解析配置失败")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 启动时快速失败，避免把配置错误留到消息处理阶段
func (c *Config) Validate() error {
	if c.YoutubeAPIKey == "" {
		return errors.New("缺少必填配置 youtube_api_key")
	}

	switch c.WorkMode {
	case WorkModeStandalone, WorkModeDelegate:
	default:
		return errors.Errorf("无效的工作模式: %q", c.WorkMode)
	}

	if c.WorkMode == WorkModeDelegate && c.DelegateTargetURL == "" {
		return errors.New("委托模式需要配置 delegate_target_url")
	}

	switch c.RequestLib {
	case RequestLibAmbient, RequestLibProxy:
	default:
		return errors.Errorf("无效的请求方式: %q", c.RequestLib)
	}

	if c.RequestLib == RequestLibProxy {
		switch c.ProxyProtocol {
		case ProxyHTTP, ProxyHTTPS, ProxySOCKS4, ProxySOCKS5, ProxySOCKS5H:
		default:
			return errors.Errorf("无效的代理协议: %q", c.ProxyProtocol)
		}
		if c.ProxyPort < 0 || c.ProxyPort > 65535 {
			return errors.Errorf("代理端口超出范围: %d", c.ProxyPort)
		}
	}

	for _, form := range c.MsgForms {
		switch form {
		case MsgFormText, MsgFormImage, MsgFormForward:
		default:
			return errors.Errorf("无效的消息形式: %q", form)
		}
	}

	if c.MaxDescriptionLength < 0 {
		return errors.Errorf("简介最大长度不能为负数: %d", c.MaxDescriptionLength)
	}

	return nil
}

// WhitelistTable 转换为 平台名 -> 用户ID列表 的查询表
func (c *Config) WhitelistTable() map[string][]string {
	if len(c.PlatformWhitelists) == 0 {
		return nil
	}
	table := make(map[string][]string, len(c.PlatformWhitelists))
	for _, entry := range c.PlatformWhitelists {
		table[entry.PlatformName] = entry.UserIDWhitelist
	}
	return table
}

// RestBindAddr REST 服务监听地址
func (c *Config) RestBindAddr() string {
	return fmt.Sprintf("%s:%d", c.RestBindHost, c.RestBindPort)
}

// ProxyAddr 代理地址（协议://主机:端口）
func (c *Config) ProxyAddr() string {
	return fmt.Sprintf("%s://%s:%d", c.ProxyProtocol, c.ProxyHost, c.ProxyPort)
}

// HasMsgForm 是否启用了某种消息形式
func (c *Config) HasMsgForm(form MsgForm) bool {
	for _, f := range c.MsgForms {
		if f == form {
			return true
		}
	}
	return false
}
