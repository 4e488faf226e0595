package restclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/vincentzyu233/youtube-linkcard/pkg/httpclient"
	"github.com/vincentzyu233/youtube-linkcard/youtube"
)

// 委托协议的路径，与 REST 服务端一致
const (
	PathParse         = "/parse"
	PathRenderFromURL = "/render-from-url"
	PathRender        = "/render"
)

// ParseRequest /parse 和 /render-from-url 的请求体
type ParseRequest struct {
	URL string `json:"url"`
}

// ParsePayload /parse 的成功响应，也是 /render 的请求体。
// 字段名沿用既有协议（包括 coverThumlnail 这个历史拼写），两端必须一致。
type ParsePayload struct {
	CoverThumbnail  string `json:"coverThumlnail"` // base64 编码的缩略图
	CoverMime       string `json:"coverMime"`
	TitleText       string `json:"titleText"`
	ChannelText     string `json:"channelText"`
	PublishTimeText string `json:"publishTimeText"`
	DescriptionText string `json:"descriptionText"`
	TagText         string `json:"tagText"`
	ViewCountText   string `json:"viewCountText"`
}

// RenderResponse 渲染类端点的成功响应
type RenderResponse struct {
	ImageBase64 string `json:"imageBase64"`
}

// ErrorResponse 失败响应
type ErrorResponse struct {
	Error string `json:"error"`
}

// FromVideoCard 把本地解析结果转成线上负载
func FromVideoCard(card *youtube.VideoCard) *ParsePayload {
	return &ParsePayload{
		CoverThumbnail:  base64.StdEncoding.EncodeToString(card.Thumbnail),
		CoverMime:       card.ThumbnailMime,
		TitleText:       card.Title,
		ChannelText:     card.Channel,
		PublishTimeText: card.PublishTime,
		DescriptionText: card.Description,
		TagText:         card.Tags,
		ViewCountText:   card.ViewCount,
	}
}

// ToVideoCard 把线上负载还原为本地结构，base64 缩略图解回字节
func (p *ParsePayload) ToVideoCard() (*youtube.VideoCard, error) {
	thumbnail, err := base64.StdEncoding.DecodeString(p.CoverThumbnail)
	if err != nil {
		return nil, errors.Wrap(err, "解码缩略图失败")
	}
	return &youtube.VideoCard{
		Title:         p.TitleText,
		Channel:       p.ChannelText,
		PublishTime:   p.PublishTimeText,
		Description:   p.DescriptionText,
		Tags:          p.TagText,
		ViewCount:     p.ViewCountText,
		Thumbnail:     thumbnail,
		ThumbnailMime: p.CoverMime,
	}, nil
}

// Client 委托模式下调用远端实例的客户端
type Client struct {
	baseURL    string
	httpClient httpclient.Doer
}

// New 创建客户端。baseURL 是远端实例地址，如 http://127.0.0.1:18020
func New(baseURL string, client httpclient.Doer) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

// Parse 让远端解析视频链接并返回归一化负载
func (c *Client) Parse(ctx context.Context, videoURL string) (*ParsePayload, error) {
	var payload ParsePayload
	if err := c.post(ctx, PathParse, ParseRequest{URL: videoURL}, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// RenderFromURL 让远端解析并渲染，返回解码后的图片字节
func (c *Client) RenderFromURL(ctx context.Context, videoURL string) ([]byte, error) {
	var resp RenderResponse
	if err := c.post(ctx, PathRenderFromURL, ParseRequest{URL: videoURL}, &resp); err != nil {
		return nil, err
	}
	return decodeImage(resp.ImageBase64)
}

// RenderPayload 把已解析好的负载交给远端渲染，不重新拉取元数据
func (c *Client) RenderPayload(ctx context.Context, payload *ParsePayload) ([]byte, error) {
	var resp RenderResponse
	if err := c.post(ctx, PathRender, payload, &resp); err != nil {
		return nil, err
	}
	return decodeImage(resp.ImageBase64)
}

// post 发送 JSON 请求。网络错误和非 2xx 都原样上抛，不编造兜底值。
func (c *Client) post(ctx context.Context, path string, reqBody, respBody any) error {
	targetURL := c.baseURL + path

	data, err := json.Marshal(reqBody)
	if err != nil {
		return errors.Wrap(err, "序列化请求失败")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, bytes.NewReader(data))
	if err != nil {
		return errors.Wrapf(err, "创建请求失败: %s", targetURL)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "调用远端服务失败: %s", targetURL)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "读取远端响应失败: %s", targetURL)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			return errors.Errorf("远端服务返回 %d: %s", resp.StatusCode, errResp.Error)
		}
		return errors.Errorf("远端服务返回非成功状态码 %d: %s", resp.StatusCode, targetURL)
	}

	if err := json.Unmarshal(body, respBody); err != nil {
		return errors.Wrapf(err, "解析远端响应失败: %s", targetURL)
	}
	return nil
}

func decodeImage(imageBase64 string) ([]byte, error) {
	if imageBase64 == "" {
		return nil, errors.New("远端返回了空的渲染结果")
	}
	image, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return nil, errors.Wrap(err, "解码渲染图片失败")
	}
	return image, nil
}
