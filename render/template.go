package render

import (
	"encoding/base64"
	"html/template"
	"strings"

	"github.com/pkg/errors"

	"github.com/vincentzyu233/youtube-linkcard/youtube"
)

// 视频卡片模板：封面高斯模糊铺底，毛玻璃卡片承载标题、频道、
// 发布时间、播放量、简介和标签
var cardTemplate = template.Must(template.New("card").Parse(`<html>
<head>
    <style>
        body {
            margin: 0;
            padding: 0;
            font-family: 'Roboto', 'Arial', sans-serif;
            background-color: #000;
            display: flex;
            justify-content: center;
            align-items: center;
        }

        .background-container {
            position: absolute;
            top: 0;
            left: 0;
            width: 100%;
            height: 100%;
            z-index: 1;
        }

        .background-cover {
            width: 100%;
            height: 100%;
            object-fit: cover;
            filter: blur(25px) brightness(0.5);
            transform: scale(1.2);
        }

        .main-container {
            position: relative;
            z-index: 2;
            box-sizing: border-box;
            display: flex;
            justify-content: center;
            padding: 16px;
        }

        .container {
            width: 90%;
            max-width: 500px;
            border-radius: 16px;
            overflow: hidden;
            background-color: rgba(40, 40, 40, 0.7);
            backdrop-filter: blur(20px) saturate(150%);
            -webkit-backdrop-filter: blur(20px) saturate(150%);
            border: 1px solid rgba(255, 255, 255, 0.12);
            box-shadow: 0 8px 32px rgba(0, 0, 0, 0.4);
            display: flex;
            flex-direction: column;
        }

        .cover-container {
            position: relative;
            width: 100%;
            padding-bottom: 56.25%; /* 16:9 */
        }

        .cover {
            position: absolute;
            top: 0;
            left: 0;
            width: 100%;
            height: 100%;
            object-fit: cover;
        }

        .content {
            padding: 16px;
            display: flex;
            flex-direction: column;
            gap: 8px;
        }

        .title {
            font-size: 24px;
            font-weight: 700;
            line-height: 1.3;
            color: #ffffff;
            text-shadow: 0 2px 4px rgba(0,0,0,0.6);
            margin-bottom: 4px;
            letter-spacing: -0.5px;
        }

        .metadata {
            display: flex;
            flex-direction: column;
            gap: 6px;
            margin-bottom: 8px;
            padding: 12px 0;
            border-bottom: 1px solid rgba(255, 255, 255, 0.1);
        }

        .channel {
            font-size: 16px;
            font-weight: 600;
            color: #f0f0f0;
            text-shadow: 0 1px 2px rgba(0,0,0,0.4);
        }

        .stats-row {
            display: flex;
            align-items: center;
            gap: 12px;
            flex-wrap: wrap;
        }

        .publish-time {
            font-size: 13px;
            color: #cccccc;
            font-weight: 400;
            display: flex;
            align-items: center;
            gap: 4px;
        }

        .publish-time::before {
            content: "📅";
            font-size: 11px;
        }

        .view-count {
            font-size: 14px;
            color: #00bcd4;
            font-weight: 600;
            display: flex;
            align-items: center;
            gap: 4px;
            background: rgba(0, 188, 212, 0.1);
            padding: 3px 6px;
            border-radius: 6px;
            border: 1px solid rgba(0, 188, 212, 0.3);
        }

        .view-count::before {
            content: "▶️";
            font-size: 12px;
        }

        .description {
            font-size: 14px;
            line-height: 1.5;
            color: #e0e0e0;
            margin-top: 6px;
            white-space: pre-wrap;
            background: rgba(255, 255, 255, 0.05);
            padding: 10px;
            border-radius: 8px;
            border-left: 3px solid rgba(255, 255, 255, 0.2);
        }

        .tags {
            font-size: 12px;
            color: #64b5f6;
            font-weight: 500;
            margin-top: 6px;
            padding: 6px 10px;
            background: rgba(100, 181, 246, 0.1);
            border-radius: 8px;
            border: 1px solid rgba(100, 181, 246, 0.2);
        }
    </style>
</head>
<body>
    <div class="background-container">
        <img class="background-cover" src="{{.CoverDataURL}}" alt="Video Background">
    </div>
    <div class="main-container">
        <div class="container">
            <div class="cover-container">
                <img class="cover" src="{{.CoverDataURL}}" alt="Video Cover">
            </div>
            <div class="content">
                <div class="title">{{.Title}}</div>
                <div class="metadata">
                    <div class="channel">{{.Channel}}</div>
                    <div class="stats-row">
                        <div class="publish-time">{{.PublishTime}}</div>
                        <div class="view-count">{{.ViewCount}} views</div>
                    </div>
                </div>
                <div class="description">{{.Description}}</div>
                <div class="tags">{{.Tags}}</div>
            </div>
        </div>
    </div>
</body>
</html>`))

type cardData struct {
	CoverDataURL template.URL
	Title        string
	Channel      string
	PublishTime  string
	ViewCount    string
	Description  string
	Tags         string
}

// CardHTML 把归一化的视频数据填进卡片模板，缩略图内联为 data URL
func CardHTML(card *youtube.VideoCard) (string, error) {
	if card == nil {
		return "", errors.New("没有可渲染的视频数据")
	}

	mime := card.ThumbnailMime
	if mime == "" {
		mime = "image/jpeg"
	}
	dataURL := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(card.Thumbnail)

	var sb strings.Builder
	err := cardTemplate.Execute(&sb, cardData{
		CoverDataURL: template.URL(dataURL),
		Title:        card.Title,
		Channel:      card.Channel,
		PublishTime:  card.PublishTime,
		ViewCount:    card.ViewCount,
		Description:  card.Description,
		Tags:         card.Tags,
	})
	if err != nil {
		return "", errors.Wrap(err, "渲染卡片模板失败")
	}
	return sb.String(), nil
}
