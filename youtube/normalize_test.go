package youtube

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResponse() *VideoListResponse {
	return &VideoListResponse{
		Items: []VideoItem{{
			ID: "dQw4w9WgXcQ",
			Snippet: Snippet{
				PublishedAt:  "2009-10-25T06:57:33Z",
				ChannelTitle: "Rick Astley",
				Title:        "Never Gonna Give You Up",
				Description:  "The official video.",
				Tags:         []string{"rick astley", "music", "80s"},
				Thumbnails: Thumbnails{
					High:   &Thumbnail{URL: "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg"},
					Maxres: &Thumbnail{URL: "https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg"},
				},
			},
			Statistics: Statistics{ViewCount: "1234567890"},
		}},
	}
}

func TestNormalize(t *testing.T) {
	card, err := Normalize(sampleResponse(), DescriptionPolicy{})
	require.NoError(t, err)

	assert.Equal(t, "Never Gonna Give You Up", card.Title)
	assert.Equal(t, "Rick Astley", card.Channel)
	assert.Equal(t, "2009-10-25T06:57:33Z", card.PublishTime)
	assert.Equal(t, "1,234,567,890", card.ViewCount)
	assert.Equal(t, "rick astley, music, 80s", card.Tags)
	assert.Equal(t, "The official video.", card.Description)
	assert.Equal(t, "https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg", card.ThumbnailURL)
	assert.Equal(t, "image/jpg", card.ThumbnailMime)
}

func TestNormalizeEmptyItems(t *testing.T) {
	_, err := Normalize(&VideoListResponse{}, DescriptionPolicy{})
	require.ErrorIs(t, err, ErrNoData)

	_, err = Normalize(nil, DescriptionPolicy{})
	require.ErrorIs(t, err, ErrNoData)
}

// 隐藏统计的视频没有 viewCount 字段，必须给占位而不是崩溃
func TestNormalizeViewCountAbsent(t *testing.T) {
	resp := sampleResponse()
	resp.Items[0].Statistics = Statistics{}

	card, err := Normalize(resp, DescriptionPolicy{})
	require.NoError(t, err)
	assert.Equal(t, ViewCountUnknown, card.ViewCount)
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want string
	}{
		{name: "无标签", tags: nil, want: NoTagsSentinel},
		{name: "单个标签", tags: []string{"music"}, want: "music"},
		{name: "多个标签", tags: []string{"a", "b"}, want: "a, b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := sampleResponse()
			resp.Items[0].Snippet.Tags = tt.tags
			card, err := Normalize(resp, DescriptionPolicy{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, card.Tags)
		})
	}
}

func TestNormalizeDescriptionHidden(t *testing.T) {
	for _, desc := range []string{"", "短简介", strings.Repeat("x", 1000)} {
		resp := sampleResponse()
		resp.Items[0].Snippet.Description = desc

		card, err := Normalize(resp, DescriptionPolicy{Hide: true, MaxLength: 300})
		require.NoError(t, err)
		assert.Equal(t, DescriptionHidden, card.Description)
	}
}

func TestNormalizeDescriptionTruncated(t *testing.T) {
	resp := sampleResponse()
	resp.Items[0].Snippet.Description = strings.Repeat("a", 400)

	card, err := Normalize(resp, DescriptionPolicy{Hide: false, MaxLength: 300})
	require.NoError(t, err)

	assert.Equal(t, strings.Repeat("a", 300)+"...(100CHARACTERS HAS BEEN OMITEED.)", card.Description)
}

func TestNormalizeDescriptionPassThrough(t *testing.T) {
	resp := sampleResponse()
	resp.Items[0].Snippet.Description = "刚好不超长"

	card, err := Normalize(resp, DescriptionPolicy{Hide: false, MaxLength: 300})
	require.NoError(t, err)
	assert.Equal(t, "刚好不超长", card.Description)
}

// maxres 缺失时回退到下一档
func TestNormalizeThumbnailFallback(t *testing.T) {
	resp := sampleResponse()
	resp.Items[0].Snippet.Thumbnails.Maxres = nil

	card, err := Normalize(resp, DescriptionPolicy{})
	require.NoError(t, err)
	assert.Equal(t, "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg", card.ThumbnailURL)
}

func TestNormalizeNoThumbnail(t *testing.T) {
	resp := sampleResponse()
	resp.Items[0].Snippet.Thumbnails = Thumbnails{}

	_, err := Normalize(resp, DescriptionPolicy{})
	require.Error(t, err)
}

func TestMimeFromURL(t *testing.T) {
	assert.Equal(t, "image/jpg", MimeFromURL("https://i.ytimg.com/vi/x/maxresdefault.jpg"))
	assert.Equal(t, "image/webp", MimeFromURL("https://i.ytimg.com/vi_webp/x/maxresdefault.webp?v=1"))
	assert.Equal(t, "image/jpeg", MimeFromURL("https://i.ytimg.com/vi/x/noext"))
}
