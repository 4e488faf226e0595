package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vincentzyu233/youtube-linkcard/pkg/httpclient"
)

// PNG 魔数开头的最小图片字节，够过 filetype 的图片校验
var fakePNG = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func TestFetchVideo(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"id":   r.URL.Query().Get("id"),
			"key":  r.URL.Query().Get("key"),
			"part": r.URL.Query().Get("part"),
		}
		json.NewEncoder(w).Encode(sampleResponse())
	}))
	defer server.Close()

	fetcher := NewFetcher(httpclient.Ambient(), "test-key", WithEndpoint(server.URL))

	resp, err := fetcher.FetchVideo(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Never Gonna Give You Up", resp.Items[0].Snippet.Title)

	assert.Equal(t, "dQw4w9WgXcQ", gotQuery["id"])
	assert.Equal(t, "test-key", gotQuery["key"])
	assert.Equal(t, "snippet,contentDetails,statistics,status", gotQuery["part"])
}

func TestFetchVideoNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	fetcher := NewFetcher(httpclient.Ambient(), "bad-key", WithEndpoint(server.URL))

	_, err := fetcher.FetchVideo(context.Background(), "dQw4w9WgXcQ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dQw4w9WgXcQ")
}

func TestFetchVideoMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	fetcher := NewFetcher(httpclient.Ambient(), "k", WithEndpoint(server.URL))

	_, err := fetcher.FetchVideo(context.Background(), "dQw4w9WgXcQ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "上游响应格式错误")
}

func TestDownloadThumbnail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(fakePNG)
	}))
	defer server.Close()

	fetcher := NewFetcher(httpclient.Ambient(), "k")

	data, err := fetcher.DownloadThumbnail(context.Background(), server.URL+"/maxresdefault.png")
	require.NoError(t, err)
	assert.Equal(t, fakePNG, data)
}

// 前两次 500，第三次成功：重试应该兜住瞬时失败
func TestDownloadThumbnailRetries(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write(fakePNG)
	}))
	defer server.Close()

	fetcher := NewFetcher(httpclient.Ambient(), "k")

	data, err := fetcher.DownloadThumbnail(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, fakePNG, data)
	assert.Equal(t, 3, calls)
}

func TestDownloadThumbnailNotImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>access denied</html>"))
	}))
	defer server.Close()

	fetcher := NewFetcher(httpclient.Ambient(), "k")

	_, err := fetcher.DownloadThumbnail(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "不是有效图片")
}

func TestParseVideoEndToEnd(t *testing.T) {
	thumbServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(fakePNG)
	}))
	defer thumbServer.Close()

	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := sampleResponse()
		resp.Items[0].Snippet.Thumbnails.Maxres.URL = thumbServer.URL + "/maxresdefault.jpg"
		json.NewEncoder(w).Encode(resp)
	}))
	defer apiServer.Close()

	fetcher := NewFetcher(httpclient.Ambient(), "k", WithEndpoint(apiServer.URL))

	card, err := fetcher.ParseVideo(context.Background(),
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ", DescriptionPolicy{Hide: true})
	require.NoError(t, err)

	assert.Equal(t, "Never Gonna Give You Up", card.Title)
	assert.Equal(t, DescriptionHidden, card.Description)
	assert.Equal(t, fakePNG, card.Thumbnail)
	assert.Equal(t, "image/jpg", card.ThumbnailMime)
}

func TestParseVideoNoLink(t *testing.T) {
	fetcher := NewFetcher(httpclient.Ambient(), "k")

	_, err := fetcher.ParseVideo(context.Background(), "随便聊聊", DescriptionPolicy{})
	require.ErrorIs(t, err, ErrNoVideoLink)
}

func TestParseVideoEmptyResult(t *testing.T) {
	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[]}`)
	}))
	defer apiServer.Close()

	fetcher := NewFetcher(httpclient.Ambient(), "k", WithEndpoint(apiServer.URL))

	_, err := fetcher.ParseVideo(context.Background(),
		"https://youtu.be/dQw4w9WgXcQ", DescriptionPolicy{})
	require.ErrorIs(t, err, ErrNoData)
	assert.Contains(t, err.Error(), "dQw4w9WgXcQ")
}
