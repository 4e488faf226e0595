package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vincentzyu233/youtube-linkcard/configs"
	"github.com/vincentzyu233/youtube-linkcard/pkg/httpclient"
	"github.com/vincentzyu233/youtube-linkcard/render"
	"github.com/vincentzyu233/youtube-linkcard/youtube"
)

var fakePNG = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

// newTestRouter 搭一个指向假上游的完整路由。
// 渲染器不带浏览器池，渲染类端点用来验证 500 路径。
func newTestRouter(t *testing.T) (*gin.Engine, func()) {
	t.Helper()

	imageServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(fakePNG)
	}))

	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(youtube.VideoListResponse{
			Items: []youtube.VideoItem{{
				ID: "dQw4w9WgXcQ",
				Snippet: youtube.Snippet{
					Title:        "Never Gonna Give You Up",
					ChannelTitle: "Rick Astley",
					PublishedAt:  "2009-10-25T06:57:33Z",
					Description:  "The official video.",
					Tags:         []string{"rick astley", "music"},
					Thumbnails: youtube.Thumbnails{
						Maxres: &youtube.Thumbnail{URL: imageServer.URL + "/maxres.jpg"},
					},
				},
				Statistics: youtube.Statistics{ViewCount: "1234567890"},
			}},
		})
	}))

	cfg := &configs.Config{HideDescription: false, MaxDescriptionLength: 300}
	fetcher := youtube.NewFetcher(httpclient.Ambient(), "test-key", youtube.WithEndpoint(apiServer.URL))
	service := NewYoutubeService(fetcher, render.NewRenderer(nil), cfg)

	appServer := NewAppServer(service, nil)
	router := setupRoutes(appServer)

	cleanup := func() {
		apiServer.Close()
		imageServer.Close()
	}
	return router, cleanup
}

func doJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestParseEndpoint(t *testing.T) {
	router, cleanup := newTestRouter(t)
	defer cleanup()

	rec := doJSON(router, "/parse", ParseRequest{URL: "https://youtu.be/dQw4w9WgXcQ"})
	require.Equal(t, http.StatusOK, rec.Code)

	var payload ParsePayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "Never Gonna Give You Up", payload.TitleText)
	assert.Equal(t, "Rick Astley", payload.ChannelText)
	assert.Equal(t, "1,234,567,890", payload.ViewCountText)
	assert.Equal(t, "image/jpg", payload.CoverMime)

	thumbnail, err := base64.StdEncoding.DecodeString(payload.CoverThumbnail)
	require.NoError(t, err)
	assert.Equal(t, fakePNG, thumbnail)

	// 线格式字段名必须保持历史拼写
	assert.Contains(t, rec.Body.String(), `"coverThumlnail"`)
}

func TestParseEndpointMissingURL(t *testing.T) {
	router, cleanup := newTestRouter(t)
	defer cleanup()

	rec := doJSON(router, "/parse", map[string]string{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "URL is required", errResp.Error)
}

func TestParseEndpointInvalidLink(t *testing.T) {
	router, cleanup := newTestRouter(t)
	defer cleanup()

	rec := doJSON(router, "/parse", ParseRequest{URL: "https://example.com/not-a-video"})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Contains(t, errResp.Error, "Failed to parse video info")
}

// 没有浏览器渲染能力时渲染类端点返回 500 带 error 体
func TestRenderFromURLEndpointUnavailable(t *testing.T) {
	router, cleanup := newTestRouter(t)
	defer cleanup()

	rec := doJSON(router, "/render-from-url", ParseRequest{URL: "https://youtu.be/dQw4w9WgXcQ"})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Contains(t, errResp.Error, "Failed to render image")
}

func TestRenderFromURLEndpointMissingURL(t *testing.T) {
	router, cleanup := newTestRouter(t)
	defer cleanup()

	rec := doJSON(router, "/render-from-url", map[string]string{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router, cleanup := newTestRouter(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}
