package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sagarc03/facerelay"
	"github.com/sagarc03/facerelay/filesystem"
	relayhttp "github.com/sagarc03/facerelay/http"
	"github.com/sagarc03/facerelay/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLiveServer(t *testing.T) *httptest.Server {
	t.Helper()

	storage, root, err := filesystem.Open(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = root.Close() })

	service, err := facerelay.NewService(facerelay.Repos{
		History: memory.NewHistory(),
		Names:   memory.NewSettings(),
		Tuning:  memory.NewSettings(),
	}, storage, facerelay.ServiceConfig{})
	require.NoError(t, err)

	handler := relayhttp.NewHandler(&relayhttp.HandlerConfig{Logger: discardLogger}, service)
	server := httptest.NewServer(handler.Router())
	t.Cleanup(server.Close)

	return server
}

func postUpload(t *testing.T, server *httptest.Server, fields map[string]string, fileName, content string) *http.Response {
	t.Helper()

	body, contentType := multipartBody(t, fields, fileName, []byte(content))
	resp, err := http.Post(server.URL+"/upload", contentType, body)
	require.NoError(t, err)
	return resp
}

func TestIntegration_UploadFlow(t *testing.T) {
	server := newLiveServer(t)

	resp, err := http.Get(server.URL + "/data/")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "empty history")

	resp = postUpload(t, server, uploadFields(), "image.png", "first frame")
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(server.URL + "/data/")
	require.NoError(t, err)
	var data facerelay.LatestData
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
	_ = resp.Body.Close()

	assert.Equal(t, "Alice", data.RecognizedName)
	require.NotNil(t, data.File)
	assert.True(t, strings.HasSuffix(*data.File, "uploads/image.png"))

	resp, err = http.Get(server.URL + "/file/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "first frame", string(body))
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	// the face is lost: a record without a file becomes the latest
	lost := uploadFields()
	lost["recognizestate"] = "lost"
	resp = postUpload(t, server, lost, "", "")
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(server.URL + "/data")
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
	_ = resp.Body.Close()
	assert.Equal(t, "lost", data.RecognizeState)
	assert.Nil(t, data.File)

	resp, err = http.Get(server.URL + "/file")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "No file available")
}

func TestIntegration_UpdateNameFlow(t *testing.T) {
	server := newLiveServer(t)

	getName := func() string {
		resp, err := http.Get(server.URL + "/getupdatename")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		var got relayhttp.UpdateNameResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		return got.UpdateName
	}

	assert.Equal(t, "NotYet", getName())

	body, contentType := multipartBody(t, map[string]string{"name": "Bob"}, "", nil)
	resp, err := http.Post(server.URL+"/update-name/", contentType, body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "Bob", getName())

	resp, err = http.Post(server.URL+"/clearupdatename", "", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "NotYet", getName())
}

func TestIntegration_Intervals(t *testing.T) {
	server := newLiveServer(t)

	resp, err := http.Post(server.URL+"/set-recognition-interval/", "application/json", strings.NewReader(`{"interval":15}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(server.URL + "/intervals")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var got facerelay.Intervals
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, facerelay.Intervals{Upload: 1, Recognition: 15}, got)
}
