package authservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixshare/image-service/log"
)

func TestGetUserNames(t *testing.T) {
	require.NoError(t, log.Initialize("", false))

	var gotSecret string
	var gotBody struct {
		UserIDs []int64 `json:"userIds"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSecret = r.Header.Get("X-Service-Secret")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"names":{"1":"alice","2":"bob"}}`))
	}))
	defer server.Close()

	client := New(server.URL, "topsecret")
	names, err := client.GetUserNames(context.Background(), []int64{1, 2})
	require.NoError(t, err)

	assert.Equal(t, "topsecret", gotSecret)
	assert.Equal(t, []int64{1, 2}, gotBody.UserIDs)
	assert.Equal(t, map[int64]string{1: "alice", 2: "bob"}, names)
}

func TestGetUserNamesRejectedStatus(t *testing.T) {
	require.NoError(t, log.Initialize("", false))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := New(server.URL, "wrong")
	_, err := client.GetUserNames(context.Background(), []int64{1})
	assert.ErrorContains(t, err, "auth service responded with status 403")
}

func TestGetUserNamesUnreachable(t *testing.T) {
	require.NoError(t, log.Initialize("", false))

	client := New("http://127.0.0.1:1", "secret")
	_, err := client.GetUserNames(context.Background(), []int64{1})
	assert.ErrorContains(t, err, "fail to call auth service")
}
