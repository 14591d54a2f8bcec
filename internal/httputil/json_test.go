// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test/0.1", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"name":"acme"}`)
	}))
	defer ts.Close()

	var got struct {
		Name string `json:"name"`
	}
	err := GetJSON(context.Background(), ts.Client(), ts.URL, "test/0.1", &got)
	require.NoError(t, err)
	assert.Equal(t, "acme", got.Name)
}

func TestGetJSON_StatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"Invalid API key."}`+"\n")
	}))
	defer ts.Close()

	var v map[string]any
	err := GetJSON(context.Background(), ts.Client(), ts.URL, "", &v)

	var se *StatusError
	require.True(t, errors.As(err, &se), "want *StatusError, got %v", err)
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, `{"error":"Invalid API key."}`, se.Body)
}

func TestGetJSON_DecodeError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `not json`)
	}))
	defer ts.Close()

	var v map[string]any
	err := GetJSON(context.Background(), ts.Client(), ts.URL, "", &v)

	var de *DecodeError
	assert.True(t, errors.As(err, &de), "want *DecodeError, got %v", err)
}

func TestGetJSON_RateLimitNotRetried(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	var v map[string]any
	err := GetJSON(context.Background(), ts.Client(), ts.URL, "", &v)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
