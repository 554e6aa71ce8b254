package syncer

import (
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EJPOP/trade-system/internal/api"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"server error", &api.APIError{StatusCode: 500}, true},
		{"bad gateway", &api.APIError{StatusCode: 502}, true},
		{"rate limited", &api.APIError{StatusCode: 429}, true},
		{"forbidden", &api.APIError{StatusCode: 403}, false},
		{"bad request", &api.APIError{StatusCode: 400}, false},
		{"wrapped api error", fmt.Errorf("fetch: %w", &api.APIError{StatusCode: 503}), true},
		{"url error", &url.Error{Op: "Post", URL: "http://x", Err: errors.New("refused")}, true},
		{"timeout message", errors.New("request Timeout after 30s"), true},
		{"connection reset message", errors.New("read: connection reset by peer"), true},
		{"temporarily unavailable message", errors.New("503 Service Temporarily Unavailable"), true},
		{"plain error", errors.New("no such host resolved to anything useful"), false},
		{"structure error", &api.StructureError{Path: "/p", RootType: "OBJECT"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}

func TestIsSkippable(t *testing.T) {
	assert.True(t, isSkippable(&api.APIError{StatusCode: 403}))
	assert.True(t, isSkippable(fmt.Errorf("fetch: %w", &api.APIError{StatusCode: 403})))
	assert.True(t, isSkippable(errors.New("403 Forbidden")))
	assert.False(t, isSkippable(&api.APIError{StatusCode: 500}))
	assert.False(t, isSkippable(errors.New("timeout")))
}

func TestMergeErrors(t *testing.T) {
	assert.Equal(t, "", mergeErrors())
	assert.Equal(t, "", mergeErrors("", "  "))
	assert.Equal(t, "a", mergeErrors("a", ""))
	assert.Equal(t, "a | b", mergeErrors("a", "b"))
	assert.Equal(t, "a", mergeErrors("a", "a"))
	assert.Equal(t, "a | b", mergeErrors("a", "b", "a"))
}
