package adapter

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return false }

func TestIsConnectivityError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil",
			err:  nil,
			want: false,
		},
		{
			name: "connection refused through url.Error",
			err: &url.Error{
				Op:  "Post",
				URL: "http://127.0.0.1:1/v1/stories",
				Err: &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED},
			},
			want: true,
		},
		{
			name: "dns failure",
			err: &url.Error{
				Op:  "Get",
				URL: "http://no-such-host/v1/stories",
				Err: &net.DNSError{Err: "no such host", Name: "no-such-host"},
			},
			want: true,
		},
		{
			name: "request timeout",
			err: &url.Error{
				Op:  "Get",
				URL: "http://127.0.0.1:1/v1/stories",
				Err: timeoutError{},
			},
			want: true,
		},
		{
			name: "context deadline",
			err:  fmt.Errorf("get stories: %w", context.DeadlineExceeded),
			want: true,
		},
		{
			name: "malformed url",
			err: &url.Error{
				Op:  "parse",
				URL: "://broken",
				Err: errors.New("missing protocol scheme"),
			},
			want: false,
		},
		{
			name: "cancelled request",
			err:  fmt.Errorf("get stories: %w", context.Canceled),
			want: false,
		},
		{
			name: "service rejection",
			err:  &APIError{Status: 400, Message: "\"description\" is required"},
			want: false,
		},
		{
			name: "auth rejection",
			err:  ErrUnauthorized,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsConnectivityError(tt.err))
		})
	}
}
