package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func newRequestCtx(method, uri string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	return ctx
}

func TestLocateToken_Sources(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(ctx *fasthttp.RequestCtx)
		wantToken  string
		wantSource string
	}{
		{
			name: "x-auth-token header",
			setup: func(ctx *fasthttp.RequestCtx) {
				ctx.Request.Header.Set("x-auth-token", "tok-header")
			},
			wantToken:  "tok-header",
			wantSource: "x-auth-token header",
		},
		{
			name: "authorization bearer",
			setup: func(ctx *fasthttp.RequestCtx) {
				ctx.Request.Header.Set("Authorization", "Bearer tok-bearer")
			},
			wantToken:  "tok-bearer",
			wantSource: "Authorization header",
		},
		{
			name: "query parameter",
			setup: func(ctx *fasthttp.RequestCtx) {
				ctx.Request.SetRequestURI("/api/tasks?token=tok-query")
			},
			wantToken:  "tok-query",
			wantSource: "query parameter",
		},
		{
			name: "request body",
			setup: func(ctx *fasthttp.RequestCtx) {
				ctx.Request.Header.SetMethod(fasthttp.MethodPost)
				ctx.Request.SetBody([]byte(`{"token":"tok-body"}`))
			},
			wantToken:  "tok-body",
			wantSource: "request body",
		},
		{
			name: "cookie",
			setup: func(ctx *fasthttp.RequestCtx) {
				ctx.Request.Header.SetCookie("token", "tok-cookie")
			},
			wantToken:  "tok-cookie",
			wantSource: "cookie",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newRequestCtx(fasthttp.MethodGet, "/api/tasks")
			tt.setup(ctx)

			token, source, ok := LocateToken(ctx)
			require.True(t, ok)
			assert.Equal(t, tt.wantToken, token)
			assert.Equal(t, tt.wantSource, source)
		})
	}
}

func TestLocateToken_HeaderBeatsBearer(t *testing.T) {
	ctx := newRequestCtx(fasthttp.MethodGet, "/api/tasks?token=tok-query")
	ctx.Request.Header.Set("x-auth-token", "tok-header")
	ctx.Request.Header.Set("Authorization", "Bearer tok-bearer")

	token, source, ok := LocateToken(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok-header", token)
	assert.Equal(t, "x-auth-token header", source)
}

func TestLocateToken_SkipsPlaceholderValues(t *testing.T) {
	// Browsers serialise an empty localStorage slot to the literal strings
	// "null" or "undefined"; neither counts as a provided token.
	ctx := newRequestCtx(fasthttp.MethodGet, "/api/tasks")
	ctx.Request.Header.Set("x-auth-token", "null")
	ctx.Request.Header.Set("Authorization", "Bearer undefined")
	ctx.Request.Header.SetCookie("token", "tok-cookie")

	token, source, ok := LocateToken(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok-cookie", token)
	assert.Equal(t, "cookie", source)
}

func TestLocateToken_AuthorizationWithoutBearerPrefix(t *testing.T) {
	ctx := newRequestCtx(fasthttp.MethodGet, "/api/tasks")
	ctx.Request.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	_, _, ok := LocateToken(ctx)
	assert.False(t, ok)
}

func TestLocateToken_NoToken(t *testing.T) {
	ctx := newRequestCtx(fasthttp.MethodGet, "/api/tasks")

	token, source, ok := LocateToken(ctx)
	assert.False(t, ok)
	assert.Empty(t, token)
	assert.Empty(t, source)
}

func TestLocateToken_BodyNotJSON(t *testing.T) {
	ctx := newRequestCtx(fasthttp.MethodPost, "/api/tasks")
	ctx.Request.SetBody([]byte("not json at all"))

	_, _, ok := LocateToken(ctx)
	assert.False(t, ok)
}
