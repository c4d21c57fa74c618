package middleware

import (
	"encoding/json"
	"strings"

	"github.com/valyala/fasthttp"
)

// TokenExtractor pulls a candidate token out of one request location.
type TokenExtractor struct {
	Source  string
	Extract func(ctx *fasthttp.RequestCtx) string
}

// TokenExtractors is the fallback chain, tried in order. It is plain data so
// sources can be added or reordered without touching verification.
var TokenExtractors = []TokenExtractor{
	{
		Source: "x-auth-token header",
		Extract: func(ctx *fasthttp.RequestCtx) string {
			return string(ctx.Request.Header.Peek("x-auth-token"))
		},
	},
	{
		Source: "Authorization header",
		Extract: func(ctx *fasthttp.RequestCtx) string {
			auth := string(ctx.Request.Header.Peek("Authorization"))
			if strings.HasPrefix(auth, "Bearer ") {
				return strings.TrimPrefix(auth, "Bearer ")
			}
			return ""
		},
	},
	{
		Source: "query parameter",
		Extract: func(ctx *fasthttp.RequestCtx) string {
			return string(ctx.QueryArgs().Peek("token"))
		},
	},
	{
		Source: "request body",
		Extract: func(ctx *fasthttp.RequestCtx) string {
			body := ctx.PostBody()
			if len(body) == 0 {
				return ""
			}
			var payload struct {
				Token string `json:"token"`
			}
			if err := json.Unmarshal(body, &payload); err != nil {
				return ""
			}
			return payload.Token
		},
	},
	{
		Source: "cookie",
		Extract: func(ctx *fasthttp.RequestCtx) string {
			return string(ctx.Request.Header.Cookie("token"))
		},
	},
}

// LocateToken walks the chain and returns the first usable candidate together
// with the name of the source that produced it. Literal "null"/"undefined"
// values, which browsers hand over from an empty localStorage, do not count.
func LocateToken(ctx *fasthttp.RequestCtx) (token, source string, ok bool) {
	for _, e := range TokenExtractors {
		candidate := e.Extract(ctx)
		if usableToken(candidate) {
			return candidate, e.Source, true
		}
	}
	return "", "", false
}

func usableToken(token string) bool {
	return token != "" && token != "null" && token != "undefined"
}
