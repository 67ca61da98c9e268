package middleware

import (
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/core/ipfilter"
)

// IPGate は接続元 IP が許可リストに含まれるリクエストだけを通す
// ミドルウェアを返します。打刻系のエンドポイントに適用します。
func IPGate(filter *ipfilter.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			addr := ClientAddr(r)

			allowed, err := filter.Authorize(r.Context(), addr)
			if err != nil {
				log.Printf("ip gate: authorize %s: %v", addr, err)
				writeJSONError(w, http.StatusInternalServerError, "internal error")
				return
			}
			if !allowed {
				writeJSONError(w, http.StatusForbidden, "access denied from this network")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientAddr はリクエストの接続元 IP を返します。プロキシ経由の場合は
// X-Forwarded-For の先頭を優先します。
func ClientAddr(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}
