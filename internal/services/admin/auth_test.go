package admin

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHasSameOriginProof(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		referer string
		proto   string
		tls     bool
		want    bool
	}{
		{name: "matching origin", origin: "http://example.com", want: true},
		{name: "foreign origin", origin: "http://evil.test"},
		{name: "null origin", origin: "null"},
		{name: "scheme mismatch", origin: "https://example.com"},
		{name: "forwarded https", origin: "https://example.com", proto: "https, http", want: true},
		{name: "tls request", origin: "https://example.com", tls: true, want: true},
		{name: "referer fallback", referer: "http://example.com/admin/news", want: true},
		{name: "foreign referer", referer: "http://evil.test/admin"},
		{name: "no proof"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admin/news", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if tc.referer != "" {
				req.Header.Set("Referer", tc.referer)
			}
			if tc.proto != "" {
				req.Header.Set("X-Forwarded-Proto", tc.proto)
			}
			if tc.tls {
				req.TLS = &tls.ConnectionState{}
			}
			if got := hasSameOriginProof(req); got != tc.want {
				t.Fatalf("hasSameOriginProof = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestLoginNextOnlyRemembersGets(t *testing.T) {
	get := httptest.NewRequest(http.MethodGet, "/admin/projects?q=villa", nil)
	if got := loginNext(get); got != "/admin/projects?q=villa" {
		t.Fatalf("loginNext(GET) = %q", got)
	}
	post := httptest.NewRequest(http.MethodPost, "/admin/projects", nil)
	if got := loginNext(post); got != "" {
		t.Fatalf("loginNext(POST) = %q, want empty", got)
	}
}
