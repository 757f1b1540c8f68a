package proxy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestProxy_ForwardsVerbatim(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath, gotQuery, gotBody string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 42}`))
	}))
	t.Cleanup(backend.Close)

	p, err := New(backend.URL, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	front := httptest.NewServer(p.Handler())
	t.Cleanup(front.Close)

	resp, err := http.Post(front.URL+"/api/v1/convoys?dry_run=1", "application/json", strings.NewReader(`{"name":"Anvil"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if gotMethod != http.MethodPost || gotPath != "/api/v1/convoys" {
		t.Fatalf("backend saw %s %s", gotMethod, gotPath)
	}
	if gotQuery != "dry_run=1" {
		t.Fatalf("query = %q, want preserved", gotQuery)
	}
	if gotBody != `{"name":"Anvil"}` {
		t.Fatalf("body = %q, want preserved", gotBody)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want backend's 201 passed through", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != `{"id": 42}` {
		t.Fatalf("body = %q, want backend body verbatim", body)
	}
}

func TestProxy_AllVerbsRouted(t *testing.T) {
	t.Parallel()

	var methods []string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
	}))
	t.Cleanup(backend.Close)

	p, _ := New(backend.URL, nil)
	front := httptest.NewServer(p.Handler())
	t.Cleanup(front.Close)

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete} {
		req, _ := http.NewRequest(method, front.URL+"/anything/nested/path", nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("%s failed: %v", method, err)
		}
		_ = resp.Body.Close()
	}
	if len(methods) != 4 {
		t.Fatalf("backend saw %v, want all four verbs", methods)
	}
}

func TestProxy_BackendUnreachableReturns503(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	backend.Close() // port now refuses connections

	p, _ := New(backend.URL, nil)
	front := httptest.NewServer(p.Handler())
	t.Cleanup(front.Close)

	resp, err := http.Get(front.URL + "/api/v1/routes")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != `{"error":"Backend unreachable"}` {
		t.Fatalf("body = %q, want fixed error payload", body)
	}
}

func TestProxy_MetricsEndpoint(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	t.Cleanup(backend.Close)

	p, _ := New(backend.URL, nil)
	front := httptest.NewServer(p.Handler())
	t.Cleanup(front.Close)

	// Generate one forwarded request so the counter has a sample.
	resp, err := http.Get(front.URL + "/api/v1/state")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	_ = resp.Body.Close()

	resp, err = http.Get(front.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "vanguard_proxy_requests_total") {
		t.Fatal("metrics output missing request counter")
	}
}
