package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/opsdeck/opsdeck/pkg/model"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(srv.URL, "test-token", logger)
}

func TestUsersListDecodesPage(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/users" {
			t.Errorf("path = %s, want /api/v1/users", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("size") != "10" {
			t.Errorf("pagination query = %v", q)
		}
		if q.Get("status") != "ACTIVE" {
			t.Errorf("status query = %q, want ACTIVE", q.Get("status"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"content": [{"id": "usr_001", "email": "a@example.com", "status": "ACTIVE"}],
			"totalElements": 21, "totalPages": 3, "size": 10, "number": 2,
			"first": false, "last": true
		}`))
	})

	pg, err := c.Users().List(context.Background(), 2, 10, model.UserFilter{Status: model.UserActive})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(pg.Content) != 1 || pg.Content[0].ID != "usr_001" {
		t.Errorf("content = %+v", pg.Content)
	}
	if pg.TotalElements != 21 || pg.TotalPages != 3 || !pg.Last {
		t.Errorf("page metadata = %+v", pg)
	}
}

func TestBearerTokenSent(t *testing.T) {
	var got string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{"content": [], "totalElements": 0}`))
	})

	if _, err := c.Servers().List(context.Background(), 0, 20, model.ServerFilter{}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if got != "Bearer test-token" {
		t.Errorf("Authorization = %q, want bearer token", got)
	}
}

func TestErrorEnvelopeSurfacesAPIError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": {"code": "NOT_FOUND", "message": "user usr_999 not found"}}`))
	})

	_, err := c.Users().Get(context.Background(), "usr_999")
	if err == nil {
		t.Fatal("expected an error")
	}
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *model.APIError", err)
	}
	if apiErr.Code != model.ErrNotFound {
		t.Errorf("code = %s, want NOT_FOUND", apiErr.Code)
	}
	if apiErr.Message != "user usr_999 not found" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestNonJSONErrorBodyFallsBack(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	})

	err := c.Users().Suspend(context.Background(), "usr_001", "abuse")
	if err == nil {
		t.Fatal("expected an error")
	}
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("unexpected APIError from a non-JSON body: %v", apiErr)
	}
}
