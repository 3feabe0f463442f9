package supabase_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	chatdomain "github.com/krish0326/i-backend/internal/chat/domain"
	"github.com/krish0326/i-backend/internal/domain"
	"github.com/krish0326/i-backend/internal/infra/resilience"
	"github.com/krish0326/i-backend/internal/infra/supabase"

	"go.uber.org/zap"
)

func newChatTestClient(t *testing.T, srv *httptest.Server) *supabase.Client {
	t.Helper()
	cfg := resilience.Config{MaxRetries: 3, InitialBackoff: time.Millisecond, MaxConcurrency: 10}
	cb := resilience.NewCircuitBreaker("chat-test")
	return supabase.NewClient(srv.Client(), srv.URL, "anon-key", "service-key", cb, cfg, zap.NewNop())
}

// An empty lookup is the normal first step of every conversation: it must
// cost exactly one request and must not be retried.
func TestGetLatestContext_EmptyLookupIsSingleRequest(t *testing.T) {
	var gets int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&gets, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := newChatTestClient(t, srv)

	_, err := client.GetLatestContext(context.Background(), "conv-new")
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected not-found for an empty conversation, got %v", err)
	}
	if n := atomic.LoadInt32(&gets); n != 1 {
		t.Errorf("expected exactly 1 request for an empty conversation, got %d", n)
	}
}

// A burst of new conversations must not open the breaker while the store
// is healthy: records of existing conversations keep loading.
func TestGetLatestContext_NotFoundDoesNotTripBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(r.URL.RawQuery, "conversation_id=eq.existing") {
			w.Write([]byte(`[{"id":"m1","conversation_id":"existing","participant_id":"p1","kind":"bot","context":{"currentStep":"budget","collectedData":{"projectType":"residential"},"userPreferences":{}}}]`))
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := newChatTestClient(t, srv)

	for i := 0; i < 6; i++ {
		_, err := client.GetLatestContext(context.Background(), fmt.Sprintf("conv-%d", i))
		var notFound *domain.ErrNotFound
		if !errors.As(err, &notFound) {
			t.Fatalf("lookup %d: expected not-found, got %v", i, err)
		}
	}

	cctx, err := client.GetLatestContext(context.Background(), "existing")
	if err != nil {
		t.Fatalf("existing conversation failed to load after not-found burst: %v", err)
	}
	if cctx.CurrentStep != chatdomain.StepBudget {
		t.Errorf("expected restored step budget, got %s", cctx.CurrentStep)
	}
	if cctx.CollectedData.ProjectType != "residential" {
		t.Errorf("expected restored collected data, got %+v", cctx.CollectedData)
	}
}

// Genuine outages still go through retry, the breaker, and come back as
// external-service errors.
func TestGetLatestContext_OutageIsExternalError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database unavailable", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newChatTestClient(t, srv)

	_, err := client.GetLatestContext(context.Background(), "conv-any")
	var external *domain.ErrExternalService
	if !errors.As(err, &external) {
		t.Fatalf("expected external-service error, got %v", err)
	}
	var notFound *domain.ErrNotFound
	if errors.As(err, &notFound) {
		t.Error("outage must not be reported as not-found")
	}
}

// Missing team members and projects share the same shape: one request,
// a clean not-found, no breaker pressure.
func TestGetTeamMemberAndProject_NotFoundIsSingleRequest(t *testing.T) {
	var gets int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&gets, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := newChatTestClient(t, srv)

	var notFound *domain.ErrNotFound
	if _, err := client.GetTeamMember(context.Background(), "missing"); !errors.As(err, &notFound) {
		t.Fatalf("expected not-found for team member, got %v", err)
	}
	if _, err := client.GetProject(context.Background(), "missing"); !errors.As(err, &notFound) {
		t.Fatalf("expected not-found for project, got %v", err)
	}
	if n := atomic.LoadInt32(&gets); n != 2 {
		t.Errorf("expected 2 requests for 2 lookups, got %d", n)
	}
}
