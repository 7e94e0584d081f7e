package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"nova-library/internal/adapters/persistence/models"
	"nova-library/internal/adapters/persistence/repositories"
	"nova-library/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	Method string
	Path   string
	Query  map[string][]string
	Header http.Header
	Body   string
}

// fakeREST answers every request with the next canned reply and records what it saw
type fakeREST struct {
	mu       sync.Mutex
	requests []recorded
	status   int
	body     string
	headers  map[string]string
}

func (f *fakeREST) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recorded{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   string(body),
	})
	f.mu.Unlock()

	for k, v := range f.headers {
		w.Header().Set(k, v)
	}
	w.Header().Set("Content-Type", "application/json")
	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(f.body))
}

func (f *fakeREST) last(t *testing.T) recorded {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func newFake(t *testing.T, status int, body string) (*fakeREST, *Client) {
	t.Helper()
	fake := &fakeREST{status: status, body: body}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return fake, NewClient(srv.URL, "anon-key", 2*time.Second)
}

func TestClient_SendsKeyHeaders(t *testing.T) {
	fake, c := newFake(t, http.StatusOK, `[]`)
	require.NoError(t, c.Ping(context.Background(), tableInventory))

	req := fake.last(t)
	assert.Equal(t, "/rest/v1/lib_inventory", req.Path)
	assert.Equal(t, "anon-key", req.Header.Get("apikey"))
	assert.Equal(t, "Bearer anon-key", req.Header.Get("Authorization"))
	assert.Equal(t, []string{"id"}, req.Query["select"])
	assert.Equal(t, []string{"1"}, req.Query["limit"])
}

func TestInventoryRepository_GetByIDsUsesInFilter(t *testing.T) {
	fake, c := newFake(t, http.StatusOK, `[{"id":3,"title":"Ugly Bugs","status":"Available"},{"id":7,"title":"Bulging Brains","status":"Reserved"}]`)
	repo := NewInventoryRepository(c)

	books, err := repo.GetByIDs(context.Background(), []int64{3, 7})
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Bulging Brains", books[1].Title)

	req := fake.last(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, []string{"in.(3,7)"}, req.Query["id"])
	assert.Equal(t, []string{"id.asc"}, req.Query["order"])
}

func TestInventoryRepository_CreateReturnsRepresentation(t *testing.T) {
	fake, c := newFake(t, http.StatusCreated, `[{"id":41,"title":"Terrible Tudors","author":"Terry Deary","genre":"Science & History","condition":"Good","status":"Available"}]`)
	repo := NewInventoryRepository(c)

	book := &models.Book{Title: "Terrible Tudors", Author: "Terry Deary", Genre: "Science & History", Condition: "Good", Status: "Available"}
	require.NoError(t, repo.Create(context.Background(), book))
	assert.EqualValues(t, 41, book.ID)

	req := fake.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Contains(t, req.Header.Get("Prefer"), "return=representation")

	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(req.Body), &sent))
	assert.Equal(t, "Terrible Tudors", sent["title"])
	assert.NotContains(t, sent, "id")
	assert.NotContains(t, sent, "created_at")
}

func TestInventoryRepository_ReserveIfAvailable(t *testing.T) {
	t.Run("applied", func(t *testing.T) {
		fake, c := newFake(t, http.StatusOK, `[{"id":5,"status":"Reserved"}]`)
		ok, err := NewInventoryRepository(c).ReserveIfAvailable(context.Background(), 5)
		require.NoError(t, err)
		assert.True(t, ok)

		req := fake.last(t)
		assert.Equal(t, http.MethodPatch, req.Method)
		assert.Equal(t, []string{"eq.5"}, req.Query["id"])
		assert.Equal(t, []string{"eq.Available"}, req.Query["status"])
		assert.JSONEq(t, `{"status":"Reserved"}`, req.Body)
	})

	t.Run("lost race", func(t *testing.T) {
		_, c := newFake(t, http.StatusOK, `[]`)
		ok, err := NewInventoryRepository(c).ReserveIfAvailable(context.Background(), 5)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestMemberRepository_GetByEmailNotFound(t *testing.T) {
	fake, c := newFake(t, http.StatusOK, `[]`)
	_, err := NewMemberRepository(c).GetByEmail(context.Background(), "ada@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []string{"eq.ada@example.com"}, fake.last(t).Query["email"])
}

func TestRentalRepository_ListReadsTotalAndEmbeds(t *testing.T) {
	fake, c := newFake(t, http.StatusOK, `[{"id":9,"book_id":3,"member_id":2,"due_date":"2026-10-22","delivery_type":"Home Delivery","delivery_status":"Pending Verification","is_paid":false,"lib_inventory":{"id":3,"title":"Ugly Bugs"},"lib_members":{"id":2,"full_name":"Ada Obi"}}]`)
	fake.headers = map[string]string{"Content-Range": "0-0/17"}

	rentals, total, err := NewRentalRepository(c).List(context.Background(),
		repositories.RentalFilter{DeliveryStatus: "Pending Verification"}, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 17, total)
	require.Len(t, rentals, 1)
	assert.Equal(t, "Ugly Bugs", rentals[0].BookTitle())
	assert.Equal(t, "Ada Obi", rentals[0].Customer())

	req := fake.last(t)
	assert.Equal(t, []string{"eq.Pending Verification"}, req.Query["delivery_status"])
	assert.Equal(t, "0-19", req.Header.Get("Range"))
	assert.Contains(t, req.Header.Get("Prefer"), "count=exact")
}

func TestListPastLastPageIsEmpty(t *testing.T) {
	fake, c := newFake(t, http.StatusRequestedRangeNotSatisfiable, `{"code":"PGRST103","message":"Requested range not satisfiable"}`)
	fake.headers = map[string]string{"Content-Range": "*/17"}

	rentals, total, err := NewRentalRepository(c).List(context.Background(), repositories.RentalFilter{}, 40, 20)
	require.NoError(t, err)
	assert.Empty(t, rentals)
	assert.EqualValues(t, 17, total)
	assert.Equal(t, "40-59", fake.last(t).Header.Get("Range"))

	members, total, err := NewMemberRepository(c).List(context.Background(), 40, 20)
	require.NoError(t, err)
	assert.Empty(t, members)
	assert.EqualValues(t, 17, total)
}

func TestClient_DecodesErrorBody(t *testing.T) {
	_, c := newFake(t, http.StatusConflict, `{"code":"23505","message":"duplicate key value violates unique constraint"}`)
	err := NewMemberRepository(c).Create(context.Background(), &models.Member{Email: "ada@example.com"})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "23505", apiErr.Code)
}

func TestParseTotal(t *testing.T) {
	assert.EqualValues(t, 42, parseTotal("0-9/42"))
	assert.EqualValues(t, 3, parseTotal("*/3"))
	assert.EqualValues(t, 0, parseTotal("0-9/*"))
	assert.EqualValues(t, 0, parseTotal(""))
}
