package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pets-api/internal/client"
	"pets-api/internal/domain/pets"
	"pets-api/internal/platform/httpclient"
	"pets-api/internal/router"
)

func newClient(t *testing.T) *client.Client {
	t.Helper()

	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	t.Cleanup(ts.Close)

	c, err := client.New(ts.URL, 5*time.Second)
	require.NoError(t, err)
	return c
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestClient_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newClient(t)

	require.NoError(t, c.Health(ctx))

	created, err := c.Create(ctx, pets.PetRequest{Name: "Max", Species: "Dog", Age: intPtr(3), OwnerName: strPtr("John Doe")})
	require.NoError(t, err)
	require.NotNil(t, created.ID)
	assert.Equal(t, int64(1), *created.ID)

	_, err = c.Create(ctx, pets.PetRequest{Name: "Luna", Species: "Cat"})
	require.NoError(t, err)

	got, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Max", got.Name)
	assert.Equal(t, "John Doe", *got.OwnerName)

	updated, err := c.Update(ctx, 1, pets.PetRequest{Name: "Max", Species: "Dog"})
	require.NoError(t, err)
	assert.Nil(t, updated.Age)
	assert.Nil(t, updated.OwnerName)

	n, err := c.CountSpecies(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, c.Delete(ctx, 1))

	items, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), *items[0].ID)
}

func TestClient_NotFound(t *testing.T) {
	ctx := context.Background()
	c := newClient(t)

	_, err := c.Get(ctx, 999)
	require.True(t, errors.Is(err, pets.ErrNotFound), "expected ErrNotFound, got %v", err)
	id, ok := pets.NotFoundID(err)
	require.True(t, ok)
	assert.Equal(t, int64(999), id)

	err = c.Delete(ctx, 999)
	assert.True(t, errors.Is(err, pets.ErrNotFound))

	_, err = c.Update(ctx, 999, pets.PetRequest{Name: "Ghost", Species: "Dog"})
	assert.True(t, errors.Is(err, pets.ErrNotFound))
}

func TestClient_ValidationError(t *testing.T) {
	c := newClient(t)

	_, err := c.Create(context.Background(), pets.PetRequest{Species: "Dog"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpclient.StatusCode(err))
	assert.False(t, errors.Is(err, pets.ErrNotFound))
}

func TestClient_ForwardsRequestID(t *testing.T) {
	var got []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get(chimw.RequestIDHeader))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("3"))
	}))
	defer ts.Close()

	c, err := client.New(ts.URL, time.Second, client.WithRequestID("cli-42"))
	require.NoError(t, err)

	n, err := c.CountSpecies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.NoError(t, c.Health(context.Background()))

	assert.Equal(t, []string{"cli-42", "cli-42"}, got)
}

func TestClient_NoRequestIDByDefault(t *testing.T) {
	var got string
	ts := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(chimw.RequestIDHeader)
	}))
	defer ts.Close()

	c, err := client.New(ts.URL, time.Second, client.WithRequestID(""))
	require.NoError(t, err)
	require.NoError(t, c.Health(context.Background()))
	assert.Empty(t, got)
}
