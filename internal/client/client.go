// Package client es el cliente tipado de la API de mascotas.
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pets-api/internal/domain/pets"
	"pets-api/internal/platform/httpclient"

	chimw "github.com/go-chi/chi/v5/middleware"
)

const basePath = "/api/v1/pets"

type Client struct {
	http    *httpclient.Client
	headers map[string]string // se mandan en todos los requests
}

type Option func(*Client)

// WithRequestID manda el id en X-Request-Id; el server lo adopta como request id
// y aparece en sus logs.
func WithRequestID(id string) Option {
	return func(c *Client) {
		if id != "" {
			c.headers[chimw.RequestIDHeader] = id
		}
	}
}

func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	c := &Client{http: hc, headers: map[string]string{}}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *Client) Create(ctx context.Context, req pets.PetRequest) (pets.PetResponse, error) {
	var out pets.PetResponse
	if err := c.http.DoJSON(ctx, http.MethodPost, basePath, c.headers, req, &out); err != nil {
		return pets.PetResponse{}, err
	}
	return out, nil
}

func (c *Client) List(ctx context.Context) ([]pets.PetResponse, error) {
	out := []pets.PetResponse{}
	if err := c.http.DoJSON(ctx, http.MethodGet, basePath, c.headers, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id int64) (pets.PetResponse, error) {
	var out pets.PetResponse
	if err := c.http.DoJSON(ctx, http.MethodGet, petPath(id), c.headers, nil, &out); err != nil {
		return pets.PetResponse{}, mapError(id, err)
	}
	return out, nil
}

func (c *Client) Update(ctx context.Context, id int64, req pets.PetRequest) (pets.PetResponse, error) {
	var out pets.PetResponse
	if err := c.http.DoJSON(ctx, http.MethodPut, petPath(id), c.headers, req, &out); err != nil {
		return pets.PetResponse{}, mapError(id, err)
	}
	return out, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	if err := c.http.DoJSON(ctx, http.MethodDelete, petPath(id), c.headers, nil, nil); err != nil {
		return mapError(id, err)
	}
	return nil
}

func (c *Client) CountSpecies(ctx context.Context) (int, error) {
	var n int
	if err := c.http.DoJSON(ctx, http.MethodGet, basePath+"/species", c.headers, nil, &n); err != nil {
		return 0, err
	}
	return n, nil
}

// Health devuelve nil si el server responde 200 en /health.
func (c *Client) Health(ctx context.Context) error {
	return c.http.DoJSON(ctx, http.MethodGet, "/health", c.headers, nil, nil)
}

func petPath(id int64) string {
	return fmt.Sprintf("%s/%d", basePath, id)
}

// mapError convierte un 404 en *pets.NotFoundError para que el caller use errors.Is(err, pets.ErrNotFound).
func mapError(id int64, err error) error {
	if httpclient.StatusCode(err) == http.StatusNotFound {
		return &pets.NotFoundError{ID: id}
	}
	return err
}
