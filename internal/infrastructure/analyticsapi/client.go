// Package analyticsapi adaptador HTTP de la API de analítica (consultas, top
// produtos y catálogos de referencia). Implementa los puertos del repositorio.
package analyticsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/painel-vendas/internal/domain"
	"github.com/jhoicas/painel-vendas/internal/domain/entity"
	"github.com/jhoicas/painel-vendas/internal/domain/repository"
)

// Verificar en tiempo de compilación que Client implementa los puertos.
var (
	_ repository.AnalyticsRepository = (*Client)(nil)
	_ repository.ReferenceRepository = (*Client)(nil)
)

const (
	queryPath       = "/api/v1/analytics/query"
	topProductsPath = "/api/v1/analytics/top_products"
	referencePath   = "/api/v1/reference/"

	// maxBodyBytes límite de lectura de la respuesta.
	maxBodyBytes = 8 << 20
	// maxErrorSnippet bytes del cuerpo incluidos en el mensaje de error.
	maxErrorSnippet = 512
)

// Observer recibe una observación por llamada a la API (métricas).
type Observer interface {
	ObserveUpstream(endpoint, outcome string, took time.Duration)
}

// Client cliente de la API de analítica. Usa net/http de la librería estándar;
// la API no publica un SDK.
type Client struct {
	baseURL    string
	httpClient *http.Client
	observer   Observer
}

// Option configura el Client.
type Option func(*Client)

// WithHTTPClient reemplaza el http.Client (tests, transporte propio).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithObserver registra el observador de llamadas.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// NewClient construye el cliente. baseURL sin barra final (p. ej. http://127.0.0.1:8000).
// timeout es el límite de red por petición; el contexto puede imponer uno menor.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope todas las respuestas llegan como {"data": ...}.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// ── Implementación de los puertos ─────────────────────────────────────────────

// Query envía la consulta declarativa y devuelve las filas sin interpretar.
func (c *Client) Query(ctx context.Context, q entity.AnalyticsQuery) ([]entity.ResultRow, error) {
	body, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("analytics: serializar consulta: %w", err)
	}
	var rows []entity.ResultRow
	if err := c.do(ctx, http.MethodPost, queryPath, "query", body, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// TopProducts devuelve el ranking de produtos más vendidos.
func (c *Client) TopProducts(ctx context.Context) ([]entity.TopProduct, error) {
	var products []entity.TopProduct
	if err := c.do(ctx, http.MethodGet, topProductsPath, "top_products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// List devuelve el catálogo de referencia indicado.
func (c *Client) List(ctx context.Context, kind entity.ReferenceKind) ([]entity.ReferenceEntity, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("analytics: catálogo %q: %w", kind, domain.ErrInvalidInput)
	}
	var list []entity.ReferenceEntity
	if err := c.do(ctx, http.MethodGet, referencePath+string(kind), "reference_"+string(kind), nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ── Transporte ────────────────────────────────────────────────────────────────

// do ejecuta la petición, valida el estado HTTP y decodifica data en out.
// Todo fallo de red, de estado o de formato se envuelve en domain.ErrUpstream.
func (c *Client) do(ctx context.Context, method, path, endpoint string, body []byte, out interface{}) (err error) {
	started := time.Now()
	defer func() {
		if c.observer == nil {
			return
		}
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		c.observer.ObserveUpstream(endpoint, outcome, time.Since(started))
	}()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("analytics: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("analytics %s: timeout o cancelación: %v: %w", endpoint, ctx.Err(), domain.ErrUpstream)
		}
		return fmt.Errorf("analytics %s: llamada HTTP fallida: %v: %w", endpoint, err, domain.ErrUpstream)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("analytics %s: leer respuesta: %v: %w", endpoint, err, domain.ErrUpstream)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("analytics %s: HTTP %d: %s: %w", endpoint, resp.StatusCode, snippet(raw), domain.ErrUpstream)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("analytics %s: respuesta malformada: %v: %w", endpoint, err, domain.ErrUpstream)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return fmt.Errorf("analytics %s: respuesta sin data: %w", endpoint, domain.ErrUpstream)
	}

	// UseNumber conserva los valores numéricos exactos (json.Number) para decimal.
	dec := json.NewDecoder(bytes.NewReader(env.Data))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("analytics %s: decodificar data: %v: %w", endpoint, err, domain.ErrUpstream)
	}
	return nil
}

func snippet(raw []byte) string {
	if len(raw) > maxErrorSnippet {
		return string(raw[:maxErrorSnippet]) + "…"
	}
	return string(raw)
}
