package usecase_test

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/painel-vendas/internal/application/dto"
	"github.com/jhoicas/painel-vendas/internal/domain/entity"
)

var errBackend = errors.New("backend fora do ar")

// fakeAnalytics registra la última consulta y devuelve filas fijas.
type fakeAnalytics struct {
	mu      sync.Mutex
	rows    []entity.ResultRow
	err     error
	queries []entity.AnalyticsQuery
}

func (f *fakeAnalytics) Query(_ context.Context, q entity.AnalyticsQuery) ([]entity.ResultRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	return f.rows, f.err
}

func (f *fakeAnalytics) TopProducts(context.Context) ([]entity.TopProduct, error) {
	return nil, nil
}

// fakeRefs catálogos en memoria; failing marca los tipos que fallan.
type fakeRefs struct {
	mu      sync.Mutex
	data    map[entity.ReferenceKind][]entity.ReferenceEntity
	failing map[entity.ReferenceKind]bool
	calls   map[entity.ReferenceKind]int
}

func newFakeRefs() *fakeRefs {
	return &fakeRefs{
		data:    map[entity.ReferenceKind][]entity.ReferenceEntity{},
		failing: map[entity.ReferenceKind]bool{},
		calls:   map[entity.ReferenceKind]int{},
	}
}

func (f *fakeRefs) List(_ context.Context, kind entity.ReferenceKind) ([]entity.ReferenceEntity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[kind]++
	if f.failing[kind] {
		return nil, errBackend
	}
	return f.data[kind], nil
}

// stubExporter exportador que devuelve el número de filas como contenido.
type stubExporter struct {
	format string
	got    *dto.ReportDTO
}

func (s *stubExporter) Format() string      { return s.format }
func (s *stubExporter) ContentType() string { return "text/plain" }
func (s *stubExporter) Export(r *dto.ReportDTO) ([]byte, error) {
	s.got = r
	return []byte("ok"), nil
}
