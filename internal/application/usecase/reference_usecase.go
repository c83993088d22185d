package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/painel-vendas/internal/application/dto"
	"github.com/jhoicas/painel-vendas/internal/domain"
	"github.com/jhoicas/painel-vendas/internal/domain/entity"
	"github.com/jhoicas/painel-vendas/internal/domain/repository"
)

// ReferenceUseCase expone los catálogos de referencia y el nombre de la marca.
type ReferenceUseCase struct {
	refs repository.ReferenceRepository
}

// NewReferenceUseCase construye el caso de uso.
func NewReferenceUseCase(refs repository.ReferenceRepository) *ReferenceUseCase {
	return &ReferenceUseCase{refs: refs}
}

// List devuelve un catálogo; un tipo desconocido es ErrInvalidInput.
func (uc *ReferenceUseCase) List(ctx context.Context, kind entity.ReferenceKind) (*dto.ReferenceListDTO, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("referência %q: %w", kind, domain.ErrInvalidInput)
	}
	list, err := uc.refs.List(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("referência %s: %w", kind, err)
	}
	if list == nil {
		list = []entity.ReferenceEntity{}
	}
	return &dto.ReferenceListDTO{Kind: string(kind), Data: list}, nil
}

// Brand devuelve la primera marca del catálogo (cabeçalho del dashboard).
func (uc *ReferenceUseCase) Brand(ctx context.Context) (*dto.BrandDTO, error) {
	brands, err := uc.refs.List(ctx, entity.ReferenceBrands)
	if err != nil {
		return nil, fmt.Errorf("marca: %w", err)
	}
	if len(brands) == 0 {
		return nil, fmt.Errorf("marca: %w", domain.ErrNotFound)
	}
	return &dto.BrandDTO{Name: brands[0].Label()}, nil
}

// FilterLists carga en paralelo canais, lojas, produtos y clientes. Falla si
// cualquiera de los cuatro falla.
func (uc *ReferenceUseCase) FilterLists(ctx context.Context) (*dto.FilterListsDTO, error) {
	var out dto.FilterListsDTO
	g, gctx := errgroup.WithContext(ctx)

	targets := []struct {
		kind entity.ReferenceKind
		dst  *[]entity.ReferenceEntity
	}{
		{entity.ReferenceChannels, &out.Channels},
		{entity.ReferenceStores, &out.Stores},
		{entity.ReferenceProducts, &out.Products},
		{entity.ReferenceCustomers, &out.Customers},
	}
	for _, t := range targets {
		t := t
		g.Go(func() error {
			list, err := uc.refs.List(gctx, t.kind)
			if err != nil {
				return fmt.Errorf("referência %s: %w", t.kind, err)
			}
			if list == nil {
				list = []entity.ReferenceEntity{}
			}
			*t.dst = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
