// Package cache decorador cache-aside en Redis para los catálogos de referencia.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/painel-vendas/internal/domain/entity"
	"github.com/jhoicas/painel-vendas/internal/domain/repository"
)

var _ repository.ReferenceRepository = (*ReferenceCache)(nil)

const keyPrefix = "painel:reference:"

// fillTimeout tope de la carga compartida, que no depende del ctx de ningún llamador.
const fillTimeout = 30 * time.Second

// Resultados reportados al observador.
const (
	ResultHit   = "hit"
	ResultMiss  = "miss"
	ResultError = "error"
)

// Observer recibe el resultado de cada lectura (métricas).
type Observer interface {
	ObserveCache(kind, result string)
}

// ReferenceCache envuelve un ReferenceRepository. Con client nil no cachea y
// delega todo en el repositorio. Un fallo de Redis nunca falla la lectura: se
// registra y se consulta el repositorio.
type ReferenceCache struct {
	next     repository.ReferenceRepository
	client   *redis.Client
	ttl      time.Duration
	log      zerolog.Logger
	observer Observer
	group    singleflight.Group
}

// NewReferenceCache construye el decorador. observer puede ser nil.
func NewReferenceCache(next repository.ReferenceRepository, client *redis.Client, ttl time.Duration, log zerolog.Logger, observer Observer) *ReferenceCache {
	return &ReferenceCache{next: next, client: client, ttl: ttl, log: log, observer: observer}
}

// Key clave Redis del catálogo.
func Key(kind entity.ReferenceKind) string {
	return keyPrefix + string(kind)
}

// List devuelve el catálogo desde Redis o, si no está, lo carga y lo guarda.
// Cargas concurrentes del mismo catálogo se agrupan en una sola llamada.
func (c *ReferenceCache) List(ctx context.Context, kind entity.ReferenceKind) ([]entity.ReferenceEntity, error) {
	if c.client == nil {
		return c.next.List(ctx, kind)
	}

	payload, err := c.client.Get(ctx, Key(kind)).Bytes()
	switch {
	case err == nil:
		var list []entity.ReferenceEntity
		if jerr := json.Unmarshal(payload, &list); jerr == nil {
			c.observe(kind, ResultHit)
			return list, nil
		}
		c.log.Warn().Str("kind", string(kind)).Msg("entrada de caché ilegible, recargando")
		c.observe(kind, ResultMiss)
	case errors.Is(err, redis.Nil):
		c.observe(kind, ResultMiss)
	default:
		c.log.Warn().Err(err).Str("kind", string(kind)).Msg("redis no disponible, consultando la API")
		c.observe(kind, ResultError)
	}

	return c.load(ctx, kind)
}

// Refresh recarga el catálogo desde el repositorio y sobrescribe la entrada.
func (c *ReferenceCache) Refresh(ctx context.Context, kind entity.ReferenceKind) error {
	if c.client == nil {
		return nil
	}
	_, err := c.load(ctx, kind)
	return err
}

// load consulta el repositorio (una vez por catálogo aunque haya varias
// peticiones a la vez) y guarda el resultado con TTL. La carga corre con un
// contexto propio; cada llamador sólo abandona por su ctx.
func (c *ReferenceCache) load(ctx context.Context, kind entity.ReferenceKind) ([]entity.ReferenceEntity, error) {
	ch := c.group.DoChan(string(kind), func() (interface{}, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fillTimeout)
		defer cancel()

		list, err := c.next.List(fctx, kind)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(list)
		if err != nil {
			return nil, fmt.Errorf("cache: serializar %s: %w", kind, err)
		}
		if err := c.client.Set(fctx, Key(kind), raw, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Str("kind", string(kind)).Msg("no se pudo guardar en caché")
		}
		return list, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		list, _ := res.Val.([]entity.ReferenceEntity)
		return list, nil
	}
}

func (c *ReferenceCache) observe(kind entity.ReferenceKind, result string) {
	if c.observer != nil {
		c.observer.ObserveCache(string(kind), result)
	}
}
