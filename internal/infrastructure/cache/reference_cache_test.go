package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/painel-vendas/internal/domain/entity"
	"github.com/jhoicas/painel-vendas/internal/infrastructure/cache"
)

var errBackend = errors.New("backend fora do ar")

type countingRepo struct {
	calls atomic.Int32
	delay time.Duration
	fail  bool
	name  string
}

func (r *countingRepo) List(_ context.Context, kind entity.ReferenceKind) ([]entity.ReferenceEntity, error) {
	r.calls.Add(1)
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	if r.fail {
		return nil, errBackend
	}
	return []entity.ReferenceEntity{{ID: 1, Name: r.name + string(kind)}}, nil
}

type results struct {
	mu  sync.Mutex
	got []string
}

func (r *results) ObserveCache(_, result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, result)
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestList_MissLuegoHit(t *testing.T) {
	mr, client := newRedis(t)
	repo := &countingRepo{name: "Loja "}
	obs := &results{}
	c := cache.NewReferenceCache(repo, client, 10*time.Minute, zerolog.Nop(), obs)

	first, err := c.List(context.Background(), entity.ReferenceStores)
	require.NoError(t, err)
	second, err := c.List(context.Background(), entity.ReferenceStores)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "Loja stores", second[0].Name)
	assert.EqualValues(t, 1, repo.calls.Load())
	assert.Equal(t, []string{cache.ResultMiss, cache.ResultHit}, obs.got)
	assert.True(t, mr.Exists("painel:reference:stores"))
	assert.Equal(t, 10*time.Minute, mr.TTL("painel:reference:stores"))
}

func TestList_ExpiraConTTL(t *testing.T) {
	mr, client := newRedis(t)
	repo := &countingRepo{}
	c := cache.NewReferenceCache(repo, client, time.Minute, zerolog.Nop(), nil)

	_, err := c.List(context.Background(), entity.ReferenceChannels)
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)
	_, err = c.List(context.Background(), entity.ReferenceChannels)
	require.NoError(t, err)

	assert.EqualValues(t, 2, repo.calls.Load())
}

func TestList_SinClienteDelega(t *testing.T) {
	repo := &countingRepo{}
	c := cache.NewReferenceCache(repo, nil, time.Minute, zerolog.Nop(), nil)

	for i := 0; i < 3; i++ {
		_, err := c.List(context.Background(), entity.ReferenceProducts)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 3, repo.calls.Load())
	assert.NoError(t, c.Refresh(context.Background(), entity.ReferenceProducts))
}

func TestList_RedisCaidoConsultaLaAPI(t *testing.T) {
	mr, client := newRedis(t)
	repo := &countingRepo{}
	obs := &results{}
	c := cache.NewReferenceCache(repo, client, time.Minute, zerolog.Nop(), obs)
	mr.Close()

	list, err := c.List(context.Background(), entity.ReferenceBrands)
	require.NoError(t, err)

	assert.Len(t, list, 1)
	assert.Equal(t, []string{cache.ResultError}, obs.got)
}

func TestList_ErrorDelRepositorioNoSeCachea(t *testing.T) {
	mr, client := newRedis(t)
	repo := &countingRepo{fail: true}
	c := cache.NewReferenceCache(repo, client, time.Minute, zerolog.Nop(), nil)

	_, err := c.List(context.Background(), entity.ReferenceStores)
	assert.ErrorIs(t, err, errBackend)
	assert.False(t, mr.Exists(cache.Key(entity.ReferenceStores)))
}

func TestList_CargasConcurrentesSeAgrupan(t *testing.T) {
	_, client := newRedis(t)
	repo := &countingRepo{delay: 50 * time.Millisecond}
	c := cache.NewReferenceCache(repo, client, time.Minute, zerolog.Nop(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.List(context.Background(), entity.ReferenceCustomers)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, repo.calls.Load())
}

func TestRefresh_SobrescribeLaEntrada(t *testing.T) {
	mr, client := newRedis(t)
	repo := &countingRepo{name: "v1 "}
	c := cache.NewReferenceCache(repo, client, time.Minute, zerolog.Nop(), nil)

	_, err := c.List(context.Background(), entity.ReferenceStores)
	require.NoError(t, err)

	repo.name = "v2 "
	require.NoError(t, c.Refresh(context.Background(), entity.ReferenceStores))

	raw, err := mr.Get(cache.Key(entity.ReferenceStores))
	require.NoError(t, err)
	assert.Contains(t, raw, "v2 stores")
}

// slowRepo tarda delay o hasta que su ctx termina.
type slowRepo struct {
	calls atomic.Int32
	delay time.Duration
}

func (r *slowRepo) List(ctx context.Context, kind entity.ReferenceKind) ([]entity.ReferenceEntity, error) {
	r.calls.Add(1)
	select {
	case <-time.After(r.delay):
		return []entity.ReferenceEntity{{ID: 1, Name: string(kind)}}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestList_CancelarAlPrimeroNoAfectaAlResto(t *testing.T) {
	mr, client := newRedis(t)
	repo := &slowRepo{delay: 100 * time.Millisecond}
	c := cache.NewReferenceCache(repo, client, time.Minute, zerolog.Nop(), nil)

	first := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := c.List(ctx, entity.ReferenceChannels)
		first <- err
	}()
	time.Sleep(5 * time.Millisecond)

	list, err := c.List(context.Background(), entity.ReferenceChannels)
	require.NoError(t, err)
	assert.Equal(t, []entity.ReferenceEntity{{ID: 1, Name: "channels"}}, list)

	assert.ErrorIs(t, <-first, context.DeadlineExceeded)
	assert.EqualValues(t, 1, repo.calls.Load())
	assert.True(t, mr.Exists(cache.Key(entity.ReferenceChannels)), "la carga compartida se guarda igual")
}
