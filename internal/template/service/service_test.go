package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willowcart/relay/internal/config"
	tdomain "github.com/willowcart/relay/internal/template/domain"
)

func testConfig(url string) config.Config {
	return config.Config{TemplateURL: url, HTTPTimeout: 2 * time.Second}
}

func TestTemplate_FetchesOnceThenCaches(t *testing.T) {
	var fetches int
	src := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		_, _ = w.Write([]byte("Hello {{buyerEmail}}"))
	}))
	defer src.Close()

	p := NewHTTP(testConfig(src.URL), NewSingleSlot())

	for i := 0; i < 3; i++ {
		tpl, err := p.Template(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Hello {{buyerEmail}}", tpl)
	}
	assert.Equal(t, 1, fetches)
}

func TestTemplate_NonSuccessStatus(t *testing.T) {
	src := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer src.Close()

	store := NewSingleSlot()
	p := NewHTTP(testConfig(src.URL), store)

	_, err := p.Template(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, tdomain.ErrUnavailable))

	_, populated := store.Get()
	assert.False(t, populated, "failed fetch must not populate the cache")
}

func TestTemplate_TransportFailure(t *testing.T) {
	src := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	src.Close() // refuse connections

	p := NewHTTP(testConfig(src.URL), NewSingleSlot())

	_, err := p.Template(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, tdomain.ErrUnavailable))
}

func TestTemplate_RecoversAfterFailure(t *testing.T) {
	var fetches int
	src := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		if fetches == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("ok {{itemName}}"))
	}))
	defer src.Close()

	p := NewHTTP(testConfig(src.URL), NewSingleSlot())

	_, err := p.Template(context.Background())
	require.Error(t, err)

	tpl, err := p.Template(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok {{itemName}}", tpl)
	assert.Equal(t, 2, fetches)
}

func TestSingleSlot_SetOnce(t *testing.T) {
	s := NewSingleSlot()

	_, ok := s.Get()
	assert.False(t, ok)

	s.Set("first")
	s.Set("second")

	v, ok := s.Get()
	assert.True(t, ok)
	assert.Equal(t, "first", v)
}

func TestSingleSlot_ConcurrentFirstWrite(t *testing.T) {
	s := NewSingleSlot()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Set("same content")
		}()
	}
	wg.Wait()

	v, ok := s.Get()
	assert.True(t, ok)
	assert.Equal(t, "same content", v)
}
