package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/willowcart/relay/internal/config"
	"github.com/willowcart/relay/internal/metrics"
	tdomain "github.com/willowcart/relay/internal/template/domain"
)

// Ensure HTTP implements domain.Provider
var _ tdomain.Provider = (*HTTP)(nil)

// HTTP fetches the template from a fixed remote URL and caches it in
// the injected store. The template is assumed static: once cached it is
// never refreshed or expired.
type HTTP struct {
	url   string
	http  *http.Client
	store tdomain.Store
}

func NewHTTP(cfg config.Config, store tdomain.Store) *HTTP {
	return &HTTP{url: cfg.TemplateURL, http: &http.Client{Timeout: cfg.HTTPTimeout}, store: store}
}

func (p *HTTP) Template(ctx context.Context) (string, error) {
	if v, ok := p.store.Get(); ok {
		metrics.IncTemplateCacheHit()
		return v, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		metrics.IncTemplateFetch("failure")
		return "", fmt.Errorf("%w: %v", tdomain.ErrUnavailable, err)
	}
	resp, err := p.http.Do(req)
	if err != nil {
		metrics.IncTemplateFetch("failure")
		return "", fmt.Errorf("%w: %v", tdomain.ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.IncTemplateFetch("failure")
		return "", fmt.Errorf("%w: status %d", tdomain.ErrUnavailable, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.IncTemplateFetch("failure")
		return "", fmt.Errorf("%w: %v", tdomain.ErrUnavailable, err)
	}
	metrics.IncTemplateFetch("success")
	tpl := string(body)
	p.store.Set(tpl)
	return tpl, nil
}

// Ensure SingleSlot implements domain.Store
var _ tdomain.Store = (*SingleSlot)(nil)

// SingleSlot holds at most one immutable template value. Concurrent
// first-fetches may race to Set; the first write wins and later writes
// are dropped, which is harmless since all fetchers see identical content.
type SingleSlot struct {
	mu  sync.Mutex
	val string
	set bool
}

func NewSingleSlot() *SingleSlot { return &SingleSlot{} }

func (s *SingleSlot) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.val, s.set
}

func (s *SingleSlot) Set(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set {
		return
	}
	s.val = value
	s.set = true
}
