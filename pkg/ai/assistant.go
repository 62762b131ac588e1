package ai

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// SettingsSource exposes the persisted assistant settings the capability
// gate reads.
type SettingsSource interface {
	AIEnabled() bool
	// APIKey returns the effective key: the user override when set,
	// otherwise the configured default. Blank means no key.
	APIKey() string
}

// AssistantConfig wires the assistant's dependencies.
type AssistantConfig struct {
	DataDir   string
	Settings  SettingsSource
	Probe     NetworkProbe
	Generator Generator
}

// Assistant runs the gated request pipeline: capability check, cache
// lookup, prompt build, transport call, cache/log write. A mutex serializes
// file writes since an interactive action and a queue flush can overlap.
type Assistant struct {
	settings      SettingsSource
	probe         NetworkProbe
	gen           Generator
	cache         *Cache
	queue         *Queue
	conversations *ConversationLog

	mu sync.Mutex
}

// NewAssistant creates the ai storage directory and the assistant.
func NewAssistant(cfg AssistantConfig) (*Assistant, error) {
	if cfg.Settings == nil || cfg.Probe == nil || cfg.Generator == nil {
		return nil, fmt.Errorf("assistant requires settings, probe, and generator")
	}
	dir := filepath.Join(cfg.DataDir, "ai")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create ai dir: %w", err)
	}
	return &Assistant{
		settings:      cfg.Settings,
		probe:         cfg.Probe,
		gen:           cfg.Generator,
		cache:         NewCache(filepath.Join(dir, "cache.jsonl")),
		queue:         NewQueue(filepath.Join(dir, "queue.jsonl")),
		conversations: NewConversationLog(dir),
	}, nil
}

// Capability derives the current readiness flags. Never cached: network
// presence can change between any two calls.
func (a *Assistant) Capability(ctx context.Context) Capability {
	return Capability{
		Enabled:    a.settings.AIEnabled(),
		HasAPIKey:  strings.TrimSpace(a.settings.APIKey()) != "",
		HasNetwork: a.probe.HasNetwork(ctx),
	}
}

// Run executes a live request: gate, cache lookup, generate, cache write.
// On ErrNetworkUnavailable the caller may Enqueue the same request.
func (a *Assistant) Run(ctx context.Context, req QueuedRequest) (string, error) {
	capability := a.Capability(ctx)
	if !capability.Enabled {
		return "", ErrDisabled
	}
	if !capability.HasAPIKey {
		return "", ErrAPIKeyMissing
	}
	if !capability.HasNetwork {
		return "", ErrNetworkUnavailable
	}

	prompt := a.buildPrompt(req)
	key := CacheKey(req.BookID, prompt)
	if cached, ok := a.cache.Lookup(key); ok {
		return cached, nil
	}

	response, err := a.generate(ctx, prompt, req.BookID)
	if err != nil {
		return "", err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.cache.Store(key, req.BookID, response); err != nil {
		slog.Warn("failed to write ai cache entry", "err", err)
	}
	return response, nil
}

// Enqueue defers a request to the durable queue for a later flush.
func (a *Assistant) Enqueue(req QueuedRequest) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.queue.Enqueue(req)
}

// FlushQueue replays deferred requests in enqueue order. Each entry is
// attempted once; failures stay queued in their original relative order and
// never block later entries. Returns the number processed successfully.
func (a *Assistant) FlushQueue(ctx context.Context) (int, error) {
	if !a.Capability(ctx).CanRun() {
		return 0, nil
	}
	queued, exists, err := a.queue.Load()
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, nil
	}
	if len(queued) == 0 {
		a.mu.Lock()
		defer a.mu.Unlock()
		return 0, a.queue.Rewrite(nil)
	}

	processed := 0
	var remaining []QueuedRequest
	for _, req := range queued {
		prompt := a.buildPrompt(req)
		if _, err := a.generate(ctx, prompt, req.BookID); err != nil {
			slog.Warn("queued ai request failed, keeping for next flush",
				"requestId", req.RequestID, "type", req.Type, "err", err)
			remaining = append(remaining, req)
			continue
		}
		processed++
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.queue.Rewrite(remaining); err != nil {
		return processed, fmt.Errorf("rewrite queue: %w", err)
	}
	return processed, nil
}

func (a *Assistant) buildPrompt(req QueuedRequest) string {
	var conversationContext string
	if req.Type == RequestQuestion {
		conversationContext = a.conversations.Context(req.BookID)
	}
	return BuildPromptForRequest(req, conversationContext)
}

// generate makes the transport call and, on success, records the exchange
// in the book's conversation log. Replays skip the cache but still log, so
// the context window stays accurate.
func (a *Assistant) generate(ctx context.Context, prompt, bookID string) (string, error) {
	response, err := a.gen.GenerateText(ctx, prompt)
	if err != nil {
		return "", err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.conversations.Append(bookID, prompt, response); err != nil {
		slog.Warn("failed to append conversation entry", "bookId", bookID, "err", err)
	}
	return response, nil
}
