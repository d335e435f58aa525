package ai

import (
	"context"
	"sync"
	"time"

	"github.com/kayz/slidesmith/internal/logger"
)

// defaultCooldown keeps a failing model out of rotation long enough for
// transient provider incidents to pass.
const defaultCooldown = 2 * time.Minute

// Client is the generation collaborator handed to the engine: it routes each
// prompt to the current model and fails over once when the provider errors.
type Client struct {
	registry   *Registry
	router     *ModelRouter
	providerMu sync.Mutex
	providers  map[string]Provider
}

func NewClient(registry *Registry) *Client {
	return &Client{
		registry:  registry,
		router:    NewModelRouter(registry, defaultCooldown),
		providers: make(map[string]Provider),
	}
}

// Router exposes the underlying model router for CLI inspection.
func (c *Client) Router() *ModelRouter { return c.router }

// Generate sends one prompt through the current model. On provider error it
// records the failure, fails over to the next healthy model and tries once
// more; a second failure is returned to the caller.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	model := c.router.GetCurrentModel()

	text, err := c.generateWith(ctx, model, prompt)
	if err == nil {
		c.router.RecordSuccess(model)
		return text, nil
	}
	if ctx.Err() != nil {
		return "", err
	}

	c.router.RecordFailure(model)
	logger.Warn("model %s failed, attempting failover: %v", model.Name, err)

	next, ferr := c.router.Failover()
	if ferr != nil {
		return "", err
	}
	text, err = c.generateWith(ctx, next, prompt)
	if err != nil {
		c.router.RecordFailure(next)
		return "", err
	}
	c.router.RecordSuccess(next)
	return text, nil
}

func (c *Client) generateWith(ctx context.Context, model *ModelConfig, prompt string) (string, error) {
	c.providerMu.Lock()
	provider, err := providerFor(c.registry, model, c.providers)
	c.providerMu.Unlock()
	if err != nil {
		return "", err
	}
	return provider.Generate(ctx, model.Code, prompt, model.MaxTokens)
}
