package ai

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// TextChain selects between the primary completion provider and an optional
// secondary. When a secondary is configured it is preferred; on its first
// error the chain demotes it for the remainder of the process and retries the
// same inputs once against the primary. A primary failure then propagates as
// a generation failure. There is no further retry, no backoff, and no
// recovery probing of a demoted secondary.
type TextChain struct {
	primary   TextProvider
	secondary TextProvider // nil when not configured

	demoted atomic.Bool
}

// NewTextChain builds a chain from the mandatory primary and an optional
// secondary (pass nil when no secondary credential is configured).
func NewTextChain(primary, secondary TextProvider) *TextChain {
	return &TextChain{primary: primary, secondary: secondary}
}

// Active returns the provider the next Complete call will try first.
func (c *TextChain) Active() TextProvider {
	if c.secondary != nil && !c.demoted.Load() {
		return c.secondary
	}
	return c.primary
}

// Complete runs the request through the chain and reports which provider
// produced the text.
func (c *TextChain) Complete(ctx context.Context, req TextRequest) (string, string, error) {
	if c.secondary != nil && !c.demoted.Load() {
		out, err := c.secondary.Complete(ctx, req)
		observeAttempt("text", c.secondary.Name(), err)
		if err == nil {
			return out, c.secondary.Name(), nil
		}
		c.demoted.Store(true)
		log.Warn().
			Err(err).
			Str("provider", c.secondary.Name()).
			Str("fallback", c.primary.Name()).
			Msg("secondary completion provider failed; demoting for process lifetime")
	}

	out, err := c.primary.Complete(ctx, req)
	observeAttempt("text", c.primary.Name(), err)
	if err != nil {
		return "", c.primary.Name(), fmt.Errorf("text generation failed: %w", err)
	}
	return out, c.primary.Name(), nil
}

// ImageChain tries image providers in a fixed priority order: skip a
// descriptor when its credential is absent or its call errors, return the
// first usable image. Attempts are independent; each carries only its own
// per-call timeout. With the keyless provider last the chain cannot come up
// empty.
type ImageChain struct {
	providers []ImageProvider
}

// NewImageChain builds a chain attempting providers in argument order.
func NewImageChain(providers ...ImageProvider) *ImageChain {
	return &ImageChain{providers: providers}
}

// Generate runs the prompt through the chain.
func (c *ImageChain) Generate(ctx context.Context, prompt string) (*Image, error) {
	for _, p := range c.providers {
		if !p.Available() {
			continue
		}
		img, err := p.Generate(ctx, prompt)
		observeAttempt("image", p.Name(), err)
		if err != nil {
			log.Warn().Err(err).Str("provider", p.Name()).Msg("image provider failed; trying next")
			continue
		}
		if img == nil || img.URL == "" {
			continue
		}
		return img, nil
	}
	return nil, ErrNoImageProvider
}
