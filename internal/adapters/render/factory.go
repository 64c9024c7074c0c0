// Package render selects the render collaborator named by the configuration.
package render

import (
	"go.trai.ch/qsnap/internal/adapters/browser"
	"go.trai.ch/qsnap/internal/adapters/svg"
	"go.trai.ch/qsnap/internal/core/domain"
	"go.trai.ch/qsnap/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RendererFactory = (*Factory)(nil)

// Factory builds browser or SVG renderers.
type Factory struct {
	logger ports.Logger
}

// NewFactory creates a new Factory.
func NewFactory(logger ports.Logger) *Factory {
	return &Factory{logger: logger}
}

// New returns an unopened renderer for cfg.Renderer.
func (f *Factory) New(cfg domain.Config) (ports.Renderer, error) {
	switch cfg.Renderer {
	case domain.RendererBrowser:
		return browser.NewRenderer(cfg.Browser, f.logger), nil
	case domain.RendererSVG:
		return svg.NewRenderer(), nil
	default:
		return nil, zerr.With(domain.ErrUnknownRenderer, "renderer", string(cfg.Renderer))
	}
}
