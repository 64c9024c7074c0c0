// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/qsnap/internal/core/domain"
)

// Renderer is the render collaborator that turns a diagram reference into an artifact file.
//
// A Renderer is a scoped resource: Open acquires it once per process and Close
// releases it on shutdown. The pipeline only calls Render and Extension.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Open acquires the resources needed to render.
	Open(ctx context.Context) error

	// Render writes the artifact for req to req.Dest.
	// It owns its own timeout and must honour ctx cancellation.
	Render(ctx context.Context, req domain.RenderRequest) error

	// Extension returns the file extension of produced artifacts, without the dot.
	Extension() string

	// Close releases the resources acquired by Open. It is safe to call more than once.
	Close() error
}

// RendererFactory builds the render collaborator selected by a configuration.
type RendererFactory interface {
	// New returns an unopened renderer for cfg.
	New(cfg domain.Config) (Renderer, error)
}
