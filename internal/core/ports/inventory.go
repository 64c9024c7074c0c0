package ports

import "go.trai.ch/qsnap/internal/core/domain"

// LinkInventory lists the diagram links already present in a document.
//
//go:generate mockgen -source=inventory.go -destination=mocks/mock_inventory.go -package=mocks
type LinkInventory interface {
	// Links returns every image link wrapped in a link to a diagram reference on host.
	Links(text, host string) []domain.DiagramLink
}
