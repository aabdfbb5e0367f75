package catalog

import (
	"context"

	"github.com/cotizador/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	// Create creates a new client
	Create(ctx context.Context, client *Client) error

	// Update updates an existing client
	Update(ctx context.Context, client *Client) error

	// FindByID finds a client by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindAll returns clients ordered newest-first
	FindAll(ctx context.Context, filter shared.ListFilter) ([]*Client, error)

	// FindActive returns active clients matching the search term,
	// ordered newest-first
	FindActive(ctx context.Context, filter shared.ListFilter) ([]*Client, error)

	// ExistsByIDNumber checks both active and inactive rows for the
	// identification number, excluding the given client ID
	ExistsByIDNumber(ctx context.Context, idNumber string, excludeID uuid.UUID) (bool, error)

	// ExistsByEmail checks both active and inactive rows for the email,
	// excluding the given client ID
	ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)

	// AddEmail persists an alternate recipient address
	AddEmail(ctx context.Context, email *ClientEmail) error

	// FindEmails returns a client's alternate recipient addresses
	FindEmails(ctx context.Context, clientID uuid.UUID) ([]ClientEmail, error)

	// DeleteEmail removes an alternate recipient address
	DeleteEmail(ctx context.Context, clientID uuid.UUID, email string) error
}
