// Package catalog implements the client, product and attachment use cases.
package catalog

import (
	"context"
	"strings"

	"github.com/cotizador/backend/internal/domain/catalog"
	"github.com/cotizador/backend/internal/domain/shared"
	"github.com/cotizador/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// ClientService handles client management
type ClientService struct {
	clientRepo catalog.ClientRepository
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo catalog.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// CreateClient registers a new client. The identification number and email
// must be unique across active and inactive clients alike.
func (s *ClientService) CreateClient(ctx context.Context, req ClientRequest) (*ClientResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "client", "create")
	defer span.End()

	if err := s.checkUniqueness(ctx, req, uuid.Nil); err != nil {
		return nil, err
	}

	client, err := catalog.NewClient(req.IdentificationType, req.FullName, req.CompanyName,
		req.IDNumber, req.Contact, req.Email, req.Address, req.Department, req.City)
	if err != nil {
		return nil, err
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToClientResponse(client)
	return &resp, nil
}

// UpdateClient replaces a client's editable fields
func (s *ClientService) UpdateClient(ctx context.Context, id uuid.UUID, req ClientRequest) (*ClientResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "client", "update")
	defer span.End()

	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkUniqueness(ctx, req, id); err != nil {
		return nil, err
	}

	if err := client.Update(req.IdentificationType, req.FullName, req.CompanyName,
		req.IDNumber, req.Contact, req.Email, req.Address, req.Department, req.City); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToClientResponse(client)
	return &resp, nil
}

// GetClient returns a single client with its alternate emails
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToClientResponse(client)
	return &resp, nil
}

// ListClients returns clients matching the search term, newest first
func (s *ClientService) ListClients(ctx context.Context, search string, activeOnly bool) ([]ClientResponse, error) {
	filter := shared.ListFilter{Search: strings.TrimSpace(search)}.WithCeiling(maxClients)

	var (
		clients []*catalog.Client
		err     error
	)
	if activeOnly {
		clients, err = s.clientRepo.FindActive(ctx, filter)
	} else {
		clients, err = s.clientRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]ClientResponse, 0, len(clients))
	for _, c := range clients {
		responses = append(responses, ToClientResponse(c))
	}
	return responses, nil
}

// ToggleClientActive flips the client's active flag
func (s *ClientService) ToggleClientActive(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	client.ToggleActive()
	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}

	resp := ToClientResponse(client)
	return &resp, nil
}

// AddClientEmail registers an alternate recipient address for quote emails
func (s *ClientService) AddClientEmail(ctx context.Context, clientID uuid.UUID, req ClientEmailRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	email, err := client.AddEmail(req.Email)
	if err != nil {
		return nil, err
	}

	if err := s.clientRepo.AddEmail(ctx, email); err != nil {
		return nil, err
	}

	resp := ToClientResponse(client)
	return &resp, nil
}

// RemoveClientEmail deletes an alternate recipient address
func (s *ClientService) RemoveClientEmail(ctx context.Context, clientID uuid.UUID, email string) error {
	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		return err
	}
	return s.clientRepo.DeleteEmail(ctx, clientID, email)
}

// checkUniqueness rejects duplicate identification numbers and emails before
// the insert reaches the database
func (s *ClientService) checkUniqueness(ctx context.Context, req ClientRequest, excludeID uuid.UUID) error {
	taken, err := s.clientRepo.ExistsByIDNumber(ctx, strings.TrimSpace(req.IDNumber), excludeID)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewDomainError("ALREADY_EXISTS", "A client with this identification number already exists")
	}

	taken, err = s.clientRepo.ExistsByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)), excludeID)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewDomainError("ALREADY_EXISTS", "A client with this email already exists")
	}
	return nil
}
