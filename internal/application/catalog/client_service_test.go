package catalog

import (
	"context"
	"testing"

	"github.com/cotizador/backend/internal/domain/catalog"
	"github.com/cotizador/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockClientRepository is a mock implementation of catalog.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Create(ctx context.Context, client *catalog.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Update(ctx context.Context, client *catalog.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context, filter shared.ListFilter) ([]*catalog.Client, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Client), args.Error(1)
}

func (m *MockClientRepository) FindActive(ctx context.Context, filter shared.ListFilter) ([]*catalog.Client, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Client), args.Error(1)
}

func (m *MockClientRepository) ExistsByIDNumber(ctx context.Context, idNumber string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, idNumber, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientRepository) ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientRepository) AddEmail(ctx context.Context, email *catalog.ClientEmail) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockClientRepository) FindEmails(ctx context.Context, clientID uuid.UUID) ([]catalog.ClientEmail, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.ClientEmail), args.Error(1)
}

func (m *MockClientRepository) DeleteEmail(ctx context.Context, clientID uuid.UUID, email string) error {
	args := m.Called(ctx, clientID, email)
	return args.Error(0)
}

func validClientRequest() ClientRequest {
	return ClientRequest{
		IdentificationType: 1,
		FullName:           "María Rodríguez",
		CompanyName:        "Café del Valle",
		IDNumber:           "900123456",
		Contact:            "3001234567",
		Email:              "maria@cafedelvalle.co",
		Address:            "Calle 10 # 5-20",
		Department:         "Valle del Cauca",
		City:               "Cali",
	}
}

func newTestClient(t *testing.T) *catalog.Client {
	t.Helper()
	req := validClientRequest()
	client, err := catalog.NewClient(req.IdentificationType, req.FullName, req.CompanyName,
		req.IDNumber, req.Contact, req.Email, req.Address, req.Department, req.City)
	require.NoError(t, err)
	return client
}

func TestClientServiceCreate(t *testing.T) {
	t.Run("creates client when unique", func(t *testing.T) {
		repo := new(MockClientRepository)
		svc := NewClientService(repo)

		repo.On("ExistsByIDNumber", mock.Anything, "900123456", uuid.Nil).Return(false, nil)
		repo.On("ExistsByEmail", mock.Anything, "maria@cafedelvalle.co", uuid.Nil).Return(false, nil)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*catalog.Client")).Return(nil)

		resp, err := svc.CreateClient(context.Background(), validClientRequest())
		require.NoError(t, err)
		assert.Equal(t, "María Rodríguez", resp.FullName)
		assert.True(t, resp.IsActive)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate identification number", func(t *testing.T) {
		repo := new(MockClientRepository)
		svc := NewClientService(repo)

		repo.On("ExistsByIDNumber", mock.Anything, "900123456", uuid.Nil).Return(true, nil)

		_, err := svc.CreateClient(context.Background(), validClientRequest())
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := new(MockClientRepository)
		svc := NewClientService(repo)

		repo.On("ExistsByIDNumber", mock.Anything, "900123456", uuid.Nil).Return(false, nil)
		repo.On("ExistsByEmail", mock.Anything, "maria@cafedelvalle.co", uuid.Nil).Return(true, nil)

		_, err := svc.CreateClient(context.Background(), validClientRequest())
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Create")
	})
}

func TestClientServiceUpdate(t *testing.T) {
	t.Run("excludes own row from uniqueness check", func(t *testing.T) {
		repo := new(MockClientRepository)
		svc := NewClientService(repo)
		client := newTestClient(t)

		repo.On("FindByID", mock.Anything, client.ID).Return(client, nil)
		repo.On("ExistsByIDNumber", mock.Anything, "900123456", client.ID).Return(false, nil)
		repo.On("ExistsByEmail", mock.Anything, "maria@cafedelvalle.co", client.ID).Return(false, nil)
		repo.On("Update", mock.Anything, client).Return(nil)

		req := validClientRequest()
		req.City = "Palmira"
		resp, err := svc.UpdateClient(context.Background(), client.ID, req)
		require.NoError(t, err)
		assert.Equal(t, "Palmira", resp.City)
		repo.AssertExpectations(t)
	})

	t.Run("missing client", func(t *testing.T) {
		repo := new(MockClientRepository)
		svc := NewClientService(repo)
		id := uuid.New()

		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := svc.UpdateClient(context.Background(), id, validClientRequest())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestClientServiceList(t *testing.T) {
	repo := new(MockClientRepository)
	svc := NewClientService(repo)
	clients := []*catalog.Client{newTestClient(t)}

	repo.On("FindActive", mock.Anything, shared.ListFilter{Search: "maria", Limit: maxClients}).Return(clients, nil)

	responses, err := svc.ListClients(context.Background(), " maria ", true)
	require.NoError(t, err)
	assert.Len(t, responses, 1)
	repo.AssertExpectations(t)
}

func TestClientServiceToggleActive(t *testing.T) {
	repo := new(MockClientRepository)
	svc := NewClientService(repo)
	client := newTestClient(t)

	repo.On("FindByID", mock.Anything, client.ID).Return(client, nil)
	repo.On("Update", mock.Anything, client).Return(nil)

	resp, err := svc.ToggleClientActive(context.Background(), client.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
}

func TestClientServiceEmails(t *testing.T) {
	t.Run("adds alternate email", func(t *testing.T) {
		repo := new(MockClientRepository)
		svc := NewClientService(repo)
		client := newTestClient(t)

		repo.On("FindByID", mock.Anything, client.ID).Return(client, nil)
		repo.On("AddEmail", mock.Anything, mock.AnythingOfType("*catalog.ClientEmail")).Return(nil)

		resp, err := svc.AddClientEmail(context.Background(), client.ID, ClientEmailRequest{Email: "ventas@cafedelvalle.co"})
		require.NoError(t, err)
		assert.Contains(t, resp.Emails, "ventas@cafedelvalle.co")
	})

	t.Run("rejects duplicate alternate email", func(t *testing.T) {
		repo := new(MockClientRepository)
		svc := NewClientService(repo)
		client := newTestClient(t)
		_, err := client.AddEmail("ventas@cafedelvalle.co")
		require.NoError(t, err)

		repo.On("FindByID", mock.Anything, client.ID).Return(client, nil)

		_, err = svc.AddClientEmail(context.Background(), client.ID, ClientEmailRequest{Email: "ventas@cafedelvalle.co"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "AddEmail")
	})

	t.Run("removes alternate email", func(t *testing.T) {
		repo := new(MockClientRepository)
		svc := NewClientService(repo)
		client := newTestClient(t)

		repo.On("FindByID", mock.Anything, client.ID).Return(client, nil)
		repo.On("DeleteEmail", mock.Anything, client.ID, "ventas@cafedelvalle.co").Return(nil)

		err := svc.RemoveClientEmail(context.Background(), client.ID, "ventas@cafedelvalle.co")
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
