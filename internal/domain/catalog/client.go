package catalog

import (
	"strings"

	"github.com/cotizador/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Client represents a customer that quotes are issued to
type Client struct {
	shared.BaseEntity
	IdentificationType int    `gorm:"not null"`
	FullName           string `gorm:"type:varchar(200);not null"`
	CompanyName        string `gorm:"type:varchar(200)"`
	IDNumber           string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Contact            string `gorm:"type:varchar(50);not null"`
	Email              string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Address            string `gorm:"type:varchar(200);not null"`
	Department         string `gorm:"type:varchar(100);not null"`
	City               string `gorm:"type:varchar(100);not null"`
	IsActive           bool   `gorm:"not null;default:true"`
	Emails             []ClientEmail
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// ClientEmail is an alternate recipient address owned by a client.
// The (client, email) pair is unique.
type ClientEmail struct {
	shared.BaseEntity
	ClientID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_client_email,priority:1"`
	Email    string    `gorm:"type:varchar(200);not null;uniqueIndex:idx_client_email,priority:2"`
}

// TableName returns the table name for GORM
func (ClientEmail) TableName() string {
	return "client_emails"
}

// NewClient creates a new active client
func NewClient(identificationType int, fullName, companyName, idNumber, contact, email, address, department, city string) (*Client, error) {
	fullName = strings.TrimSpace(fullName)
	idNumber = strings.TrimSpace(idNumber)
	email = strings.ToLower(strings.TrimSpace(email))

	if fullName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	if idNumber == "" {
		return nil, shared.NewDomainError("INVALID_ID_NUMBER", "Identification number cannot be empty")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email is required")
	}

	return &Client{
		BaseEntity:         shared.NewBaseEntity(),
		IdentificationType: identificationType,
		FullName:           fullName,
		CompanyName:        strings.TrimSpace(companyName),
		IDNumber:           idNumber,
		Contact:            contact,
		Email:              email,
		Address:            address,
		Department:         department,
		City:               city,
		IsActive:           true,
	}, nil
}

// Update replaces the client's editable fields
func (c *Client) Update(identificationType int, fullName, companyName, idNumber, contact, email, address, department, city string) error {
	fullName = strings.TrimSpace(fullName)
	idNumber = strings.TrimSpace(idNumber)
	email = strings.ToLower(strings.TrimSpace(email))

	if fullName == "" {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	if idNumber == "" {
		return shared.NewDomainError("INVALID_ID_NUMBER", "Identification number cannot be empty")
	}
	if email == "" || !strings.Contains(email, "@") {
		return shared.NewDomainError("INVALID_EMAIL", "A valid email is required")
	}

	c.IdentificationType = identificationType
	c.FullName = fullName
	c.CompanyName = strings.TrimSpace(companyName)
	c.IDNumber = idNumber
	c.Contact = contact
	c.Email = email
	c.Address = address
	c.Department = department
	c.City = city
	c.Touch()
	return nil
}

// ToggleActive flips the active flag and reports the new state
func (c *Client) ToggleActive() bool {
	c.IsActive = !c.IsActive
	c.Touch()
	return c.IsActive
}

// AddEmail registers an alternate recipient address
func (c *Client) AddEmail(email string) (*ClientEmail, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email is required")
	}
	for _, e := range c.Emails {
		if e.Email == email {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already registered for this client")
		}
	}
	entry := ClientEmail{
		BaseEntity: shared.NewBaseEntity(),
		ClientID:   c.ID,
		Email:      email,
	}
	c.Emails = append(c.Emails, entry)
	return &entry, nil
}
