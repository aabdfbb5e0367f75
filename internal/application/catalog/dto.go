package catalog

import (
	"time"

	"github.com/cotizador/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Result ceilings per listing. Small fixed caps instead of cursor paging.
const (
	maxClients     = 10
	maxProducts    = 10
	maxAttachments = 500
)

// ClientRequest represents a create or update of a client
type ClientRequest struct {
	IdentificationType int    `json:"identificationType" binding:"required,min=1"`
	FullName           string `json:"fullName" binding:"required,min=1,max=200"`
	CompanyName        string `json:"companyName" binding:"max=200"`
	IDNumber           string `json:"idNumber" binding:"required,min=1,max=50"`
	Contact            string `json:"contact" binding:"required,max=50"`
	Email              string `json:"email" binding:"required,email"`
	Address            string `json:"address" binding:"required,max=200"`
	Department         string `json:"department" binding:"required,max=100"`
	City               string `json:"city" binding:"required,max=100"`
}

// ClientEmailRequest adds an alternate recipient address to a client
type ClientEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ClientResponse is the outward representation of a client
type ClientResponse struct {
	ID                 uuid.UUID `json:"id"`
	IdentificationType int       `json:"identificationType"`
	FullName           string    `json:"fullName"`
	CompanyName        string    `json:"companyName"`
	IDNumber           string    `json:"idNumber"`
	Contact            string    `json:"contact"`
	Email              string    `json:"email"`
	Address            string    `json:"address"`
	Department         string    `json:"department"`
	City               string    `json:"city"`
	IsActive           bool      `json:"isActive"`
	Emails             []string  `json:"emails,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// ProductRequest represents a create or update of a product
type ProductRequest struct {
	ProductType int             `json:"productType" binding:"required,min=1"`
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"required,max=500"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Tax         int             `json:"tax" binding:"min=0,max=100"`
	Stock       int             `json:"stock" binding:"min=0"`
}

// ProductResponse is the outward representation of a product
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductType int             `json:"productType"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Tax         int             `json:"tax"`
	Stock       int             `json:"stock"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// AttachmentUpload carries the metadata and content of an uploaded file
type AttachmentUpload struct {
	Name           string
	AttachmentType int
	Filename       string
	ContentType    string
	Content        []byte
}

// AttachmentResponse is the outward representation of an attachment
type AttachmentResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	AttachmentType int       `json:"attachmentType"`
	FileKey        string    `json:"fileKey"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToClientResponse maps a domain client to its outward representation
func ToClientResponse(client *catalog.Client) ClientResponse {
	emails := make([]string, 0, len(client.Emails))
	for _, e := range client.Emails {
		emails = append(emails, e.Email)
	}
	return ClientResponse{
		ID:                 client.ID,
		IdentificationType: client.IdentificationType,
		FullName:           client.FullName,
		CompanyName:        client.CompanyName,
		IDNumber:           client.IDNumber,
		Contact:            client.Contact,
		Email:              client.Email,
		Address:            client.Address,
		Department:         client.Department,
		City:               client.City,
		IsActive:           client.IsActive,
		Emails:             emails,
		CreatedAt:          client.CreatedAt,
	}
}

// ToProductResponse maps a domain product to its outward representation
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		ProductType: product.ProductType,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Tax:         product.Tax,
		Stock:       product.Stock,
		IsActive:    product.IsActive,
		CreatedAt:   product.CreatedAt,
	}
}

// ToAttachmentResponse maps a domain attachment to its outward representation
func ToAttachmentResponse(attachment *catalog.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:             attachment.ID,
		Name:           attachment.Name,
		AttachmentType: int(attachment.AttachmentType),
		FileKey:        attachment.FileKey,
		IsActive:       attachment.IsActive,
		CreatedAt:      attachment.CreatedAt,
	}
}
