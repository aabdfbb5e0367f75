// Package notification composes and dispatches outgoing quote emails.
package notification

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	appcatalog "github.com/cotizador/backend/internal/application/catalog"
	"github.com/cotizador/backend/internal/domain/catalog"
	"github.com/cotizador/backend/internal/domain/quote"
	"github.com/cotizador/backend/internal/domain/shared"
	"github.com/cotizador/backend/internal/infrastructure/logger"
	"github.com/cotizador/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// SendQuoteRequest asks for a quote to be rendered and emailed
type SendQuoteRequest struct {
	QuoteID        uuid.UUID `json:"quoteId" binding:"required"`
	Recipients     []string  `json:"recipients" binding:"required,min=1,dive,email"`
	AttachmentType *int      `json:"attachmentType" binding:"omitempty,min=1,max=3"`
}

// QuoteRenderer produces the PDF document for a quote detail
type QuoteRenderer interface {
	RenderQuote(detail *quote.Detail) ([]byte, error)
}

// QuoteMailer renders a quote and emails it with any applicable
// supplementary attachments
type QuoteMailer struct {
	quoteRepo      quote.QuoteRepository
	attachmentRepo catalog.AttachmentRepository
	fileStore      appcatalog.FileStore
	renderer       QuoteRenderer
	mailer         Mailer
}

// NewQuoteMailer creates a new QuoteMailer
func NewQuoteMailer(
	quoteRepo quote.QuoteRepository,
	attachmentRepo catalog.AttachmentRepository,
	fileStore appcatalog.FileStore,
	renderer QuoteRenderer,
	mailer Mailer,
) *QuoteMailer {
	return &QuoteMailer{
		quoteRepo:      quoteRepo,
		attachmentRepo: attachmentRepo,
		fileStore:      fileStore,
		renderer:       renderer,
		mailer:         mailer,
	}
}

// SendQuoteEmail renders the quote PDF and dispatches it to the given
// recipients. Supplementary attachments whose files have gone missing are
// skipped with a warning; a transport failure fails the whole operation.
func (m *QuoteMailer) SendQuoteEmail(ctx context.Context, req SendQuoteRequest) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "notification", "send_quote_email",
		attribute.String(telemetry.SpanAttrQuoteID, req.QuoteID.String()))
	defer span.End()

	detail, err := m.quoteRepo.FindDetail(ctx, req.QuoteID)
	if err != nil {
		return err
	}

	pdfData, err := m.renderer.RenderQuote(detail)
	if err != nil {
		telemetry.RecordError(span, err)
		return shared.ErrRenderFailed
	}

	msg := OutgoingMessage{
		To:       req.Recipients,
		Subject:  fmt.Sprintf("COTIZACIÓN No. %d", detail.Number),
		HTMLBody: composeBody(detail),
		Attachments: []FilePart{{
			Filename:    fmt.Sprintf("cotizacion_%d.pdf", detail.Number),
			ContentType: "application/pdf",
			Content:     pdfData,
		}},
	}

	if req.AttachmentType != nil {
		extra, err := m.gatherAttachments(ctx, catalog.AttachmentType(*req.AttachmentType))
		if err != nil {
			return err
		}
		msg.Attachments = append(msg.Attachments, extra...)
	}

	if err := m.mailer.Send(ctx, msg); err != nil {
		telemetry.RecordError(span, err)
		logger.L(ctx).Error("Quote email delivery failed",
			zap.Int("quote_number", detail.Number),
			zap.Strings("recipients", req.Recipients),
			zap.Error(err))
		return shared.ErrSendFailed
	}

	logger.L(ctx).Info("Quote email sent",
		zap.Int("quote_number", detail.Number),
		zap.Int("attachments", len(msg.Attachments)),
		zap.Strings("recipients", req.Recipients))
	return nil
}

// gatherAttachments loads the active attachments applying to the given type.
// Files missing from the store are skipped, not fatal: the row may outlive
// its file when storage is cleaned up out of band.
func (m *QuoteMailer) gatherAttachments(ctx context.Context, filter catalog.AttachmentType) ([]FilePart, error) {
	attachments, err := m.attachmentRepo.FindActiveByType(ctx, filter)
	if err != nil {
		return nil, err
	}

	parts := make([]FilePart, 0, len(attachments))
	for _, a := range attachments {
		content, err := m.fileStore.Read(ctx, a.FileKey)
		if err != nil {
			logger.L(ctx).Warn("Skipping attachment with unreadable file",
				zap.String("attachment", a.Name),
				zap.String("file_key", a.FileKey),
				zap.Error(err))
			continue
		}
		parts = append(parts, FilePart{
			Filename:    attachmentFilename(a),
			ContentType: contentTypeFor(a.FileKey),
			Content:     content,
		})
	}
	return parts, nil
}

func composeBody(detail *quote.Detail) string {
	var b strings.Builder
	b.WriteString("<p>Estimado(a) ")
	b.WriteString(detail.Client.FullName)
	b.WriteString(",</p>")
	b.WriteString(fmt.Sprintf("<p>Adjunto encontrará la cotización No. %d solicitada.</p>", detail.Number))
	b.WriteString("<p>Quedamos atentos a cualquier inquietud.</p>")
	b.WriteString("<p>Cordialmente,<br>REC-Soluciones</p>")
	return b.String()
}

// attachmentFilename keeps the stored extension but presents the
// human-readable attachment name
func attachmentFilename(a *catalog.Attachment) string {
	ext := filepath.Ext(a.FileKey)
	return a.Name + ext
}

func contentTypeFor(fileKey string) string {
	switch strings.ToLower(filepath.Ext(fileKey)) {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".zip":
		return "application/zip"
	case ".txt":
		return "text/plain"
	case ".csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}
