package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/thiagofdruzian/ERP/internal/infra"
	"github.com/thiagofdruzian/ERP/internal/model"
	"github.com/thiagofdruzian/ERP/internal/repository"
)

// EmailPayload asks for one quote sheet to be mailed as a PDF.
// Version 0 means the head at processing time.
type EmailPayload struct {
	QuoteID     string `json:"quote_id"`
	Version     int    `json:"version"`
	To          string `json:"to"`
	Message     string `json:"message"`
	RequestedBy string `json:"requested_by"`
}

// QuoteMailer is the SMTP side of the email worker; *infra.Mailer satisfies it.
type QuoteMailer interface {
	SendQuote(to, subject, body string, pdf []byte, filename string) error
}

// EmailWorker renders a quote PDF and mails it.
type EmailWorker struct {
	quotes repository.QuoteRepository
	mailer QuoteMailer
}

func NewEmailWorker(quotes repository.QuoteRepository, mailer QuoteMailer) *EmailWorker {
	return &EmailWorker{quotes: quotes, mailer: mailer}
}

// Process returns an error only for failures worth retrying. A quote that no
// longer exists is logged and dropped.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var p EmailPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("decode email payload: %w", err)
	}
	if p.To == "" {
		log.Warn().Str("quote_id", p.QuoteID).Msg("email_worker: empty recipient, skipping")
		return nil
	}
	id, err := uuid.Parse(p.QuoteID)
	if err != nil {
		log.Warn().Str("quote_id", p.QuoteID).Msg("email_worker: invalid quote id, skipping")
		return nil
	}

	var q *model.Quote
	if p.Version > 0 {
		q, err = w.quotes.FindVersion(ctx, id, p.Version)
	} else {
		q, err = w.quotes.FindByID(ctx, id)
	}
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrVersionNotFound) {
		log.Warn().Str("quote_id", p.QuoteID).Int("version", p.Version).Msg("email_worker: quote gone, skipping")
		return nil
	}
	if err != nil {
		return err
	}

	pdf, err := infra.GenerateQuotePDF(q)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Cotacao %s (versao %d)", q.ProductName, q.Version)
	body := quoteEmailBody(q, p.Message)
	filename := fmt.Sprintf("cotacao-%s-v%d.pdf", q.ID.String()[:8], q.Version)

	if err := w.mailer.SendQuote(p.To, subject, body, pdf, filename); err != nil {
		return fmt.Errorf("send quote email: %w", err)
	}
	log.Info().Str("to", p.To).Str("quote_id", p.QuoteID).Int("version", q.Version).Msg("email_worker: quote sent")
	return nil
}

func quoteEmailBody(q *model.Quote, message string) string {
	res := q.Result.Data()
	body := fmt.Sprintf("Produto: %s\nFornecedor: %s\nPreco de venda: R$ %s\nMargem: %s%%\n",
		q.ProductName, q.SupplierName, res.SalePrice.StringFixed(2), res.MarginPct.StringFixed(2))
	if message != "" {
		body = message + "\n\n" + body
	}
	return body + "\nCotacao completa em anexo."
}
