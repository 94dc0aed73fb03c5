package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/gestor-notas-api/internal/domain"
	"github.com/jhoicas/gestor-notas-api/internal/domain/entity"
	"github.com/jhoicas/gestor-notas-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, user_id, invoice_number, delivery_date, total_value, is_validated,
	is_manual_entry, contact_name, phone_number, image_ref, created_at`

// Create persiste la cabecera y los ítems en una transacción.
func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	if invoice.CreatedAt.IsZero() {
		invoice.CreatedAt = time.Now().UTC()
	}
	return runInTx(ctx, r.q, func(tx Querier) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO invoices (id, user_id, invoice_number, delivery_date, total_value, is_validated,
			                      is_manual_entry, contact_name, phone_number, image_ref, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			invoice.ID, invoice.UserID, nullIfEmpty(invoice.InvoiceNumber), invoice.DeliveryDate,
			invoice.TotalValue, invoice.IsValidated, invoice.IsManualEntry,
			nullIfEmpty(invoice.ContactName), nullIfEmpty(invoice.PhoneNumber), nullIfEmpty(invoice.ImageRef),
			invoice.CreatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("invoice id already exists: %w", err)
			}
			return fmt.Errorf("insert invoice: %w", err)
		}
		for i := range invoice.Items {
			item := &invoice.Items[i]
			if item.ID == "" {
				item.ID = uuid.New().String()
			}
			item.InvoiceID = invoice.ID
			if item.Position == 0 {
				item.Position = i + 1
			}
			_, err := tx.Exec(ctx, `
				INSERT INTO invoice_items (id, invoice_id, position, description, value)
				VALUES ($1, $2, $3, $4, $5)`,
				item.ID, item.InvoiceID, item.Position, item.Description, item.Value,
			)
			if err != nil {
				return fmt.Errorf("insert invoice item: %w", err)
			}
		}
		return nil
	})
}

// GetByID obtiene la nota del usuario con sus ítems. (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, userID, id string) (*entity.Invoice, error) {
	row := r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 AND user_id = $2`, id, userID)
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Invoice{inv}); err != nil {
		return nil, err
	}
	return inv, nil
}

// List devuelve las notas con delivery_date en [From, To], más recientes primero.
func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	var (
		where = []string{"user_id = $1", "delivery_date BETWEEN $2 AND $3"}
		args  = []any{f.UserID, f.From, f.To}
	)
	if f.Validated != nil {
		args = append(args, *f.Validated)
		where = append(where, fmt.Sprintf("is_validated = $%d", len(args)))
	}
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY delivery_date DESC, created_at DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if f.WithItems && len(list) > 0 {
		if err := r.loadItems(ctx, list); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// SetValidated cambia is_validated. ErrNotFound si la nota no es del usuario.
func (r *InvoiceRepo) SetValidated(ctx context.Context, userID, id string, validated bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE invoices SET is_validated = $3 WHERE id = $1 AND user_id = $2`, id, userID, validated)
	if err != nil {
		return fmt.Errorf("update invoice validation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra la nota; los ítems caen por ON DELETE CASCADE.
func (r *InvoiceRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InvoiceRepo) loadItems(ctx context.Context, invoices []*entity.Invoice) error {
	byID := make(map[string]*entity.Invoice, len(invoices))
	ids := make([]string, 0, len(invoices))
	for _, inv := range invoices {
		byID[inv.ID] = inv
		ids = append(ids, inv.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, invoice_id, position, description, value
		FROM invoice_items WHERE invoice_id = ANY($1::uuid[]) ORDER BY invoice_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Position, &it.Description, &it.Value); err != nil {
			return fmt.Errorf("scan invoice item: %w", err)
		}
		if inv, ok := byID[it.InvoiceID]; ok {
			inv.Items = append(inv.Items, it)
		}
	}
	return rows.Err()
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var number, contact, phone, imageRef *string
	err := row.Scan(
		&inv.ID, &inv.UserID, &number, &inv.DeliveryDate, &inv.TotalValue, &inv.IsValidated,
		&inv.IsManualEntry, &contact, &phone, &imageRef, &inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.InvoiceNumber = derefStr(number)
	inv.ContactName = derefStr(contact)
	inv.PhoneNumber = derefStr(phone)
	inv.ImageRef = derefStr(imageRef)
	return &inv, nil
}
