package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aryansawant3579-cell/review-app/internal/domain"
)

// TemplatesRepository provides persistence helpers for reply templates.
type TemplatesRepository struct {
	db DB
}

const templateColumns = `
    id,
    name,
    template_text,
    category,
    sentiment_type,
    created_by,
    is_active,
    created_at
`

// TemplateCreateParams bundles the fields stored for a new reply template.
type TemplateCreateParams struct {
	Name          string
	TemplateText  string
	Category      *string
	SentimentType *domain.Sentiment
	CreatedBy     *string
}

// Create inserts a new reply template and returns the stored entity.
func (r *TemplatesRepository) Create(ctx context.Context, params TemplateCreateParams) (domain.ReplyTemplate, error) {
	query := fmt.Sprintf(`
        INSERT INTO reply_templates (id, name, template_text, category, sentiment_type, created_by)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING %s
    `, templateColumns)

	var sentiment *string
	if params.SentimentType != nil {
		s := string(*params.SentimentType)
		sentiment = &s
	}

	row := r.db.QueryRow(ctx, query,
		uuid.NewString(),
		params.Name,
		params.TemplateText,
		params.Category,
		sentiment,
		params.CreatedBy,
	)
	return scanTemplate(row)
}

// ListActive returns the active templates, most recent first.
func (r *TemplatesRepository) ListActive(ctx context.Context) ([]domain.ReplyTemplate, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM reply_templates
        WHERE is_active
        ORDER BY created_at DESC, id DESC
    `, templateColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	templates := make([]domain.ReplyTemplate, 0)
	for rows.Next() {
		tmpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}
	return templates, rows.Err()
}

func scanTemplate(row pgx.Row) (domain.ReplyTemplate, error) {
	var tmpl domain.ReplyTemplate
	var sentiment *string
	err := row.Scan(
		&tmpl.ID,
		&tmpl.Name,
		&tmpl.TemplateText,
		&tmpl.Category,
		&sentiment,
		&tmpl.CreatedBy,
		&tmpl.IsActive,
		&tmpl.CreatedAt,
	)
	if err != nil {
		return domain.ReplyTemplate{}, err
	}
	if sentiment != nil {
		s := domain.Sentiment(*sentiment)
		tmpl.SentimentType = &s
	}
	return tmpl, nil
}
