package authors

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/shishobooks/catalog/pkg/errcodes"
	"github.com/shishobooks/catalog/pkg/models"
	"github.com/uptrace/bun"
)

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) CreateAuthor(ctx context.Context, author *models.Author) error {
	if author.ID == "" {
		author.ID = models.NewID()
	}
	now := time.Now()
	if author.CreatedAt.IsZero() {
		author.CreatedAt = now
	}
	author.UpdatedAt = author.CreatedAt

	_, err := svc.db.
		NewInsert().
		Model(author).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) RetrieveAuthor(ctx context.Context, id string) (*models.Author, error) {
	author := &models.Author{}

	err := svc.db.
		NewSelect().
		Model(author).
		Where("a.id = ?", models.CanonicalID(id)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Author")
		}
		return nil, errors.WithStack(err)
	}

	return author, nil
}

// ListAuthors returns every author ordered by family name.
func (svc *Service) ListAuthors(ctx context.Context) ([]*models.Author, error) {
	var authors []*models.Author

	err := svc.db.
		NewSelect().
		Model(&authors).
		Order("a.family_name ASC", "a.first_name ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return authors, nil
}

func (svc *Service) CountAuthors(ctx context.Context) (int, error) {
	count, err := svc.db.
		NewSelect().
		Model((*models.Author)(nil)).
		Count(ctx)
	return count, errors.WithStack(err)
}

// UpdateAuthor replaces every editable field of the author with the given id.
func (svc *Service) UpdateAuthor(ctx context.Context, author *models.Author) error {
	author.ID = models.CanonicalID(author.ID)
	author.UpdatedAt = time.Now()

	res, err := svc.db.
		NewUpdate().
		Model(author).
		Column("first_name", "family_name", "date_of_birth", "date_of_death", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errcodes.NotFound("Author")
	}
	return nil
}

func (svc *Service) DeleteAuthor(ctx context.Context, id string) error {
	_, err := svc.db.
		NewDelete().
		Model((*models.Author)(nil)).
		Where("id = ?", models.CanonicalID(id)).
		Exec(ctx)
	return errors.WithStack(err)
}

// GetBooks returns the books written by the author, with only the columns the
// author pages display.
func (svc *Service) GetBooks(ctx context.Context, authorID string) ([]*models.Book, error) {
	var books []*models.Book

	err := svc.db.
		NewSelect().
		Model(&books).
		Column("b.id", "b.title", "b.summary").
		Where("b.author_id = ?", models.CanonicalID(authorID)).
		Order("b.title ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return books, nil
}
