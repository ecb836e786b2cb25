package bookinstances

import (
	"context"
	"database/sql"
	"time"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"github.com/shishobooks/catalog/pkg/errcodes"
	"github.com/shishobooks/catalog/pkg/models"
	"github.com/uptrace/bun"
)

type CountBookInstancesOptions struct {
	Status *string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateBookInstance inserts the copy. A copy without a status is put into
// maintenance, and one without a due date is due back now.
func (svc *Service) CreateBookInstance(ctx context.Context, bi *models.BookInstance) error {
	if err := defaults.Set(bi); err != nil {
		return errors.WithStack(err)
	}
	if bi.ID == "" {
		bi.ID = models.NewID()
	}
	bi.BookID = models.CanonicalID(bi.BookID)
	now := time.Now()
	if bi.CreatedAt.IsZero() {
		bi.CreatedAt = now
	}
	bi.UpdatedAt = bi.CreatedAt
	if bi.DueBack.IsZero() {
		bi.DueBack = bi.CreatedAt
	}

	_, err := svc.db.
		NewInsert().
		Model(bi).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) RetrieveBookInstance(ctx context.Context, id string) (*models.BookInstance, error) {
	bi := &models.BookInstance{}

	err := svc.db.
		NewSelect().
		Model(bi).
		Relation("Book").
		Where("bi.id = ?", models.CanonicalID(id)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book copy")
		}
		return nil, errors.WithStack(err)
	}

	return bi, nil
}

// ListBookInstances returns every copy with its book populated.
func (svc *Service) ListBookInstances(ctx context.Context) ([]*models.BookInstance, error) {
	var instances []*models.BookInstance

	err := svc.db.
		NewSelect().
		Model(&instances).
		Relation("Book").
		Order("bi.due_back ASC", "bi.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return instances, nil
}

func (svc *Service) CountBookInstances(ctx context.Context, opts CountBookInstancesOptions) (int, error) {
	q := svc.db.
		NewSelect().
		Model((*models.BookInstance)(nil))

	if opts.Status != nil {
		q = q.Where("bi.status = ?", *opts.Status)
	}

	count, err := q.Count(ctx)
	return count, errors.WithStack(err)
}

// UpdateBookInstance replaces every editable field of the copy with the given
// id.
func (svc *Service) UpdateBookInstance(ctx context.Context, bi *models.BookInstance) error {
	if err := defaults.Set(bi); err != nil {
		return errors.WithStack(err)
	}
	bi.ID = models.CanonicalID(bi.ID)
	bi.BookID = models.CanonicalID(bi.BookID)
	bi.UpdatedAt = time.Now()
	if bi.DueBack.IsZero() {
		bi.DueBack = bi.UpdatedAt
	}

	res, err := svc.db.
		NewUpdate().
		Model(bi).
		Column("book_id", "imprint", "status", "due_back", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errcodes.NotFound("Book copy")
	}
	return nil
}

func (svc *Service) DeleteBookInstance(ctx context.Context, id string) error {
	_, err := svc.db.
		NewDelete().
		Model((*models.BookInstance)(nil)).
		Where("id = ?", models.CanonicalID(id)).
		Exec(ctx)
	return errors.WithStack(err)
}
