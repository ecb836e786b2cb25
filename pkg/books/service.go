package books

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/shishobooks/catalog/pkg/errcodes"
	"github.com/shishobooks/catalog/pkg/models"
	"github.com/uptrace/bun"
)

type ListBooksOptions struct {
	AuthorID *string
	GenreID  *string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateBook inserts the book along with its genre associations.
func (svc *Service) CreateBook(ctx context.Context, book *models.Book) error {
	if book.ID == "" {
		book.ID = models.NewID()
	}
	book.AuthorID = models.CanonicalID(book.AuthorID)
	now := time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = book.CreatedAt

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.
			NewInsert().
			Model(book).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		return insertBookGenres(ctx, tx, book)
	})
	return errors.WithStack(err)
}

func (svc *Service) RetrieveBook(ctx context.Context, id string) (*models.Book, error) {
	book := &models.Book{}

	err := svc.db.
		NewSelect().
		Model(book).
		Relation("Author").
		Relation("BookGenres", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Relation("Genre")
		}).
		Where("b.id = ?", models.CanonicalID(id)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	return book, nil
}

// ListBooks returns books ordered by title, with their authors populated.
func (svc *Service) ListBooks(ctx context.Context, opts ListBooksOptions) ([]*models.Book, error) {
	var books []*models.Book

	q := svc.db.
		NewSelect().
		Model(&books).
		Relation("Author").
		Order("b.title ASC")

	if opts.AuthorID != nil {
		q = q.Where("b.author_id = ?", models.CanonicalID(*opts.AuthorID))
	}
	if opts.GenreID != nil {
		q = q.Where("b.id IN (SELECT book_id FROM book_genres WHERE genre_id = ?)", models.CanonicalID(*opts.GenreID))
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return books, nil
}

func (svc *Service) CountBooks(ctx context.Context) (int, error) {
	count, err := svc.db.
		NewSelect().
		Model((*models.Book)(nil)).
		Count(ctx)
	return count, errors.WithStack(err)
}

// UpdateBook replaces every editable field of the book with the given id,
// including its full set of genres.
func (svc *Service) UpdateBook(ctx context.Context, book *models.Book) error {
	book.ID = models.CanonicalID(book.ID)
	book.AuthorID = models.CanonicalID(book.AuthorID)
	book.UpdatedAt = time.Now()

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.
			NewUpdate().
			Model(book).
			Column("title", "author_id", "summary", "isbn", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return errcodes.NotFound("Book")
		}

		// Delete all previous genres and save these new ones.
		_, err = tx.
			NewDelete().
			Model((*models.BookGenre)(nil)).
			Where("book_id = ?", book.ID).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		return insertBookGenres(ctx, tx, book)
	})
	return errors.WithStack(err)
}

func (svc *Service) DeleteBook(ctx context.Context, id string) error {
	id = models.CanonicalID(id)
	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().
			Model((*models.BookGenre)(nil)).
			Where("book_id = ?", id).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = tx.NewDelete().
			Model((*models.Book)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		return errors.WithStack(err)
	})
}

// ListCopies returns the physical copies of the book.
func (svc *Service) ListCopies(ctx context.Context, bookID string) ([]*models.BookInstance, error) {
	var copies []*models.BookInstance

	err := svc.db.
		NewSelect().
		Model(&copies).
		Where("bi.book_id = ?", models.CanonicalID(bookID)).
		Order("bi.imprint ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return copies, nil
}

func insertBookGenres(ctx context.Context, tx bun.Tx, book *models.Book) error {
	if len(book.BookGenres) == 0 {
		return nil
	}
	for _, bg := range book.BookGenres {
		bg.BookID = book.ID
	}

	_, err := tx.
		NewInsert().
		Model(&book.BookGenres).
		Exec(ctx)
	return errors.WithStack(err)
}
