package main

import (
	"context"
	"database/sql"
	_ "embed"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/segmentio/encoding/json"
	"github.com/shishobooks/catalog/pkg/authors"
	"github.com/shishobooks/catalog/pkg/bookinstances"
	"github.com/shishobooks/catalog/pkg/books"
	"github.com/shishobooks/catalog/pkg/genres"
	"github.com/shishobooks/catalog/pkg/models"
	"github.com/shishobooks/catalog/pkg/validation"
	"github.com/uptrace/bun"
)

//go:embed sample.json
var sampleFixture []byte

// fixture is a catalog described by keys instead of ids, so records can refer
// to each other before they exist.
type fixture struct {
	Authors []struct {
		Key         string `json:"key"`
		FirstName   string `json:"first_name"`
		FamilyName  string `json:"family_name"`
		DateOfBirth string `json:"date_of_birth"`
		DateOfDeath string `json:"date_of_death"`
	} `json:"authors"`
	Genres []struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	} `json:"genres"`
	Books []struct {
		Key     string   `json:"key"`
		Title   string   `json:"title"`
		Summary string   `json:"summary"`
		ISBN    string   `json:"isbn"`
		Author  string   `json:"author"`
		Genres  []string `json:"genres"`
	} `json:"books"`
	BookInstances []struct {
		Book    string `json:"book"`
		Imprint string `json:"imprint"`
		Status  string `json:"status"`
		DueBack string `json:"due_back"`
	} `json:"book_instances"`
}

// counts reports how many records of each kind were created.
type counts struct {
	Authors       int
	Genres        int
	Books         int
	BookInstances int
}

func loadFixture(path string) (*fixture, error) {
	data := sampleFixture
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		defer f.Close()
		data, err = io.ReadAll(f)
		if err != nil {
			return nil, errors.WithStack(err)
		}
	}

	fx := &fixture{}
	if err := json.Unmarshal(data, fx); err != nil {
		return nil, errors.Wrap(err, "invalid fixture")
	}
	return fx, nil
}

// apply creates every record of the fixture through the catalog services.
// Text is escaped the same way submitted forms are.
func apply(ctx context.Context, db *bun.DB, fx *fixture) (counts, error) {
	log := logger.FromContext(ctx)
	var n counts

	authorService := authors.NewService(db)
	genreService := genres.NewService(db)
	bookService := books.NewService(db)
	bookInstanceService := bookinstances.NewService(db)

	authorIDs := map[string]string{}
	for _, a := range fx.Authors {
		author := &models.Author{
			FirstName:   validation.Escape(a.FirstName),
			FamilyName:  validation.Escape(a.FamilyName),
			DateOfBirth: parseDate(a.DateOfBirth),
			DateOfDeath: parseDate(a.DateOfDeath),
		}
		if err := authorService.CreateAuthor(ctx, author); err != nil {
			return n, errors.Wrapf(err, "failed to create author %s", a.Key)
		}
		authorIDs[a.Key] = author.ID
		n.Authors++
	}

	genreIDs := map[string]string{}
	for _, g := range fx.Genres {
		genre := &models.Genre{Name: validation.Escape(g.Name)}
		if err := genreService.CreateGenre(ctx, genre); err != nil {
			return n, errors.Wrapf(err, "failed to create genre %s", g.Key)
		}
		genreIDs[g.Key] = genre.ID
		n.Genres++
	}

	bookIDs := map[string]string{}
	for _, b := range fx.Books {
		authorID, ok := authorIDs[b.Author]
		if !ok {
			return n, errors.Errorf("book %s refers to unknown author %s", b.Key, b.Author)
		}
		book := &models.Book{
			Title:    validation.Escape(b.Title),
			AuthorID: authorID,
			Summary:  validation.Escape(b.Summary),
			ISBN:     validation.Escape(b.ISBN),
		}
		ids := make([]string, 0, len(b.Genres))
		for _, key := range b.Genres {
			id, ok := genreIDs[key]
			if !ok {
				return n, errors.Errorf("book %s refers to unknown genre %s", b.Key, key)
			}
			ids = append(ids, id)
		}
		book.SetGenreIDs(ids)
		if err := bookService.CreateBook(ctx, book); err != nil {
			return n, errors.Wrapf(err, "failed to create book %s", b.Key)
		}
		bookIDs[b.Key] = book.ID
		n.Books++
	}

	for i, bi := range fx.BookInstances {
		bookID, ok := bookIDs[bi.Book]
		if !ok {
			return n, errors.Errorf("book instance %d refers to unknown book %s", i, bi.Book)
		}
		instance := &models.BookInstance{
			BookID:  bookID,
			Imprint: validation.Escape(bi.Imprint),
			Status:  bi.Status,
		}
		if due := parseDate(bi.DueBack); due != nil {
			instance.DueBack = *due
		}
		if err := bookInstanceService.CreateBookInstance(ctx, instance); err != nil {
			return n, errors.Wrapf(err, "failed to create book instance %d", i)
		}
		n.BookInstances++
	}

	log.Info("seeded catalog", logger.Data{
		"authors":        n.Authors,
		"genres":         n.Genres,
		"books":          n.Books,
		"book_instances": n.BookInstances,
	})
	return n, nil
}

// reset deletes every catalog record.
func reset(ctx context.Context, db *bun.DB) error {
	return db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, model := range []interface{}{
			(*models.BookInstance)(nil),
			(*models.BookGenre)(nil),
			(*models.Book)(nil),
			(*models.Genre)(nil),
			(*models.Author)(nil),
		} {
			if _, err := tx.NewDelete().Model(model).Where("1 = 1").Exec(ctx); err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	})
}
