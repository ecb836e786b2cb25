package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/robinjoseph08/golib/logger"
	"github.com/shishobooks/catalog/pkg/config"
	"github.com/shishobooks/catalog/pkg/database"
	"github.com/shishobooks/catalog/pkg/migrations"
	"github.com/shishobooks/catalog/pkg/validation"
)

func main() {
	log := logger.New()
	ctx := log.WithContext(context.Background())

	var opts struct {
		Fixture string `short:"f" long:"fixture" description:"A JSON fixture to load instead of the bundled sample catalog"`
		Reset   bool   `short:"r" long:"reset" description:"Delete every catalog record before seeding"`
	}

	_, err := flags.Parse(&opts)
	if err != nil {
		log.Err(err).Fatal("flags parse error")
	}

	fx, err := loadFixture(opts.Fixture)
	if err != nil {
		log.Err(err).Fatal("fixture error")
	}

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}
	defer db.Close()

	if _, err := migrations.BringUpToDate(ctx, db); err != nil {
		log.Err(err).Fatal("migrations error")
	}

	if opts.Reset {
		if err := reset(ctx, db); err != nil {
			log.Err(err).Fatal("reset error")
		}
	}

	n, err := apply(ctx, db, fx)
	if err != nil {
		log.Err(err).Fatal("seed error")
	}
	fmt.Printf("Created %d authors, %d genres, %d books and %d copies\n", n.Authors, n.Genres, n.Books, n.BookInstances)
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, ok := validation.ParseISO8601(s)
	if !ok {
		return nil
	}
	return &t
}
