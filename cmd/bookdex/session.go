package main

import (
	"context"

	"github.com/kailas-cloud/bookdex/internal/config"
	dbRedis "github.com/kailas-cloud/bookdex/internal/db/redis"
	bookrepo "github.com/kailas-cloud/bookdex/internal/repository/book"
	indexrepo "github.com/kailas-cloud/bookdex/internal/repository/index"
	searchrepo "github.com/kailas-cloud/bookdex/internal/repository/search"
	"github.com/kailas-cloud/bookdex/internal/usecase/library"
)

// redisOpener dials a fresh rueidis client per operation and closes it on Release.
func redisOpener(db config.DatabaseConfig, index string) library.Opener {
	return func(_ context.Context) (*library.Session, error) {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:       db.Addrs,
			Username:    db.Username,
			Password:    db.Password,
			DB:          db.DB,
			DialTimeout: db.DialTimeout(),
		})
		if err != nil {
			return nil, err
		}
		return &library.Session{
			Books:   bookrepo.New(store),
			Indexes: indexrepo.New(store, index),
			Search:  searchrepo.New(store, index),
			DB:      store,
			Release: store.Close,
		}, nil
	}
}
