package bookdex

import (
	"time"

	dbRedis "github.com/kailas-cloud/bookdex/internal/db/redis"
)

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	addrs            []string
	username         string
	password         string
	db               int
	dialTimeout      time.Duration
	readinessTimeout time.Duration
	index            string
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		dialTimeout:      5 * time.Second,
		readinessTimeout: defaultReadinessTimeout,
		index:            "idx-books",
	}
}

func (c *clientConfig) storeConfig() dbRedis.Config {
	return dbRedis.Config{
		Addrs:       c.addrs,
		Username:    c.username,
		Password:    c.password,
		DB:          c.db,
		DialTimeout: c.dialTimeout,
	}
}

// WithRedis sets the engine addresses (host:port).
func WithRedis(addrs ...string) Option {
	return func(c *clientConfig) {
		c.addrs = append(c.addrs, addrs...)
	}
}

// WithAuth sets ACL credentials. An empty username means the default user.
func WithAuth(username, password string) Option {
	return func(c *clientConfig) {
		c.username = username
		c.password = password
	}
}

// WithDB selects the logical database.
func WithDB(n int) Option {
	return func(c *clientConfig) {
		c.db = n
	}
}

// WithIndex overrides the index name (default idx-books).
func WithIndex(name string) Option {
	return func(c *clientConfig) {
		c.index = name
	}
}

// WithTimeouts sets the dial and readiness timeouts. Zero keeps the default.
func WithTimeouts(dial, readiness time.Duration) Option {
	return func(c *clientConfig) {
		if dial > 0 {
			c.dialTimeout = dial
		}
		if readiness > 0 {
			c.readinessTimeout = readiness
		}
	}
}

// SearchOption configures a single Search call.
type SearchOption func(*searchConfig)

type searchConfig struct {
	offset     int
	limit      int
	withScores bool
}

// Page sets the offset and page size.
func Page(offset, limit int) SearchOption {
	return func(c *searchConfig) {
		c.offset = offset
		c.limit = limit
	}
}

// WithScores asks the engine for relevance scores.
func WithScores() SearchOption {
	return func(c *searchConfig) {
		c.withScores = true
	}
}
