// Package pg bootstraps the PostgreSQL layer: an env-configured pgx/v5
// connection pool with startup retries, goose schema migrations, a health
// check closure, and helpers for classifying common driver errors
// (IsNotFoundError, IsDuplicateKeyError).
//
//	var cfg pg.Config
//	_ = env.Parse(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil { ... }
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil { ... }
package pg
