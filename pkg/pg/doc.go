// Package pg bootstraps the PostgreSQL layer on pgx/v5.
//
// Connect opens a *pgxpool.Pool from Config and retries transient failures.
// Migrate applies goose migrations from an fs.FS, typically an embedded
// directory, over the same pool. Healthcheck plugs the pool into readiness
// probes, and the Is*Error helpers classify driver errors so storage code
// can map them onto domain errors:
//
//	pool, err := pg.Connect(ctx, cfg, log)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, db.Migrations, db.MigrationsDir, cfg, log); err != nil {
//		return err
//	}
package pg
