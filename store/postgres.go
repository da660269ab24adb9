package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/canonical/ratings/ratings"
)

// Postgres is the pgx-backed Store implementation.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ Store = (*Postgres)(nil)

// psql is a squirrel statement builder configured for Postgres's
// dollar-numbered placeholders, shared by every query in this file.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Open creates a connection pool bounded by maxConns (the config
// default is 5, per §5). A maxConns of 0 keeps pgxpool's own default.
func Open(ctx context.Context, dsn string, maxConns int32) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse postgres DSN")
	}

	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open postgres pool")
	}

	return &Postgres{pool: pool}, nil
}

// Migrate executes the fixed schema DDL in §6.
func (p *Postgres) Migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, schemaDDL)
	return errors.Wrap(err, "failed to apply schema")
}

func (p *Postgres) Close() {
	p.pool.Close()
}

func (p *Postgres) CreateOrSeen(ctx context.Context, clientHash string) (User, error) {
	query, args, err := psql.Insert("users").
		Columns("client_hash", "created", "last_seen").
		Values(clientHash, sq.Expr("now()"), sq.Expr("now()")).
		Suffix("ON CONFLICT (client_hash) DO UPDATE SET last_seen = now() RETURNING id, client_hash, created, last_seen").
		ToSql()
	if err != nil {
		return User{}, errors.Wrap(err, "failed to build create_or_seen query")
	}

	var u User
	row := p.pool.QueryRow(ctx, query, args...)
	if err := row.Scan(&u.ID, &u.ClientHash, &u.Created, &u.LastSeen); err != nil {
		return User{}, errors.Wrap(err, "failed to upsert user")
	}

	return u, nil
}

func (p *Postgres) DeleteUser(ctx context.Context, clientHash string) error {
	query, args, err := psql.Delete("users").Where(sq.Eq{"client_hash": clientHash}).ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build delete_user query")
	}

	_, err = p.pool.Exec(ctx, query, args...)
	return errors.Wrap(err, "failed to delete user")
}

func (p *Postgres) SaveVote(ctx context.Context, clientHash string, vote VoteInput) (int64, error) {
	query := `
		INSERT INTO votes (user_id_fk, snap_id, snap_revision, vote_up, created)
		SELECT id, $2, $3, $4, now() FROM users WHERE client_hash = $1
		ON CONFLICT (user_id_fk, snap_id, snap_revision)
		DO UPDATE SET vote_up = EXCLUDED.vote_up
	`

	tag, err := p.pool.Exec(ctx, query, clientHash, vote.SnapID, vote.SnapRevision, vote.VoteUp)
	if err != nil {
		return 0, errors.Wrap(err, "failed to save vote")
	}

	if tag.RowsAffected() == 0 {
		return 0, errors.Errorf("no user found for client hash while saving vote")
	}

	return tag.RowsAffected(), nil
}

func (p *Postgres) VotesByClientAndOptionalSnap(ctx context.Context, clientHash string, snapID *string) ([]Vote, error) {
	builder := psql.Select("v.id", "v.user_id_fk", "v.snap_id", "v.snap_revision", "v.vote_up", "v.created").
		From("votes v").
		Join("users u ON u.id = v.user_id_fk").
		Where(sq.Eq{"u.client_hash": clientHash})

	if snapID != nil {
		builder = builder.Where(sq.Eq{"v.snap_id": *snapID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build votes query")
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query votes")
	}
	defer rows.Close()

	var votes []Vote
	for rows.Next() {
		var v Vote
		if err := rows.Scan(&v.ID, &v.UserID, &v.SnapID, &v.SnapRevision, &v.VoteUp, &v.Created); err != nil {
			return nil, errors.Wrap(err, "failed to scan vote row")
		}
		votes = append(votes, v)
	}

	return votes, errors.Wrap(rows.Err(), "failed to iterate vote rows")
}

func (p *Postgres) SummaryBySnapID(ctx context.Context, snapID string) (ratings.VoteSummary, error) {
	query, args, err := aggregateBuilder(nil, nil).
		Where(sq.Eq{"snap_id": snapID}).
		ToSql()
	if err != nil {
		return ratings.VoteSummary{}, errors.Wrap(err, "failed to build summary query")
	}

	var total, positive int64
	row := p.pool.QueryRow(ctx, query, args...)
	if err := row.Scan(&total, &positive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ratings.VoteSummary{SnapID: snapID}, nil
		}
		return ratings.VoteSummary{}, errors.Wrap(err, "failed to scan summary row")
	}

	return ratings.VoteSummary{SnapID: snapID, TotalVotes: uint64(total), PositiveVotes: uint64(positive)}, nil
}

func (p *Postgres) SummariesForTimeframe(ctx context.Context, timeframe ratings.Timeframe, category *ratings.Category) ([]ratings.VoteSummary, error) {
	builder := psql.Select("snap_id", "COUNT(*)", "COUNT(*) FILTER (WHERE vote_up)").
		From("votes").
		GroupBy("snap_id")

	builder = applyTimeframe(builder, timeframe)

	if category != nil {
		builder = builder.Where(sq.Expr(
			"snap_id IN (SELECT snap_id FROM snap_categories WHERE category = ?)", category.String(),
		))
	}

	return p.runSummaryQuery(ctx, builder)
}

func (p *Postgres) SummariesForSnapIDs(ctx context.Context, ids []string, timeframe ratings.Timeframe) ([]ratings.VoteSummary, error) {
	builder := psql.Select("snap_id", "COUNT(*)", "COUNT(*) FILTER (WHERE vote_up)").
		From("votes").
		Where(sq.Eq{"snap_id": ids}).
		GroupBy("snap_id")

	builder = applyTimeframe(builder, timeframe)

	return p.runSummaryQuery(ctx, builder)
}

func (p *Postgres) runSummaryQuery(ctx context.Context, builder sq.SelectBuilder) ([]ratings.VoteSummary, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build summaries query")
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query summaries")
	}
	defer rows.Close()

	var out []ratings.VoteSummary
	for rows.Next() {
		var s ratings.VoteSummary
		var total, positive int64
		if err := rows.Scan(&s.SnapID, &total, &positive); err != nil {
			return nil, errors.Wrap(err, "failed to scan summary row")
		}
		s.TotalVotes, s.PositiveVotes = uint64(total), uint64(positive)
		out = append(out, s)
	}

	return out, errors.Wrap(rows.Err(), "failed to iterate summary rows")
}

func (p *Postgres) SnapHasCategories(ctx context.Context, snapID string) (bool, error) {
	query, args, err := psql.Select("1").From("snap_categories").
		Where(sq.Eq{"snap_id": snapID}).Limit(1).ToSql()
	if err != nil {
		return false, errors.Wrap(err, "failed to build snap_has_categories query")
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return false, errors.Wrap(err, "failed to query snap_categories")
	}
	defer rows.Close()

	return rows.Next(), errors.Wrap(rows.Err(), "failed to iterate snap_categories rows")
}

func (p *Postgres) SetCategoriesForSnap(ctx context.Context, snapID string, categories []ratings.Category) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to begin category transaction")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for _, cat := range categories {
		query, args, err := psql.Insert("snap_categories").
			Columns("snap_id", "category").
			Values(snapID, cat.String()).
			Suffix("ON CONFLICT (snap_id, category) DO NOTHING").
			ToSql()
		if err != nil {
			return errors.Wrap(err, "failed to build category insert")
		}

		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return errors.Wrap(err, "failed to insert category")
		}
	}

	return errors.Wrap(tx.Commit(ctx), "failed to commit category transaction")
}

func aggregateBuilder(timeframe *ratings.Timeframe, category *ratings.Category) sq.SelectBuilder {
	b := psql.Select("COUNT(*)", "COUNT(*) FILTER (WHERE vote_up)").From("votes")
	if timeframe != nil {
		b = applyTimeframe(b, *timeframe)
	}
	if category != nil {
		b = b.Where(sq.Expr("snap_id IN (SELECT snap_id FROM snap_categories WHERE category = ?)", category.String()))
	}
	return b
}

func applyTimeframe(b sq.SelectBuilder, timeframe ratings.Timeframe) sq.SelectBuilder {
	switch timeframe {
	case ratings.TimeframeWeek:
		return b.Where(sq.Expr("created >= ?", time.Now().AddDate(0, 0, -7)))
	case ratings.TimeframeMonth:
		return b.Where(sq.Expr("created >= ?", time.Now().AddDate(0, 0, -30)))
	default:
		return b
	}
}
