package store

// schemaDDL is the fixed schema described in §6. It is executed verbatim
// by Migrate; this is a thin bring-up helper for local/test use, not a
// general migration runner (that tooling is out of scope per §1).
const schemaDDL = `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	client_hash TEXT NOT NULL UNIQUE,
	created TIMESTAMPTZ NOT NULL DEFAULT now(),
	last_seen TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS votes (
	id BIGSERIAL PRIMARY KEY,
	user_id_fk BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	snap_id TEXT NOT NULL,
	snap_revision INTEGER NOT NULL,
	vote_up BOOLEAN NOT NULL,
	created TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (user_id_fk, snap_id, snap_revision)
);

CREATE INDEX IF NOT EXISTS votes_snap_id_idx ON votes (snap_id);
CREATE INDEX IF NOT EXISTS votes_created_idx ON votes (created);

CREATE TABLE IF NOT EXISTS snap_categories (
	snap_id TEXT NOT NULL,
	category TEXT NOT NULL,
	UNIQUE (snap_id, category)
);
`
