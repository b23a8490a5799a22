// Package repository implements the durable stores on ClickHouse and the
// refresh event publisher on Kafka. All writes are appends; current state
// is always the newest batch, selected by its shared batch timestamp.
package repository

// Schema returns the DDL applied at startup. MergeTree with a TTL keeps
// old batches queryable for a while without unbounded growth.
func Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			sport   LowCardinality(String),
			domain  LowCardinality(String),
			as_of   DateTime64(3, 'UTC'),
			payload String
		) ENGINE = MergeTree()
		ORDER BY (sport, domain, as_of)
		TTL toDateTime(as_of) + INTERVAL 7 DAY`,

		`CREATE TABLE IF NOT EXISTS player_performance (
			player_name String,
			team        LowCardinality(String),
			game_date   String,
			opponent    LowCardinality(String),
			is_home     UInt8,
			minutes     Int32,
			points      Float64,
			rebounds    Float64,
			assists     Float64,
			fetched_at  DateTime64(3, 'UTC')
		) ENGINE = MergeTree()
		ORDER BY (player_name, fetched_at, game_date)
		TTL toDateTime(fetched_at) + INTERVAL 30 DAY`,

		`CREATE TABLE IF NOT EXISTS roster (
			id           String,
			name         String,
			team         LowCardinality(String),
			last_updated DateTime64(3, 'UTC')
		) ENGINE = MergeTree()
		ORDER BY (last_updated, name)
		TTL toDateTime(last_updated) + INTERVAL 30 DAY`,
	}
}
