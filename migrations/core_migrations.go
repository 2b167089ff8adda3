package migrations

import "gorm.io/gorm"

func GetCoreMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2025_06_01_000000_create_league_tables",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS leagues (
						id BIGSERIAL PRIMARY KEY,
						name VARCHAR(255) NOT NULL,
						slug VARCHAR(255) UNIQUE,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_leagues_deleted_at ON leagues(deleted_at);

					CREATE TABLE IF NOT EXISTS memberships (
						id BIGSERIAL PRIMARY KEY,
						league_id BIGINT NOT NULL REFERENCES leagues(id) ON DELETE CASCADE,
						player_id BIGINT NOT NULL,
						display_name VARCHAR(255),
						role VARCHAR(20) DEFAULT 'member',
						avg_rating FLOAT DEFAULT 0,
						matches_played INT DEFAULT 0,
						mvp_count INT DEFAULT 0,
						prediction_points INT DEFAULT 0,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_memberships_league_player ON memberships(league_id, player_id);
					CREATE INDEX IF NOT EXISTS idx_memberships_deleted_at ON memberships(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_memberships_avg_rating ON memberships(avg_rating);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				if err := db.Exec("DROP TABLE IF EXISTS memberships CASCADE").Error; err != nil {
					return err
				}
				return db.Exec("DROP TABLE IF EXISTS leagues CASCADE").Error
			},
		},
		{
			Name: "2025_06_01_000001_create_match_tables",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS matches (
						id BIGSERIAL PRIMARY KEY,
						league_id BIGINT NOT NULL REFERENCES leagues(id) ON DELETE CASCADE,
						is_external BOOLEAN DEFAULT FALSE,
						location VARCHAR(255),
						date_time TIMESTAMP NOT NULL,
						price_per_player FLOAT DEFAULT 0,
						status VARCHAR(20) DEFAULT 'open',
						score_a INT NULL,
						score_b INT NULL,
						mvp_id BIGINT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_matches_deleted_at ON matches(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_matches_league_id ON matches(league_id);
					CREATE INDEX IF NOT EXISTS idx_matches_status ON matches(status);
					CREATE INDEX IF NOT EXISTS idx_matches_date_time ON matches(date_time);

					CREATE TABLE IF NOT EXISTS roster_entries (
						id BIGSERIAL PRIMARY KEY,
						match_id BIGINT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
						player_id BIGINT NOT NULL,
						team VARCHAR(1) DEFAULT 'A',
						has_confirmed BOOLEAN DEFAULT FALSE,
						match_rating FLOAT NULL,
						match_pace FLOAT NULL,
						match_shot FLOAT NULL,
						match_pass FLOAT NULL,
						match_phys FLOAT NULL,
						trend FLOAT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_roster_match_player ON roster_entries(match_id, player_id);
					CREATE INDEX IF NOT EXISTS idx_roster_entries_deleted_at ON roster_entries(deleted_at);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				if err := db.Exec("DROP TABLE IF EXISTS roster_entries CASCADE").Error; err != nil {
					return err
				}
				return db.Exec("DROP TABLE IF EXISTS matches CASCADE").Error
			},
		},
		{
			Name: "2025_06_01_000002_create_vote_and_honor_tables",
			Up: func(db *gorm.DB) error {
				// The unique index on (match_id, voter_id, target_id) is the
				// real at-most-one-vote guard; same for duels(match_id).
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS votes (
						id BIGSERIAL PRIMARY KEY,
						match_id BIGINT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
						voter_id BIGINT NOT NULL,
						target_id BIGINT NOT NULL,
						overall INT NOT NULL,
						pace INT DEFAULT 0,
						shooting INT DEFAULT 0,
						passing INT DEFAULT 0,
						physical INT DEFAULT 0,
						comment VARCHAR(500),
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_votes_match_voter_target ON votes(match_id, voter_id, target_id);
					CREATE INDEX IF NOT EXISTS idx_votes_match_voter ON votes(match_id, voter_id);
					CREATE INDEX IF NOT EXISTS idx_votes_deleted_at ON votes(deleted_at);

					CREATE TABLE IF NOT EXISTS honors (
						id BIGSERIAL PRIMARY KEY,
						match_id BIGINT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
						player_id BIGINT NOT NULL,
						honor_type VARCHAR(20) NOT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_honors_match_player_type ON honors(match_id, player_id, honor_type);
					CREATE INDEX IF NOT EXISTS idx_honors_deleted_at ON honors(deleted_at);

					CREATE TABLE IF NOT EXISTS duels (
						id BIGSERIAL PRIMARY KEY,
						match_id BIGINT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
						challenger_id BIGINT NOT NULL,
						rival_id BIGINT NOT NULL,
						winner_id BIGINT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_duels_match ON duels(match_id);
					CREATE INDEX IF NOT EXISTS idx_duels_deleted_at ON duels(deleted_at);

					CREATE TABLE IF NOT EXISTS predictions (
						id BIGSERIAL PRIMARY KEY,
						match_id BIGINT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
						player_id BIGINT NOT NULL,
						points INT DEFAULT 0,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW()
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_predictions_match_player ON predictions(match_id, player_id);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				for _, table := range []string{"predictions", "duels", "honors", "votes"} {
					if err := db.Exec("DROP TABLE IF EXISTS " + table + " CASCADE").Error; err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}
