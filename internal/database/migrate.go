package database

import (
	"context"
	"database/sql"
)

// schema holds the DDL for all tables, executed in dependency order.
// Reservations carry a UNIQUE code and a composite index on
// (venue_id, date, status) so the FOR UPDATE conflict re-check inside
// the creation transaction locks a narrow row range.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		email         VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role          VARCHAR(16)  NOT NULL DEFAULT 'CUSTOMER',
		is_active     TINYINT(1)   NOT NULL DEFAULT 1,
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL UNIQUE,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_refresh_user FOREIGN KEY (user_id) REFERENCES users(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS venue_types (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name        VARCHAR(100) NOT NULL UNIQUE,
		description TEXT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS venues (
		id                 BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		venue_type_id      BIGINT UNSIGNED NOT NULL,
		name               VARCHAR(150) NOT NULL,
		description        TEXT NULL,
		base_price_weekday BIGINT NOT NULL,
		base_price_weekend BIGINT NULL,
		is_active          TINYINT(1) NOT NULL DEFAULT 1,
		created_at         TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at         TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		CONSTRAINT fk_venue_type FOREIGN KEY (venue_type_id) REFERENCES venue_types(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS time_slots (
		id                       BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		venue_id                 BIGINT UNSIGNED NOT NULL,
		start_time               TIME NOT NULL,
		end_time                 TIME NOT NULL,
		price_multiplier_weekday DECIMAL(5,2) NOT NULL DEFAULT 1.00,
		price_multiplier_weekend DECIMAL(5,2) NOT NULL DEFAULT 1.00,
		is_active                TINYINT(1) NOT NULL DEFAULT 1,
		created_at               TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at               TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		CONSTRAINT fk_slot_venue FOREIGN KEY (venue_id) REFERENCES venues(id),
		INDEX idx_slot_venue (venue_id, start_time)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS reservations (
		id                  BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		code                VARCHAR(24) NOT NULL UNIQUE,
		user_id             BIGINT UNSIGNED NOT NULL,
		venue_id            BIGINT UNSIGNED NOT NULL,
		time_slot_id        BIGINT UNSIGNED NOT NULL,
		date                DATE NOT NULL,
		start_time          TIME NOT NULL,
		end_time            TIME NOT NULL,
		duration_hours      DECIMAL(5,2) NOT NULL,
		status              ENUM('pending','confirmed','cancelled','completed') NOT NULL DEFAULT 'pending',
		base_price          BIGINT NOT NULL,
		discount_percentage DECIMAL(5,2) NOT NULL DEFAULT 0,
		total_price         BIGINT NOT NULL,
		notes               TEXT NULL,
		created_at          TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at          TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		CONSTRAINT fk_res_user FOREIGN KEY (user_id) REFERENCES users(id),
		CONSTRAINT fk_res_venue FOREIGN KEY (venue_id) REFERENCES venues(id),
		CONSTRAINT fk_res_slot FOREIGN KEY (time_slot_id) REFERENCES time_slots(id),
		INDEX idx_res_conflict (venue_id, date, status)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates all tables when they do not exist yet.  It is
// idempotent and safe to run at every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
