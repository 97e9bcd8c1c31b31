package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/xiaot623/neuralthreads/internal/domain"
)

const (
	defaultDesignerLimit = 50
	maxDesignerLimit     = 100
)

// UpsertCustomerProfile inserts or replaces the measurements of a customer.
func (s *SQLStore) UpsertCustomerProfile(ctx context.Context, p *domain.CustomerProfile) (*domain.CustomerProfile, error) {
	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO profile_measurements (user_id, height, weight, age, chest, waist, hip, inseam, shoe_size, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
			height = excluded.height,
			weight = excluded.weight,
			age = excluded.age,
			chest = excluded.chest,
			waist = excluded.waist,
			hip = excluded.hip,
			inseam = excluded.inseam,
			shoe_size = excluded.shoe_size,
			updated_at = excluded.updated_at`),
		p.UserID, p.Height, p.Weight, p.Age,
		nullFloat(p.Chest), nullFloat(p.Waist), nullFloat(p.Hip), nullFloat(p.Inseam), nullFloat(p.ShoeSize),
		p.UpdatedAt.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to upsert customer profile: %w", err)
	}
	return s.GetCustomerProfile(ctx, p.UserID)
}

// GetCustomerProfile returns nil when the user has no measurements.
func (s *SQLStore) GetCustomerProfile(ctx context.Context, userID string) (*domain.CustomerProfile, error) {
	var p domain.CustomerProfile
	var chest, waist, hip, inseam, shoe sql.NullFloat64
	err := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT user_id, height, weight, age, chest, waist, hip, inseam, shoe_size, updated_at
		 FROM profile_measurements WHERE user_id = ?`), userID).
		Scan(&p.UserID, &p.Height, &p.Weight, &p.Age, &chest, &waist, &hip, &inseam, &shoe, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Chest, p.Waist, p.Hip = floatPtr(chest), floatPtr(waist), floatPtr(hip)
	p.Inseam, p.ShoeSize = floatPtr(inseam), floatPtr(shoe)
	return &p, nil
}

// UpsertDesignerProfile inserts or replaces a designer directory entry.
func (s *SQLStore) UpsertDesignerProfile(ctx context.Context, p *domain.DesignerProfile) (*domain.DesignerProfile, error) {
	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO designer_profiles (user_id, height, weight, age, specialization, experience, location, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
			height = excluded.height,
			weight = excluded.weight,
			age = excluded.age,
			specialization = excluded.specialization,
			experience = excluded.experience,
			location = excluded.location,
			updated_at = excluded.updated_at`),
		p.UserID, p.Height, p.Weight, p.Age,
		nullString(p.Specialization), nullString(p.Experience), nullString(p.Location),
		p.UpdatedAt.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to upsert designer profile: %w", err)
	}
	return s.GetDesignerProfile(ctx, p.UserID)
}

const designerColumns = `user_id, height, weight, age, specialization, experience, location, updated_at`

// GetDesignerProfile returns nil when the designer has no profile.
func (s *SQLStore) GetDesignerProfile(ctx context.Context, userID string) (*domain.DesignerProfile, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT `+designerColumns+` FROM designer_profiles WHERE user_id = ?`), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	designers, err := scanDesigners(rows)
	if err != nil || len(designers) == 0 {
		return nil, err
	}
	return &designers[0], nil
}

// SearchDesigners lists designers matching filter, most recently updated first.
// Query matches specialization, experience or location; the other fields
// match their own column. All matching is case-insensitive substring.
func (s *SQLStore) SearchDesigners(ctx context.Context, filter domain.DesignerFilter) ([]domain.DesignerProfile, error) {
	var where []string
	var args []any

	if q := strings.TrimSpace(filter.Query); q != "" {
		like := likePattern(q)
		where = append(where, `(LOWER(COALESCE(specialization, '')) LIKE ? ESCAPE '\' OR LOWER(COALESCE(experience, '')) LIKE ? ESCAPE '\' OR LOWER(COALESCE(location, '')) LIKE ? ESCAPE '\')`)
		args = append(args, like, like, like)
	}
	if loc := strings.TrimSpace(filter.Location); loc != "" {
		where = append(where, `LOWER(COALESCE(location, '')) LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(loc))
	}
	if spec := strings.TrimSpace(filter.Specialization); spec != "" {
		where = append(where, `LOWER(COALESCE(specialization, '')) LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(spec))
	}

	query := `SELECT ` + designerColumns + ` FROM designer_profiles`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY updated_at DESC LIMIT ?`

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultDesignerLimit
	}
	if limit > maxDesignerLimit {
		limit = maxDesignerLimit
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search designers: %w", err)
	}
	defer rows.Close()
	return scanDesigners(rows)
}

func scanDesigners(rows *sql.Rows) ([]domain.DesignerProfile, error) {
	var out []domain.DesignerProfile
	for rows.Next() {
		var p domain.DesignerProfile
		var spec, exp, loc sql.NullString
		if err := rows.Scan(&p.UserID, &p.Height, &p.Weight, &p.Age, &spec, &exp, &loc, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Specialization, p.Experience, p.Location = spec.String, exp.String, loc.String
		out = append(out, p)
	}
	return out, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern lower-cases term and wraps it for a substring match, escaping
// LIKE wildcards so they match literally.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}
