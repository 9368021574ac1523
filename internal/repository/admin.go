package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Rahulelano/events-backend/internal/model"
)

// AdminRepository handles persistence for admin accounts and the
// dashboard aggregates.
type AdminRepository struct {
	db DB
}

// NewAdminRepository constructs an AdminRepository.
func NewAdminRepository(db DB) *AdminRepository {
	return &AdminRepository{db: db}
}

const adminColumns = `id, email, password_hash, name, role, is_active, last_login, created_at`

func scanAdmin(row pgx.Row) (*model.AdminUser, error) {
	var a model.AdminUser
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.Role, &a.IsActive, &a.LastLogin, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByEmail returns an active admin account or ErrNotFound. Deactivated
// accounts are invisible here so they cannot log in.
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	admin, err := scanAdmin(r.db.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admin_users WHERE email = $1 AND is_active = TRUE`,
		email,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get admin by email: %w", err)
	}
	return admin, nil
}

// GetByID returns an admin account regardless of its active flag; callers
// verifying tokens check IsActive themselves so a deactivated account is
// distinguishable from a missing one.
func (r *AdminRepository) GetByID(ctx context.Context, id string) (*model.AdminUser, error) {
	admin, err := scanAdmin(r.db.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admin_users WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get admin by id: %w", err)
	}
	return admin, nil
}

// UpdateLastLogin stamps the account's last successful login.
func (r *AdminRepository) UpdateLastLogin(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE admin_users SET last_login = $1 WHERE id = $2`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// DashboardStats aggregates portal activity: totals over active events and
// confirmed bookings, per-category breakdowns, and the ten most recent
// bookings.
func (r *AdminRepository) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	var stats model.DashboardStats

	err := r.db.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM events WHERE status = 'active'),
			(SELECT COUNT(*) FROM bookings WHERE status = 'confirmed'),
			(SELECT COALESCE(SUM(total_amount), 0) FROM bookings WHERE status = 'confirmed'),
			(SELECT COUNT(*) FROM events WHERE status = 'active' AND date >= CURRENT_DATE)`,
	).Scan(&stats.TotalEvents, &stats.TotalBookings, &stats.TotalRevenue, &stats.UpcomingEvents)
	if err != nil {
		return nil, fmt.Errorf("dashboard totals: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT c.name, c.color,
		        COUNT(DISTINCT e.id) FILTER (WHERE e.status = 'active'),
		        COUNT(b.id) FILTER (WHERE b.status = 'confirmed')
		 FROM categories c
		 LEFT JOIN events e ON e.category_id = c.id
		 LEFT JOIN bookings b ON b.event_id = e.id
		 GROUP BY c.id
		 ORDER BY c.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard category stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s model.CategoryStat
		if err := rows.Scan(&s.Name, &s.Color, &s.EventCount, &s.TotalBookings); err != nil {
			return nil, fmt.Errorf("scan category stat: %w", err)
		}
		stats.CategoryStats = append(stats.CategoryStats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dashboard category stats: %w", err)
	}

	recent, err := NewBookingRepository(r.db).List(ctx, "", 10, 0)
	if err != nil {
		return nil, fmt.Errorf("dashboard recent bookings: %w", err)
	}
	stats.RecentBookings = recent

	return &stats, nil
}
