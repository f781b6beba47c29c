package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jonathan/admissions-advisor/internal/store"
	"github.com/jonathan/admissions-advisor/internal/types"
	"golang.org/x/sync/errgroup"
)

var _ store.ProfileStore = (*DB)(nil)

// foreignKeyViolation is the SQLSTATE raised when a sub-record references a missing profile.
const foreignKeyViolation = "23503"

// CreateProfile inserts an empty profile.
func (db *DB) CreateProfile(ctx context.Context, name string) (*types.StudentProfile, error) {
	var p types.StudentProfile
	err := db.pool.QueryRow(ctx,
		`INSERT INTO student_profiles (name) VALUES ($1)
		 RETURNING id, name, created_at, updated_at`,
		name,
	).Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return &p, nil
}

// GetProfile loads a profile snapshot. The six sub-record tables are read
// concurrently; the result is nil, nil when the profile does not exist.
func (db *DB) GetProfile(ctx context.Context, id uuid.UUID) (*types.StudentProfile, error) {
	var p types.StudentProfile
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM student_profiles WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Each goroutine writes a distinct field of p.
	g.Go(func() error {
		a, err := db.getAcademics(gCtx, id)
		p.Academics = a
		return err
	})
	g.Go(func() error {
		t, err := db.getTesting(gCtx, id)
		p.Testing = t
		return err
	})
	g.Go(func() error {
		a, err := db.listActivities(gCtx, id)
		p.Activities = a
		return err
	})
	g.Go(func() error {
		a, err := db.listAwards(gCtx, id)
		p.Awards = a
		return err
	})
	g.Go(func() error {
		s, err := db.listSchools(gCtx, id)
		p.Schools = s
		return err
	})
	g.Go(func() error {
		gl, err := db.listGoals(gCtx, id)
		p.Goals = gl
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProfile deletes a profile and all of its records (via cascade).
func (db *DB) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM student_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return store.ErrProfileNotFound
	}
	return nil
}

// SaveAcademics replaces the academics section.
func (db *DB) SaveAcademics(ctx context.Context, profileID uuid.UUID, a types.Academics) error {
	return db.inProfileTx(ctx, profileID, "academics", func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO profile_academics (profile_id, gpa_unweighted, gpa_weighted, class_rank)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (profile_id) DO UPDATE SET
			     gpa_unweighted = $2,
			     gpa_weighted = $3,
			     class_rank = $4`,
			profileID, a.GPAUnweighted, a.GPAWeighted, a.ClassRank,
		)
		return err
	})
}

// SaveTesting replaces the testing section.
func (db *DB) SaveTesting(ctx context.Context, profileID uuid.UUID, t types.Testing) error {
	return db.inProfileTx(ctx, profileID, "testing", func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO profile_testing (profile_id, sat_total, act_composite)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (profile_id) DO UPDATE SET
			     sat_total = $2,
			     act_composite = $3`,
			profileID, t.SATTotal, t.ACTComposite,
		)
		return err
	})
}

// MergeAcademics writes the non-nil fields of a and keeps the stored value of the rest.
func (db *DB) MergeAcademics(ctx context.Context, profileID uuid.UUID, a types.Academics) (*types.Academics, error) {
	var merged types.Academics
	err := db.inProfileTx(ctx, profileID, "academics", func(tx pgx.Tx) error {
		return tx.QueryRow(ctx,
			`INSERT INTO profile_academics (profile_id, gpa_unweighted, gpa_weighted, class_rank)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (profile_id) DO UPDATE SET
			     gpa_unweighted = COALESCE(EXCLUDED.gpa_unweighted, profile_academics.gpa_unweighted),
			     gpa_weighted = COALESCE(EXCLUDED.gpa_weighted, profile_academics.gpa_weighted),
			     class_rank = COALESCE(EXCLUDED.class_rank, profile_academics.class_rank)
			 RETURNING gpa_unweighted, gpa_weighted, class_rank`,
			profileID, a.GPAUnweighted, a.GPAWeighted, a.ClassRank,
		).Scan(&merged.GPAUnweighted, &merged.GPAWeighted, &merged.ClassRank)
	})
	if err != nil {
		return nil, err
	}
	return &merged, nil
}

// MergeTesting writes the non-nil scores in t and keeps the stored value of the rest.
func (db *DB) MergeTesting(ctx context.Context, profileID uuid.UUID, t types.Testing) (*types.Testing, error) {
	var merged types.Testing
	err := db.inProfileTx(ctx, profileID, "testing", func(tx pgx.Tx) error {
		return tx.QueryRow(ctx,
			`INSERT INTO profile_testing (profile_id, sat_total, act_composite)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (profile_id) DO UPDATE SET
			     sat_total = COALESCE(EXCLUDED.sat_total, profile_testing.sat_total),
			     act_composite = COALESCE(EXCLUDED.act_composite, profile_testing.act_composite)
			 RETURNING sat_total, act_composite`,
			profileID, t.SATTotal, t.ACTComposite,
		).Scan(&merged.SATTotal, &merged.ACTComposite)
	})
	if err != nil {
		return nil, err
	}
	return &merged, nil
}

// inProfileTx touches the profile's updated_at and runs fn in the same transaction.
// The touch locks the profile row, so concurrent section writes for one profile are serialised.
func (db *DB) inProfileTx(ctx context.Context, profileID uuid.UUID, section string, fn func(tx pgx.Tx) error) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	result, err := tx.Exec(ctx, `UPDATE student_profiles SET updated_at = NOW() WHERE id = $1`, profileID)
	if err != nil {
		return fmt.Errorf("failed to touch profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return store.ErrProfileNotFound
	}

	if err := fn(tx); err != nil {
		return fmt.Errorf("failed to save %s: %w", section, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit %s: %w", section, err)
	}
	return nil
}

// CreateActivity inserts an activity.
func (db *DB) CreateActivity(ctx context.Context, profileID uuid.UUID, a types.Activity) (*types.Activity, error) {
	err := db.pool.QueryRow(ctx,
		`INSERT INTO profile_activities (profile_id, title, is_leadership)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		profileID, a.Title, a.IsLeadership,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return nil, insertError("activity", err)
	}
	db.touch(ctx, profileID)
	return &a, nil
}

// CreateAward inserts an award.
func (db *DB) CreateAward(ctx context.Context, profileID uuid.UUID, a types.Award) (*types.Award, error) {
	err := db.pool.QueryRow(ctx,
		`INSERT INTO profile_awards (profile_id, title, level)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		profileID, a.Title, string(a.Level),
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return nil, insertError("award", err)
	}
	db.touch(ctx, profileID)
	return &a, nil
}

// CreateSchool inserts a school interest.
func (db *DB) CreateSchool(ctx context.Context, profileID uuid.UUID, s types.SchoolInterest) (*types.SchoolInterest, error) {
	if s.Tier == "" {
		s.Tier = types.TierUnknown
	}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO profile_schools (profile_id, name, tier)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		profileID, s.Name, string(s.Tier),
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return nil, insertError("school", err)
	}
	db.touch(ctx, profileID)
	return &s, nil
}

// CreateGoal inserts a goal. An empty status is stored as not_started.
func (db *DB) CreateGoal(ctx context.Context, profileID uuid.UUID, g types.Goal) (*types.Goal, error) {
	if g.Status == "" {
		g.Status = types.GoalNotStarted
	}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO profile_goals (profile_id, title, category, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		profileID, g.Title, string(g.Category), string(g.Status),
	).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return nil, insertError("goal", err)
	}
	db.touch(ctx, profileID)
	return &g, nil
}

// touch bumps updated_at after a sub-record insert. It is best effort; the insert already succeeded.
func (db *DB) touch(ctx context.Context, profileID uuid.UUID) {
	_, _ = db.pool.Exec(ctx, `UPDATE student_profiles SET updated_at = NOW() WHERE id = $1`, profileID)
}

// insertError maps a foreign key violation to store.ErrProfileNotFound.
func insertError(record string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return store.ErrProfileNotFound
	}
	return fmt.Errorf("failed to create %s: %w", record, err)
}

func (db *DB) getAcademics(ctx context.Context, profileID uuid.UUID) (*types.Academics, error) {
	var a types.Academics
	err := db.pool.QueryRow(ctx,
		`SELECT gpa_unweighted, gpa_weighted, class_rank FROM profile_academics WHERE profile_id = $1`,
		profileID,
	).Scan(&a.GPAUnweighted, &a.GPAWeighted, &a.ClassRank)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get academics: %w", err)
	}
	return &a, nil
}

func (db *DB) getTesting(ctx context.Context, profileID uuid.UUID) (*types.Testing, error) {
	var t types.Testing
	err := db.pool.QueryRow(ctx,
		`SELECT sat_total, act_composite FROM profile_testing WHERE profile_id = $1`,
		profileID,
	).Scan(&t.SATTotal, &t.ACTComposite)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get testing: %w", err)
	}
	return &t, nil
}

func (db *DB) listActivities(ctx context.Context, profileID uuid.UUID) ([]types.Activity, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, is_leadership, created_at FROM profile_activities
		 WHERE profile_id = $1 ORDER BY created_at, id`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var out []types.Activity
	for rows.Next() {
		var a types.Activity
		if err := rows.Scan(&a.ID, &a.Title, &a.IsLeadership, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (db *DB) listAwards(ctx context.Context, profileID uuid.UUID) ([]types.Award, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, level, created_at FROM profile_awards
		 WHERE profile_id = $1 ORDER BY created_at, id`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list awards: %w", err)
	}
	defer rows.Close()

	var out []types.Award
	for rows.Next() {
		var a types.Award
		var level string
		if err := rows.Scan(&a.ID, &a.Title, &level, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan award: %w", err)
		}
		a.Level = types.AwardLevel(level)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (db *DB) listSchools(ctx context.Context, profileID uuid.UUID) ([]types.SchoolInterest, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, tier, created_at FROM profile_schools
		 WHERE profile_id = $1 ORDER BY created_at, id`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list schools: %w", err)
	}
	defer rows.Close()

	var out []types.SchoolInterest
	for rows.Next() {
		var s types.SchoolInterest
		var tier string
		if err := rows.Scan(&s.ID, &s.Name, &tier, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan school: %w", err)
		}
		s.Tier = types.Tier(tier)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (db *DB) listGoals(ctx context.Context, profileID uuid.UUID) ([]types.Goal, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, category, status, created_at FROM profile_goals
		 WHERE profile_id = $1 ORDER BY created_at, id`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var out []types.Goal
	for rows.Next() {
		var g types.Goal
		var category, status string
		if err := rows.Scan(&g.ID, &g.Title, &category, &status, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		g.Category = types.GoalCategory(category)
		g.Status = types.GoalStatus(status)
		out = append(out, g)
	}
	return out, rows.Err()
}
