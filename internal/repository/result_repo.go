package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"persona-quiz/internal/domain"
)

// ResultRepository persiste resultados de tests. Los listados van del mas
// reciente al mas viejo, desempatando por orden de insercion.
type ResultRepository interface {
	Create(ctx context.Context, result domain.TestResult) (domain.TestResult, error)
	GetByID(ctx context.Context, id string) (domain.TestResult, error)
	FindRecentByOwner(ctx context.Context, userID string, limit int) ([]domain.TestResult, error)
	UpdateNotes(ctx context.Context, id, notes string, updatedAt time.Time) error
}

type PgResultRepository struct {
	pool *pgxpool.Pool
}

func NewPgResultRepository(pool *pgxpool.Pool) *PgResultRepository {
	return &PgResultRepository{pool: pool}
}

const resultColumns = `id, user_id, personality_type, scores, description, notes, change_from_previous, seq, created_at, updated_at`

func (r *PgResultRepository) Create(ctx context.Context, result domain.TestResult) (domain.TestResult, error) {
	const query = `
		INSERT INTO test_results (id, user_id, personality_type, scores, description, notes, change_from_previous, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING seq
	`
	if result.ChangeFromPrevious == nil {
		result.ChangeFromPrevious = domain.ScoreDelta{}
	}
	err := r.pool.QueryRow(ctx, query,
		result.ID,
		result.UserID,
		string(result.PersonalityType),
		map[string]int(result.Scores),
		result.Description,
		result.Notes,
		map[string]int(result.ChangeFromPrevious),
		result.CreatedAt,
		result.UpdatedAt,
	).Scan(&result.Seq)
	if err != nil {
		return domain.TestResult{}, err
	}
	return result, nil
}

func (r *PgResultRepository) GetByID(ctx context.Context, id string) (domain.TestResult, error) {
	query := `SELECT ` + resultColumns + ` FROM test_results WHERE id = $1`
	return scanResult(r.pool.QueryRow(ctx, query, id))
}

func (r *PgResultRepository) FindRecentByOwner(ctx context.Context, userID string, limit int) ([]domain.TestResult, error) {
	query := `
		SELECT ` + resultColumns + `
		FROM test_results
		WHERE user_id = $1
		ORDER BY created_at DESC, seq DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.TestResult
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *PgResultRepository) UpdateNotes(ctx context.Context, id, notes string, updatedAt time.Time) error {
	const query = `UPDATE test_results SET notes = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, notes, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanResult(row pgx.Row) (domain.TestResult, error) {
	var (
		res            domain.TestResult
		personality    string
		scores, change map[string]int
	)
	if err := row.Scan(
		&res.ID,
		&res.UserID,
		&personality,
		&scores,
		&res.Description,
		&res.Notes,
		&change,
		&res.Seq,
		&res.CreatedAt,
		&res.UpdatedAt,
	); err != nil {
		return domain.TestResult{}, err
	}
	res.PersonalityType = domain.PersonalityType(personality)
	res.Scores = domain.ScoreVector(scores).Clone()
	res.ChangeFromPrevious = domain.ScoreDelta(change)
	if res.ChangeFromPrevious == nil {
		res.ChangeFromPrevious = domain.ScoreDelta{}
	}
	return res, nil
}
