package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/Kamduis/name-combo/internal/person/models"
	"github.com/Kamduis/name-combo/pkg/domain"
	"github.com/Kamduis/name-combo/pkg/person"
	"github.com/Kamduis/name-combo/pkg/platform/sentinel"
	"github.com/Kamduis/name-combo/pkg/platform/tx"
)

// Postgres persists Person aggregates in PostgreSQL.
//
// Expected schema:
//
//	CREATE TABLE persons (
//		id UUID PRIMARY KEY,
//		title TEXT NOT NULL DEFAULT '',
//		given_names TEXT[] NOT NULL,
//		family_name TEXT NOT NULL DEFAULT '',
//		suffix TEXT NOT NULL DEFAULT '',
//		gender TEXT NOT NULL DEFAULT 'undefined',
//		created_at TIMESTAMPTZ NOT NULL,
//		updated_at TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX persons_family_name_idx ON persons (LOWER(family_name));
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// executor abstracts *sql.DB and *sql.Tx so queries can join a transaction
// carried in the context.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Postgres) exec(ctx context.Context) executor {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

const personColumns = `id, title, given_names, family_name, suffix, gender, created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, p *models.Person) error {
	query := `
		INSERT INTO persons (` + personColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.exec(ctx).ExecContext(ctx, query,
		p.ID.String(),
		p.Name.Title(),
		pq.Array(p.Name.GivenNames()),
		p.Name.FamilyName(),
		p.Name.Suffix(),
		p.Gender.String(),
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create person: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id domain.PersonID) (*models.Person, error) {
	row := s.exec(ctx).QueryRowContext(ctx,
		`SELECT `+personColumns+` FROM persons WHERE id = $1`, id.String())
	p, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find person: %w", err)
	}
	return p, nil
}

func (s *Postgres) FindByFamilyName(ctx context.Context, familyName string) ([]*models.Person, error) {
	rows, err := s.exec(ctx).QueryContext(ctx,
		`SELECT `+personColumns+` FROM persons
		 WHERE LOWER(family_name) = LOWER($1)
		 ORDER BY created_at, id`, familyName)
	if err != nil {
		return nil, fmt.Errorf("find persons by family name: %w", err)
	}
	defer rows.Close()

	var out []*models.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate persons: %w", err)
	}
	return out, nil
}

// Execute locks the row with SELECT ... FOR UPDATE, runs validate and apply,
// and persists the result in the same transaction.
func (s *Postgres) Execute(ctx context.Context, id domain.PersonID, validate func(*models.Person) error, apply func(*models.Person)) (*models.Person, error) {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = sqlTx.Rollback() }()

	row := sqlTx.QueryRowContext(ctx,
		`SELECT `+personColumns+` FROM persons WHERE id = $1 FOR UPDATE`, id.String())
	p, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("lock person: %w", err)
	}

	if err := validate(p); err != nil {
		return nil, err
	}
	apply(p)

	_, err = sqlTx.ExecContext(ctx, `
		UPDATE persons
		SET title = $2, given_names = $3, family_name = $4, suffix = $5,
		    gender = $6, updated_at = $7
		WHERE id = $1`,
		p.ID.String(),
		p.Name.Title(),
		pq.Array(p.Name.GivenNames()),
		p.Name.FamilyName(),
		p.Name.Suffix(),
		p.Gender.String(),
		p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update person: %w", err)
	}
	if err := sqlTx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return p, nil
}

func (s *Postgres) Delete(ctx context.Context, id domain.PersonID) error {
	res, err := s.exec(ctx).ExecContext(ctx, `DELETE FROM persons WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.exec(ctx).QueryRowContext(ctx, `SELECT COUNT(*) FROM persons`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count persons: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner) (*models.Person, error) {
	var (
		rawID      string
		title      string
		givens     pq.StringArray
		familyName string
		suffix     string
		gender     string
		createdAt  time.Time
		updatedAt  time.Time
	)
	if err := row.Scan(&rawID, &title, &givens, &familyName, &suffix, &gender, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	id, err := domain.ParsePersonID(rawID)
	if err != nil {
		return nil, fmt.Errorf("stored person id %q: %w", rawID, err)
	}
	name, err := person.New(givens, familyName,
		person.WithTitle(title), person.WithSuffix(suffix), person.AllowEmptyFamilyName())
	if err != nil {
		return nil, fmt.Errorf("stored name for person %s: %w", rawID, err)
	}
	g, err := person.ParseGender(gender)
	if err != nil {
		return nil, fmt.Errorf("stored gender for person %s: %w", rawID, err)
	}

	return &models.Person{
		ID:        id,
		Name:      name,
		Gender:    g,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
