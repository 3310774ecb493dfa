package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/schoolist/schoolist/internal/pkg/goerror"
	"github.com/schoolist/schoolist/internal/school/entity"
)

const listSchoolsSQL = `
SELECT id, name, address, city, state, contact, image, email_id
FROM schools
ORDER BY id`

const createSchoolSQL = `
INSERT INTO schools (id, name, address, city, state, contact, image, email_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const seedSchoolSQL = `
INSERT INTO schools (id, name, address, city, state, contact, image, email_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO NOTHING`

const deleteSchoolSQL = `
DELETE FROM schools WHERE id = $1`

func (s *DB) ListSchools(ctx context.Context) (_ []entity.School, err error) {
	ctx, span := s.startSpan(ctx, "ListSchools")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, listSchoolsSQL)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}
	defer rows.Close()

	var schools []entity.School
	for rows.Next() {
		var sc entity.School
		if err = rows.Scan(&sc.ID, &sc.Name, &sc.Address, &sc.City, &sc.State, &sc.Contact, &sc.Image, &sc.EmailID); err != nil {
			err = s.mapError(err)
			return nil, err
		}
		schools = append(schools, sc)
	}
	if err = rows.Err(); err != nil {
		err = s.mapError(err)
		return nil, err
	}

	return schools, nil
}

func (s *DB) CreateSchool(ctx context.Context, school entity.School) (err error) {
	ctx, span := s.startSpan(ctx, "CreateSchool")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, createSchoolSQL,
		school.ID, school.Name, school.Address, school.City,
		school.State, school.Contact, school.Image, school.EmailID,
	)
	err = s.mapError(err)
	return err
}

// SeedSchools inserts the starter rows in one transaction, skipping ids that
// already exist so concurrent first reads cannot duplicate the seed.
func (s *DB) SeedSchools(ctx context.Context, schools []entity.School) (err error) {
	ctx, span := s.startSpan(ctx, "SeedSchools")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	for _, sc := range schools {
		if _, err = tx.Exec(ctx, seedSchoolSQL,
			sc.ID, sc.Name, sc.Address, sc.City,
			sc.State, sc.Contact, sc.Image, sc.EmailID,
		); err != nil {
			err = s.mapError(err)
			return err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		err = s.mapError(err)
		return err
	}

	return nil
}

func (s *DB) DeleteSchool(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteSchool")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, deleteSchoolSQL, id)
	if err != nil {
		err = s.mapError(err)
		return err
	}

	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}
