package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/airline/internal/domain"
)

type PlaneRepository interface {
	List(ctx context.Context) ([]domain.Plane, error)
	GetByID(ctx context.Context, id int64) (*domain.Plane, error)
	Create(ctx context.Context, plane *domain.Plane) error
	Delete(ctx context.Context, id int64) error
}

const (
	queryListPlanes  = `SELECT id, name, category, seats_count, created_at, updated_at FROM planes ORDER BY id`
	queryPlaneByID   = `SELECT id, name, category, seats_count, created_at, updated_at FROM planes WHERE id = $1`
	queryInsertPlane = `INSERT INTO planes (name, category, seats_count) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`
	queryDeletePlane = `DELETE FROM planes WHERE id = $1`
)

type PGPlaneRepository struct {
	db DBConn
}

func NewPlaneRepository(db DBConn) PlaneRepository {
	return &PGPlaneRepository{db: db}
}

func (r *PGPlaneRepository) List(ctx context.Context) ([]domain.Plane, error) {
	rows, err := conn(ctx, r.db).Query(ctx, queryListPlanes)
	if err != nil {
		return nil, translateError(err, nil)
	}
	defer rows.Close()

	planes := make([]domain.Plane, 0)
	for rows.Next() {
		var p domain.Plane
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.SeatsCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		planes = append(planes, p)
	}
	return planes, translateError(rows.Err(), nil)
}

func (r *PGPlaneRepository) GetByID(ctx context.Context, id int64) (*domain.Plane, error) {
	var p domain.Plane
	err := conn(ctx, r.db).QueryRow(ctx, queryPlaneByID, id).
		Scan(&p.ID, &p.Name, &p.Category, &p.SeatsCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, translateError(err, domain.ErrPlaneNotFound)
	}
	return &p, nil
}

func (r *PGPlaneRepository) Create(ctx context.Context, plane *domain.Plane) error {
	err := conn(ctx, r.db).QueryRow(ctx, queryInsertPlane, plane.Name, string(plane.Category), plane.SeatsCount).
		Scan(&plane.ID, &plane.CreatedAt, &plane.UpdatedAt)
	return translateError(err, nil)
}

func (r *PGPlaneRepository) Delete(ctx context.Context, id int64) error {
	tag, err := conn(ctx, r.db).Exec(ctx, queryDeletePlane, id)
	if err != nil {
		err = translateError(err, nil)
		if errors.Is(err, domain.ErrReferentialConflict) {
			return domain.ErrPlaneInUse
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlaneNotFound
	}
	return nil
}

var _ PlaneRepository = (*PGPlaneRepository)(nil)
