package repository // repository holds data access logic for domain entities

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/property-listing/internal/model"
)

// OwnerRepo reads owner rows.  Owners have no HTTP surface in this service;
// rows come from an external system, so the repository only needs a lookup
// for referential checks plus an insert used by tests.
type OwnerRepo struct {
	db *sql.DB // underlying connection pool
}

// NewOwnerRepo constructs an OwnerRepo with the provided DB handle.
func NewOwnerRepo(db *sql.DB) *OwnerRepo {
	return &OwnerRepo{db: db}
}

// GetByID fetches an owner by id.  It returns ErrOwnerNotFound when no row
// matches, which the service layer surfaces before writing any dependent row.
func (r *OwnerRepo) GetByID(ctx context.Context, id uint64) (*model.Owner, error) {
	const q = `SELECT id, name, address, photo, birthday, created_at FROM owners WHERE id = ?`
	var o model.Owner
	if err := r.db.QueryRowContext(ctx, q, id).
		Scan(&o.ID, &o.Name, &o.Address, &o.Photo, &o.Birthday, &o.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}
	return &o, nil
}

// Create inserts an owner row and populates the generated id.  Used by
// tests; not reachable from any HTTP route.
func (r *OwnerRepo) Create(ctx context.Context, o *model.Owner) error {
	const q = `INSERT INTO owners (name, address, photo, birthday) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, o.Name, o.Address, o.Photo, o.Birthday)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	return nil
}
