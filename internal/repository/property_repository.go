package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/property-listing/internal/model"
)

// PropertyRepo encapsulates every query touching properties and their
// dependent image and trace rows.  Writes that must stay consistent with a
// trace entry (create, full update) run inside a single transaction so a
// failed trace insert never leaves a property without its audit row.
type PropertyRepo struct {
	db *sql.DB // underlying connection pool
}

// NewPropertyRepo constructs a PropertyRepo with the given DB handle.
func NewPropertyRepo(db *sql.DB) *PropertyRepo {
	return &PropertyRepo{db: db}
}

// ExistsByName reports whether a property with exactly this name exists.
// The comparison is case sensitive regardless of column collation, which is
// why the parameter is forced to BINARY.
func (r *PropertyRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM properties WHERE name = BINARY ?)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, name).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// GetByID fetches a property by id.  Returns ErrPropertyNotFound when no
// row matches.
func (r *PropertyRepo) GetByID(ctx context.Context, id uint64) (*model.Property, error) {
	const q = `SELECT id, name, address, price, code_internal, year, owner_id, created_at, updated_at
	           FROM properties WHERE id = ?`
	var p model.Property
	if err := r.db.QueryRowContext(ctx, q, id).
		Scan(&p.ID, &p.Name, &p.Address, &p.Price, &p.CodeInternal, &p.Year, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &p, nil
}

// CreateWithTrace inserts a property and its first trace row in one
// transaction.  On success the property's ID and timestamps are populated
// from the database and the trace carries the generated property id.
func (r *PropertyRepo) CreateWithTrace(ctx context.Context, p *model.Property, t *model.PropertyTrace) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const qInsert = `INSERT INTO properties (name, address, price, code_internal, year, owner_id)
	                 VALUES (?, ?, ?, ?, ?, ?)`
	var res sql.Result
	res, err = tx.ExecContext(ctx, qInsert, p.Name, p.Address, p.Price, p.CodeInternal, p.Year, p.OwnerID)
	if err != nil {
		return err
	}
	var id int64
	id, err = res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)

	// Read the row back so callers receive the DB-generated timestamps.
	const qSelect = `SELECT created_at, updated_at FROM properties WHERE id = ?`
	if err = tx.QueryRowContext(ctx, qSelect, p.ID).Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return err
	}

	t.PropertyID = p.ID
	const qTrace = `INSERT INTO property_traces (property_id, date_sale, name, value, tax)
	                VALUES (?, ?, ?, ?, ?)`
	res, err = tx.ExecContext(ctx, qTrace, t.PropertyID, t.DateSale, t.Name, t.Value, t.Tax)
	if err != nil {
		return err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)

	err = tx.Commit()
	return err
}

// UpdateWithTrace overwrites every mutable property field and appends one
// trace row, atomically.  The caller is expected to have resolved the
// property and the new owner beforehand.
func (r *PropertyRepo) UpdateWithTrace(ctx context.Context, p *model.Property, t *model.PropertyTrace) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const qUpdate = `UPDATE properties
	                 SET name = ?, address = ?, price = ?, code_internal = ?, year = ?, owner_id = ?,
	                     updated_at = CURRENT_TIMESTAMP
	                 WHERE id = ?`
	if _, err = tx.ExecContext(ctx, qUpdate,
		p.Name, p.Address, p.Price, p.CodeInternal, p.Year, p.OwnerID, p.ID); err != nil {
		return err
	}

	t.PropertyID = p.ID
	const qTrace = `INSERT INTO property_traces (property_id, date_sale, name, value, tax)
	                VALUES (?, ?, ?, ?, ?)`
	var res sql.Result
	res, err = tx.ExecContext(ctx, qTrace, t.PropertyID, t.DateSale, t.Name, t.Value, t.Tax)
	if err != nil {
		return err
	}
	var id int64
	id, err = res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)

	err = tx.Commit()
	return err
}

// UpdatePrice overwrites the price column only.  No trace row is written
// here: price changes are deliberately unaudited, unlike full updates.
func (r *PropertyRepo) UpdatePrice(ctx context.Context, id uint64, price float64) error {
	const q = `UPDATE properties SET price = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, price, id)
	return err
}

// AddImage inserts an image row for a property and populates its id.
func (r *PropertyRepo) AddImage(ctx context.Context, img *model.PropertyImage) error {
	const q = `INSERT INTO property_images (property_id, file, enabled) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, img.PropertyID, img.File, img.Enabled)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	img.ID = uint64(id)
	return nil
}

// PropertyFilter carries the optional catalog filters.  An empty field means
// no constraint; provided fields are matched as case-sensitive substrings
// and combined with AND.
type PropertyFilter struct {
	Name         string
	Address      string
	CodeInternal string
	Year         string
}

// buildFilterWhere assembles the WHERE clause and arguments for a filter.
// LIKE BINARY keeps containment case sensitive under the default MySQL
// collations.  Returns "1=1" for an empty filter so the query shape stays
// constant.
func buildFilterWhere(f PropertyFilter) (string, []any) {
	where := []string{}
	args := []any{}
	if f.Name != "" {
		where = append(where, "name LIKE BINARY ?")
		args = append(args, "%"+f.Name+"%")
	}
	if f.Address != "" {
		where = append(where, "address LIKE BINARY ?")
		args = append(args, "%"+f.Address+"%")
	}
	if f.CodeInternal != "" {
		where = append(where, "code_internal LIKE BINARY ?")
		args = append(args, "%"+f.CodeInternal+"%")
	}
	if f.Year != "" {
		where = append(where, "year LIKE BINARY ?")
		args = append(args, "%"+f.Year+"%")
	}
	if len(where) == 0 {
		return "1=1", args
	}
	return strings.Join(where, " AND "), args
}

// Search returns every property matching the filter, ordered by id so
// results are reproducible.  No pagination: the full matching set comes back.
func (r *PropertyRepo) Search(ctx context.Context, f PropertyFilter) ([]*model.Property, error) {
	cond, args := buildFilterWhere(f)
	q := `SELECT id, name, address, price, code_internal, year, owner_id, created_at, updated_at
	      FROM properties WHERE ` + cond + ` ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Property
	for rows.Next() {
		p := new(model.Property)
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.Price, &p.CodeInternal, &p.Year, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListImages returns a property's images ordered by id.
func (r *PropertyRepo) ListImages(ctx context.Context, propertyID uint64) ([]*model.PropertyImage, error) {
	const q = `SELECT id, property_id, file, enabled, created_at
	           FROM property_images WHERE property_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.PropertyImage
	for rows.Next() {
		img := new(model.PropertyImage)
		if err := rows.Scan(&img.ID, &img.PropertyID, &img.File, &img.Enabled, &img.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTraces returns a property's sale history ordered by id.
func (r *PropertyRepo) ListTraces(ctx context.Context, propertyID uint64) ([]*model.PropertyTrace, error) {
	const q = `SELECT id, property_id, date_sale, name, value, tax, created_at
	           FROM property_traces WHERE property_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.PropertyTrace
	for rows.Next() {
		t := new(model.PropertyTrace)
		if err := rows.Scan(&t.ID, &t.PropertyID, &t.DateSale, &t.Name, &t.Value, &t.Tax, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
