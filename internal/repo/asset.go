package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/davemarr/asset-inventory/internal/models"
)

// assetColumns is the column list every asset query selects, in scanAsset order.
// serial_number is nullable in the store; it comes back as "" when absent.
const assetColumns = `id, name, type, COALESCE(serial_number, ''), manufacturer, model, status, location, assigned_to, purchase_date, warranty_expiry, ip_address, mac_address, notes, created_at, updated_at`

type AssetRepo struct {
	DB *sql.DB
}

func NewAssetRepo(db *sql.DB) *AssetRepo {
	return &AssetRepo{DB: db}
}

// Filter narrows List results. Zero-value fields are ignored; set fields
// combine with AND. Search matches case-insensitively as a substring against
// name, serial number, manufacturer, and model.
type Filter struct {
	Search string
	Status string
	Type   string
}

// where renders the filter as a parameterized WHERE clause. Returns "" and no
// args when the filter is empty.
func (f Filter) where() (string, []interface{}) {
	var conds []string
	var args []interface{}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(name ILIKE $%d OR serial_number ILIKE $%d OR manufacturer ILIKE $%d OR model ILIKE $%d)",
			n, n, n, n))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAsset(row scanner) (models.Asset, error) {
	var a models.Asset
	err := row.Scan(
		&a.ID, &a.Name, &a.Type, &a.SerialNumber, &a.Manufacturer, &a.Model,
		&a.Status, &a.Location, &a.AssignedTo, &a.PurchaseDate, &a.WarrantyExpiry,
		&a.IPAddress, &a.MACAddress, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// List returns all assets matching the filter, most recently created first.
func (r *AssetRepo) List(ctx context.Context, f Filter) ([]models.Asset, error) {
	where, args := f.where()
	query := `SELECT ` + assetColumns + ` FROM assets` + where + ` ORDER BY created_at DESC, id DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func (r *AssetRepo) Get(ctx context.Context, id int) (models.Asset, error) {
	a, err := scanAsset(r.DB.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Asset{}, ErrNotFound
	}
	return a, err
}

// Create inserts a new asset and returns the stored record including generated
// id and timestamps. An empty serial number is stored as NULL so it never
// collides with another empty one.
func (r *AssetRepo) Create(ctx context.Context, in models.AssetInput) (models.Asset, error) {
	a, err := scanAsset(r.DB.QueryRowContext(ctx, `
		INSERT INTO assets (name, type, serial_number, manufacturer, model, status,
			location, assigned_to, purchase_date, warranty_expiry,
			ip_address, mac_address, notes)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+assetColumns,
		in.Name, in.Type, in.SerialNumber, in.Manufacturer, in.Model, in.Status,
		in.Location, in.AssignedTo, in.PurchaseDate, in.WarrantyExpiry,
		in.IPAddress, in.MACAddress, in.Notes,
	))
	return a, mapWriteErr(err)
}

// Update replaces every mutable field and refreshes updated_at. created_at and
// id are never touched.
func (r *AssetRepo) Update(ctx context.Context, id int, in models.AssetInput) (models.Asset, error) {
	a, err := scanAsset(r.DB.QueryRowContext(ctx, `
		UPDATE assets SET name = $1, type = $2, serial_number = NULLIF($3, ''),
			manufacturer = $4, model = $5, status = $6, location = $7,
			assigned_to = $8, purchase_date = $9, warranty_expiry = $10,
			ip_address = $11, mac_address = $12, notes = $13, updated_at = NOW()
		WHERE id = $14
		RETURNING `+assetColumns,
		in.Name, in.Type, in.SerialNumber, in.Manufacturer, in.Model, in.Status,
		in.Location, in.AssignedTo, in.PurchaseDate, in.WarrantyExpiry,
		in.IPAddress, in.MACAddress, in.Notes, id,
	))
	return a, mapWriteErr(err)
}

// Delete removes the asset permanently. Returns ErrNotFound when no row had
// that id.
func (r *AssetRepo) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// StatsOverview counts all assets by status in a single pass. An empty table
// yields all zeros.
func (r *AssetRepo) StatsOverview(ctx context.Context) (models.Stats, error) {
	var s models.Stats
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'active'),
			COUNT(*) FILTER (WHERE status = 'inactive'),
			COUNT(*) FILTER (WHERE status = 'maintenance'),
			COUNT(*) FILTER (WHERE status = 'retired')
		FROM assets`,
	).Scan(&s.Total, &s.Active, &s.Inactive, &s.Maintenance, &s.Retired)
	return s, err
}

// ListExpiringWarranties returns non-retired assets whose warranty expires
// within the next windowDays days, soonest first. Warranty dates are ISO
// YYYY-MM-DD strings, so lexical comparison is date comparison.
func (r *AssetRepo) ListExpiringWarranties(ctx context.Context, windowDays int) ([]models.Asset, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+assetColumns+` FROM assets
		WHERE warranty_expiry <> ''
			AND warranty_expiry >= to_char(NOW(), 'YYYY-MM-DD')
			AND warranty_expiry <= to_char(NOW() + make_interval(days => $1), 'YYYY-MM-DD')
			AND status <> 'retired'
		ORDER BY warranty_expiry`,
		windowDays,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}
