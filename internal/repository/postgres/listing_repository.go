package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/restaurant-discovery/internal/domain"
	"github.com/restaurant-discovery/internal/domain/repository"
	apperrors "github.com/restaurant-discovery/internal/pkg/errors"
)

type listingRepository struct {
	db *DB
}

// NewListingRepository создает репозиторий заведений поверх PostgreSQL
func NewListingRepository(db *DB) repository.ListingRepository {
	return &listingRepository{db: db}
}

// listingRow maps the restaurants table; categories is a text[] column
type listingRow struct {
	ID         uuid.UUID      `db:"id"`
	Name       string         `db:"name"`
	City       string         `db:"city"`
	Address    string         `db:"address"`
	Categories pq.StringArray `db:"categories"`
	Lat        *float64       `db:"lat"`
	Lng        *float64       `db:"lng"`
	OpenTime   *string        `db:"open_time"`
	CloseTime  *string        `db:"close_time"`
	Phone      *string        `db:"phone"`
	Website    *string        `db:"website"`
	ImageURL   *string        `db:"image_url"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

const listingColumns = `
	id, name, city, address, categories,
	lat, lng, open_time, close_time,
	phone, website, image_url, created_at, updated_at`

func (r *listingRepository) List(ctx context.Context) ([]domain.Listing, error) {
	query := fmt.Sprintf(`SELECT %s FROM restaurants ORDER BY name`, listingColumns)

	var rows []listingRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}

	return convertRows(rows), nil
}

func (r *listingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	query := fmt.Sprintf(`SELECT %s FROM restaurants WHERE id = $1`, listingColumns)

	var row listingRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get restaurant %s: %w", id, err)
	}

	listing := row.toDomain()
	return &listing, nil
}

func (r *listingRepository) ListWithoutCoordinates(ctx context.Context, limit int) ([]domain.Listing, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM restaurants
		WHERE lat IS NULL OR lng IS NULL
		ORDER BY updated_at
		LIMIT $1`, listingColumns)

	var rows []listingRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list restaurants without coordinates: %w", err)
	}

	return convertRows(rows), nil
}

func (r *listingRepository) UpdateCoordinates(ctx context.Context, id uuid.UUID, pos domain.Position) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE restaurants
		SET lat = $2, lng = $3, updated_at = now()
		WHERE id = $1`,
		id, pos.Lat, pos.Lng)
	if err != nil {
		return fmt.Errorf("failed to update coordinates for %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrListingNotFound
	}
	return nil
}

func (r *listingRepository) Districts(ctx context.Context) ([]string, error) {
	var districts []string
	err := r.db.SelectContext(ctx, &districts,
		`SELECT DISTINCT city FROM restaurants WHERE city <> '' ORDER BY city`)
	if err != nil {
		return nil, fmt.Errorf("failed to list districts: %w", err)
	}
	return districts, nil
}

func (r *listingRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.SelectContext(ctx, &categories, `
		SELECT DISTINCT unnest(categories) AS category
		FROM restaurants
		ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (row listingRow) toDomain() domain.Listing {
	return domain.Listing{
		ID:         row.ID,
		Name:       row.Name,
		City:       row.City,
		Address:    row.Address,
		Categories: row.Categories,
		Lat:        row.Lat,
		Lng:        row.Lng,
		OpenTime:   row.OpenTime,
		CloseTime:  row.CloseTime,
		Phone:      row.Phone,
		Website:    row.Website,
		ImageURL:   row.ImageURL,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func convertRows(rows []listingRow) []domain.Listing {
	listings := make([]domain.Listing, len(rows))
	for i, row := range rows {
		listings[i] = row.toDomain()
	}
	return listings
}
