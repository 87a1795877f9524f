package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/classifieds/ads-api/internal/core/domain"
	"github.com/classifieds/ads-api/internal/core/ports"
)

const advertisementColumns = `id, title, description, price, author, created_at, user_id`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type AdvertisementRepository struct {
	db *sqlx.DB
}

func NewAdvertisementRepository(db *sqlx.DB) ports.AdvertisementRepository {
	return &AdvertisementRepository{db: db}
}

// Create inserts the advertisement and fills in ID and CreatedAt from the row.
func (r *AdvertisementRepository) Create(ctx context.Context, ad *domain.Advertisement) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO advertisement (title, description, price, author, user_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		ad.Title, ad.Description, ad.Price, ad.Author, ad.UserID,
	).Scan(&ad.ID, &ad.CreatedAt)
	if err != nil {
		return fmt.Errorf("create advertisement: %w", translateError(err, domain.ErrAdvertisementNotFound))
	}
	return nil
}

func (r *AdvertisementRepository) FindByID(ctx context.Context, id int64) (*domain.Advertisement, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ad domain.Advertisement
	err := r.db.GetContext(ctx, &ad, `SELECT `+advertisementColumns+` FROM advertisement WHERE id = $1`, id)
	if err != nil {
		return nil, translateError(err, domain.ErrAdvertisementNotFound)
	}
	return &ad, nil
}

// List returns the rows matching filter ordered by id.
func (r *AdvertisementRepository) List(ctx context.Context, filter domain.AdvertisementFilter) ([]*domain.Advertisement, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	where, args := buildFilter(filter)
	query := `SELECT ` + advertisementColumns + ` FROM advertisement` + where + ` ORDER BY id`

	ads := []*domain.Advertisement{}
	if err := r.db.SelectContext(ctx, &ads, query, args...); err != nil {
		return nil, fmt.Errorf("list advertisements: %w", err)
	}
	return ads, nil
}

func (r *AdvertisementRepository) Update(ctx context.Context, ad *domain.Advertisement) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.NamedExecContext(ctx,
		`UPDATE advertisement
		 SET title = :title, description = :description, price = :price, author = :author
		 WHERE id = :id`,
		ad,
	)
	if err != nil {
		return fmt.Errorf("update advertisement: %w", err)
	}
	return expectAffected(res, domain.ErrAdvertisementNotFound)
}

func (r *AdvertisementRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM advertisement WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete advertisement: %w", err)
	}
	return expectAffected(res, domain.ErrAdvertisementNotFound)
}

// buildFilter renders the WHERE clause for filter. Text criteria become
// case-insensitive substring matches with LIKE metacharacters escaped.
func buildFilter(filter domain.AdvertisementFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	like := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, "%"+likeEscaper.Replace(value)+"%")
		conds = append(conds, fmt.Sprintf(`%s ILIKE $%d`, column, len(args)))
	}

	like("title", filter.Title)
	like("description", filter.Description)
	if filter.Price != nil {
		args = append(args, *filter.Price)
		conds = append(conds, fmt.Sprintf(`price = $%d`, len(args)))
	}
	like("author", filter.Author)

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
