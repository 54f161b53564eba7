package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/senya/senya/internal/logger"
	"github.com/senya/senya/internal/models"
	"github.com/senya/senya/internal/repository"
)

type shopRepository struct {
	db *sql.DB
}

// NewShopRepository creates a new ShopRepository implementation
func NewShopRepository(db *sql.DB) repository.ShopRepository {
	return &shopRepository{db: db}
}

func (r *shopRepository) ListHeartPackages(ctx context.Context) ([]models.HeartPackage, error) {
	log := logger.FromContext(ctx).WithPrefix("shop_repo")
	log.Debug("listing heart packages")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, hearts_amount, ruby_cost
FROM heart_packages
ORDER BY ruby_cost ASC
`)
	if err != nil {
		log.Error("failed to list heart packages: %v", err)
		return nil, err
	}
	defer rows.Close()

	var packages []models.HeartPackage
	for rows.Next() {
		var p models.HeartPackage
		if err := rows.Scan(&p.ID, &p.Name, &p.HeartsAmount, &p.RubyCost); err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	return packages, rows.Err()
}

func (r *shopRepository) GetHeartPackage(ctx context.Context, id int64) (*models.HeartPackage, error) {
	log := logger.FromContext(ctx).WithPrefix("shop_repo")
	log.Debug("getting heart package: id=%d", id)

	var p models.HeartPackage
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, hearts_amount, ruby_cost
FROM heart_packages
WHERE id = ?
`, id).Scan(&p.ID, &p.Name, &p.HeartsAmount, &p.RubyCost)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("heart package not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get heart package: %v", err)
		return nil, err
	}
	return &p, nil
}
