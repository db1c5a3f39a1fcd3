package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dealerhub/dealership-service/internal/domain"
)

// VehicleRepository encapsulates listing persistence.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	GetByTitle(ctx context.Context, title string) (*domain.Vehicle, error)
	List(ctx context.Context) ([]domain.Vehicle, error)
}

type vehicleRepository struct {
	pool *pgxpool.Pool
}

// NewVehicleRepository instantiates repository.
func NewVehicleRepository(pool *pgxpool.Pool) VehicleRepository {
	return &vehicleRepository{pool: pool}
}

const vehicleColumns = `id, title, brand, model, vehicle_type, fuel_type, year, price,
               status, km_driven, mileage, ownership, images, created_at, updated_at`

func (r *vehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	const query = `
        INSERT INTO vehicles (title, brand, model, vehicle_type, fuel_type, year, price, status, km_driven, mileage, ownership, images)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		vehicle.Title,
		vehicle.Brand,
		vehicle.Model,
		vehicle.VehicleType,
		vehicle.FuelType,
		vehicle.Year,
		vehicle.Price,
		vehicle.Status,
		vehicle.KmDriven,
		vehicle.Mileage,
		vehicle.Ownership,
		vehicle.Images,
	).Scan(&vehicle.ID, &vehicle.CreatedAt, &vehicle.UpdatedAt)
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	const query = `
        UPDATE vehicles SET title=$1, brand=$2, model=$3, vehicle_type=$4, fuel_type=$5,
            year=$6, price=$7, status=$8, km_driven=$9, mileage=$10, ownership=$11, images=$12, updated_at=NOW()
        WHERE id=$13`
	cmd, err := r.pool.Exec(ctx, query,
		vehicle.Title,
		vehicle.Brand,
		vehicle.Model,
		vehicle.VehicleType,
		vehicle.FuelType,
		vehicle.Year,
		vehicle.Price,
		vehicle.Status,
		vehicle.KmDriven,
		vehicle.Mileage,
		vehicle.Ownership,
		vehicle.Images,
		vehicle.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM vehicles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *vehicleRepository) GetByTitle(ctx context.Context, title string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE title=$1`
	return r.fetchSingle(ctx, query, title)
}

func (r *vehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vehicles := make([]domain.Vehicle, 0)
	for rows.Next() {
		var vehicle domain.Vehicle
		if err := scanVehicle(rows, &vehicle); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}
	return vehicles, rows.Err()
}

func (r *vehicleRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	if err := scanVehicle(r.pool.QueryRow(ctx, query, arg), &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func scanVehicle(row pgx.Row, vehicle *domain.Vehicle) error {
	return row.Scan(
		&vehicle.ID,
		&vehicle.Title,
		&vehicle.Brand,
		&vehicle.Model,
		&vehicle.VehicleType,
		&vehicle.FuelType,
		&vehicle.Year,
		&vehicle.Price,
		&vehicle.Status,
		&vehicle.KmDriven,
		&vehicle.Mileage,
		&vehicle.Ownership,
		&vehicle.Images,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
	)
}
