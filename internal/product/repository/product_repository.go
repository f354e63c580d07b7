package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kingflex/internal/domain"
	apperrors "kingflex/internal/errors"
)

type MySQLProductRepository struct {
	db *sql.DB
}

func NewMySQLProductRepository(db *sql.DB) *MySQLProductRepository {
	return &MySQLProductRepository{db: db}
}

func (r *MySQLProductRepository) FindByType(ctx context.Context, productType domain.ProductType) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, detail, unit, type, createdBy, createdAt, updatedAt
		FROM Products
		WHERE type = ?
		ORDER BY id`, string(productType))
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		var detail sql.NullString
		var pType string
		if err := rows.Scan(&p.ID, &p.Name, &detail, &p.Unit, &pType, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		p.Detail = detail.String
		p.Type = domain.ProductType(pType)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

func (r *MySQLProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var p domain.Product
	var detail sql.NullString
	var pType string

	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, detail, unit, type, createdBy, createdAt, updatedAt
		FROM Products
		WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &detail, &p.Unit, &pType, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by id: %w", err)
	}

	p.Detail = detail.String
	p.Type = domain.ProductType(pType)
	return &p, nil
}

func (r *MySQLProductRepository) Insert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO Products (name, detail, unit, type, createdBy)
		VALUES (?, ?, ?, ?, ?)`,
		product.Name, product.Detail, product.Unit, string(product.Type), product.CreatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading product id: %w", err)
	}

	return r.FindByID(ctx, uint(id))
}

func (r *MySQLProductRepository) Update(ctx context.Context, id uint, name, detail, unit string) (*domain.Product, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE Products SET name = ?, detail = ?, unit = ? WHERE id = ?`,
		name, detail, unit, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("reading affected rows: %w", err)
	}
	if affected == 0 {
		// MySQL reports zero affected rows for no-op updates too; confirm
		// existence before reporting not found.
		if _, err := r.FindByID(ctx, id); err != nil {
			return nil, err
		}
	}

	return r.FindByID(ctx, id)
}

func (r *MySQLProductRepository) Delete(ctx context.Context, id uint) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM Products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("product not found")
	}

	return nil
}
