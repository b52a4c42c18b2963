package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"stc-compliance-backend/internal/domain"
	"stc-compliance-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	now := time.Now()
	query := `INSERT INTO profiles (id, email, password_hash, full_name, phone, role, company_name, abn, electrical_license, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query, u.ID, u.Email, u.PasswordHash, u.FullName, u.Phone, u.Role, u.CompanyName, u.ABN, u.ElectricalLicense, now, now)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, password_hash, full_name, phone, role, company_name, abn, electrical_license, created_at, updated_at FROM profiles WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Phone, &u.Role, &u.CompanyName, &u.ABN, &u.ElectricalLicense, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, password_hash, full_name, phone, role, company_name, abn, electrical_license, created_at, updated_at FROM profiles WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Phone, &u.Role, &u.CompanyName, &u.ABN, &u.ElectricalLicense, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE profiles SET full_name=$1, phone=$2, company_name=$3, abn=$4, electrical_license=$5, updated_at=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, u.FullName, u.Phone, u.CompanyName, u.ABN, u.ElectricalLicense, time.Now(), u.ID)
	return err
}

func (r *userRepository) listByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	query := `SELECT id, email, password_hash, full_name, phone, role, company_name, abn, electrical_license, created_at, updated_at FROM profiles WHERE role = $1 ORDER BY full_name ASC`
	rows, err := r.db.QueryContext(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Phone, &u.Role, &u.CompanyName, &u.ABN, &u.ElectricalLicense, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) ListAdmins(ctx context.Context) ([]domain.User, error) {
	return r.listByRole(ctx, domain.UserRoleAdmin)
}

func (r *userRepository) ListTradies(ctx context.Context) ([]domain.User, error) {
	return r.listByRole(ctx, domain.UserRoleTradie)
}
