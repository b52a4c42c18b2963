package domain

import "time"

type UserRole string

const (
	UserRoleTradie UserRole = "tradie"
	UserRoleAdmin  UserRole = "admin"
)

type User struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	FullName          string    `json:"full_name"`
	Phone             string    `json:"phone"`
	Role              UserRole  `json:"role"`
	CompanyName       string    `json:"company_name"`
	ABN               string    `json:"abn"`
	ElectricalLicense string    `json:"electrical_license"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
