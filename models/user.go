package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           string      `gorm:"primaryKey" json:"id"`
	Email        string      `gorm:"unique;not null" json:"email"`
	PasswordHash string      `json:"-"`
	Phone        string      `json:"phone"`
	Name         string      `json:"name"`
	Picture      string      `json:"picture"`
	Provider     string      `json:"provider"` // "local" or "google"
	Role         Role        `gorm:"type:VARCHAR(10);default:'user'" json:"role"`
	Approved     bool        `gorm:"default:true" json:"approved"` // staff accounts start unapproved
	Address      Address     `gorm:"embedded" json:"address"`
	Cart         Cart        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart"`
	Orders       []Order     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"orders,omitempty"`
	Reward       RewardPoint `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"reward"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Address is embedded in User and snapshotted onto orders at checkout.
type Address struct {
	Province string `json:"province"`
	District string `json:"district"`
	Ward     string `json:"ward"`
	Street   string `json:"street"`
}
