package models

import "time"

// User is one row of the users table. Password is stored as given by the
// configured codec, which is plaintext unless bcrypt is enabled.
type User struct {
	ID       int64
	Username string
	Password string
}

// Calculation is a recorded evaluation, kept per authenticated user.
type Calculation struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64     `gorm:"index;not null" json:"user_id"`
	Operation  string    `gorm:"not null" json:"operation"`
	Expression string    `gorm:"not null" json:"expression"`
	Result     string    `gorm:"not null" json:"result"`
	CreatedAt  time.Time `json:"created_at"`
}
