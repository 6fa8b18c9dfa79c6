package domain

// User represents a registered account
type User struct {
	BaseModel
	Username     string `gorm:"type:varchar(20);not null;uniqueIndex:uq_users_username" json:"username"`
	Email        string `gorm:"type:varchar(120);not null;uniqueIndex:uq_users_email" json:"email"`
	PasswordHash string `gorm:"type:varchar(128);not null" json:"-"`
	DarkMode     bool   `gorm:"not null;default:false" json:"darkMode"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
