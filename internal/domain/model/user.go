package model

type AccessLevel string

const (
	AccessLevelUser        AccessLevel = "user"
	AccessLevelAdmin       AccessLevel = "admin"
	AccessLevelFulfillment AccessLevel = "fulfillment"
)

func IsValidAccessLevel(level string) bool {
	switch AccessLevel(level) {
	case AccessLevelUser, AccessLevelAdmin, AccessLevelFulfillment:
		return true
	default:
		return false
	}
}

type User struct {
	UserID       uint        `gorm:"primaryKey"`
	Username     string      `gorm:"unique;not null;type:varchar(255)"`
	HashPassword string      `gorm:"not null;type:varchar(255)"`
	Email        string      `gorm:"unique;not null;type:varchar(255)"`
	AccessLevel  AccessLevel `gorm:"not null;type:varchar(20);default:'user'"`
	IsActive     bool        `gorm:"not null;default:true"`
	BaseModel
}

// Identity 已驗證身份，存放於session與request context
// username/email 為下單歸屬欄位，於commit時快照進訂單
type Identity struct {
	UserID      uint        `json:"user_id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	AccessLevel AccessLevel `json:"access_level"`
}
