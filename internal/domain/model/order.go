package model

import (
	"time"

	"github.com/google/uuid"
)

// Order 訂單資料，一筆CartLine對應一筆Order
// 寫入後不可變更，本服務只做Create與查詢
type Order struct {
	OrderID     uuid.UUID `gorm:"primaryKey;type:uuid"`
	ProductCode string    `gorm:"not null;type:varchar(100)"`
	ProductName string    `gorm:"not null;type:varchar(255)"`
	Username    string    `gorm:"not null;type:varchar(255)"`
	Email       string    `gorm:"not null;type:varchar(255)"`
	Price       int64     `gorm:"not null"`
	Quantity    int       `gorm:"not null"`
	Address     string    `gorm:"not null;type:varchar(255)"`
	OrderDate   time.Time `gorm:"not null"`
	BaseModel
}
