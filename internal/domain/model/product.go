package model

// Product 商品主檔
// code 為人工指派編號，storage層不保證唯一，查詢一律採first-match
// Price 以最小貨幣單位儲存 (ex: 分)
type Product struct {
	ProductID uint   `gorm:"primaryKey"`
	Code      string `gorm:"not null;type:varchar(100);index"`
	Name      string `gorm:"not null;type:varchar(255)"`
	Brand     string `gorm:"not null;type:varchar(255)"`
	Price     int64  `gorm:"not null"`
	Image     string `gorm:"not null;type:varchar(255)"`
	BaseModel
}
