package model

import "iter"

// CartLine 購物車內單一商品項目
// Price 為加入當下的商品單價快照，後續不再讀取商品主檔
// TotalPrice 永遠等於 Quantity * Price，只能由重算產生
type CartLine struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Brand      string `json:"brand"`
	Image      string `json:"image"`
	Price      int64  `json:"price"`
	Quantity   int    `json:"quantity"`
	TotalPrice int64  `json:"total_price"`
}

// Cart 單一session專屬的購物車
// Items 依加入順序排列，code在Items內唯一
// TotalQuantity/TotalPrice 為衍生彙總，每次異動後重算
type Cart struct {
	Items         []CartLine `json:"items"`
	TotalQuantity int        `json:"total_quantity"`
	TotalPrice    int64      `json:"total_price"`
}

// Upsert 合併商品進購物車
// 已存在同code項目則累加數量，單價沿用既有快照
// 不存在則以商品當前資料建立新快照項目
func (c *Cart) Upsert(product *Product, quantity int) {
	for i := range c.Items {
		if c.Items[i].Code == product.Code {
			c.Items[i].Quantity += quantity
			c.recalculate()
			return
		}
	}

	c.Items = append(c.Items, CartLine{
		Code:     product.Code,
		Name:     product.Name,
		Brand:    product.Brand,
		Image:    product.Image,
		Price:    product.Price,
		Quantity: quantity,
	})
	c.recalculate()
}

// Remove 移除指定code項目，code不存在視為no-op
// 無論是否移除都會重算彙總
func (c *Cart) Remove(code string) {
	for i := range c.Items {
		if c.Items[i].Code == code {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			break
		}
	}
	c.recalculate()
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) Len() int {
	return len(c.Items)
}

// Lines 依加入順序走訪購物車項目，可重複走訪
func (c *Cart) Lines() iter.Seq[CartLine] {
	return func(yield func(CartLine) bool) {
		for _, line := range c.Items {
			if !yield(line) {
				return
			}
		}
	}
}

// recalculate 重算每個項目的小計與整車彙總
func (c *Cart) recalculate() {
	c.TotalQuantity = 0
	c.TotalPrice = 0
	for i := range c.Items {
		c.Items[i].TotalPrice = int64(c.Items[i].Quantity) * c.Items[i].Price
		c.TotalQuantity += c.Items[i].Quantity
		c.TotalPrice += c.Items[i].TotalPrice
	}
}
