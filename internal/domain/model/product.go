package model

import "github.com/shopspring/decimal"

// カタログの商品
type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Category      string           `json:"category"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Rating        float64          `json:"rating"`
	Reviews       int64            `json:"reviews"`
	Image         string           `json:"image"`
	Images        []string         `json:"images"`

	//3Dモデルのパス（保存だけ）
	Model string `json:"model"`

	Description string   `json:"description"`
	Benefits    []string `json:"benefits"`
	Ingredients []string `json:"ingredients"`

	//色（カートのvariantになる）
	Shades []string `json:"shades"`

	Tags     []string `json:"tags"`
	InStock  bool     `json:"in_stock"`
	Featured bool     `json:"featured"`
}

// shadeが商品に存在するか
func (p Product) HasShade(shade string) bool {
	for _, s := range p.Shades {
		if s == shade {
			return true
		}
	}
	return false
}
