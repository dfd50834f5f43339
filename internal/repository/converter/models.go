package converter

// ProductModel представляет товар в сериализованном состоянии хранилища.
type ProductModel struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	PriceAmount   int64  `json:"price_amount"`
	PriceCurrency string `json:"price_currency"`
	Image         string `json:"image,omitempty"`
	Category      string `json:"category,omitempty"`
	Rating        string `json:"rating,omitempty"`
}

// CartLineModel представляет позицию корзины в сериализованном состоянии хранилища.
type CartLineModel struct {
	ProductModel
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selected_size,omitempty"`
	SelectedColor string `json:"selected_color,omitempty"`
}
