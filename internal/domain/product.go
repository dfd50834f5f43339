package domain

// Product описывает товар витрины. Поставляется извне и неизменяем со стороны корзины.
type Product struct {
	ID       string
	Name     string
	Price    Money
	Image    string // URI изображения
	Category string
	Rating   string
}

func NewProduct(id string, name string, price Money, image string, category string, rating string) *Product {
	return &Product{
		ID:       id,
		Name:     name,
		Price:    price,
		Image:    image,
		Category: category,
		Rating:   rating,
	}
}
