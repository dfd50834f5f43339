package domain

// LineKey — составной ключ позиции корзины.
// Две операции относятся к одной позиции тогда и только тогда, когда совпадают
// идентификатор товара и выбранный размер (пустой размер — полноценное значение).
type LineKey struct {
	ProductID string
	Size      string
}

// CartLine — одна позиция корзины: товар, размер, цвет и количество.
type CartLine struct {
	Product
	Quantity      int
	SelectedSize  string
	SelectedColor string // косметическое поле, не входит в ключ позиции
}

func NewCartLine(product Product, quantity int, size string, color string) *CartLine {
	return &CartLine{
		Product:       product,
		Quantity:      quantity,
		SelectedSize:  size,
		SelectedColor: color,
	}
}

// Key возвращает ключ позиции для операций слияния, изменения количества и удаления.
func (l *CartLine) Key() LineKey {
	return LineKey{
		ProductID: l.ID,
		Size:      l.SelectedSize,
	}
}
