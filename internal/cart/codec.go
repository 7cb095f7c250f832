package cart

import (
	"encoding/json"
	"fmt"

	"github.com/vladislavdragonenkov/fos/internal/domain"
)

// EncodeCart сериализует корзину в строковую форму для долговременного
// клиентского слота.
func EncodeCart(cart domain.UserCart) (string, error) {
	data, err := json.Marshal(cart)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(data), nil
}

// DecodeCart восстанавливает корзину из строковой формы. Нечитаемые данные
// помечаются как ErrCorruptCart: вызывающая сторона трактует их как
// отсутствие корзины, а не как фатальный сбой.
func DecodeCart(data string) (domain.UserCart, error) {
	var cart domain.UserCart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return domain.UserCart{}, fmt.Errorf("%w: %w", domain.ErrCorruptCart, err)
	}
	if cart.OrdersByShop == nil {
		cart.OrdersByShop = make(map[string]domain.ShopOrderGroup)
	}
	return cart, nil
}
