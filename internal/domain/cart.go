package domain

// ShopRef — отображаемые атрибуты магазина, хранящиеся вместе с группой корзины.
type ShopRef struct {
	Name  string `json:"shop_name"`
	Image string `json:"shop_image"`
}

// ShopOrderGroup — подкорзина одного магазина: позиции, ещё не оформленные в заказ.
type ShopOrderGroup struct {
	ShopName  string      `json:"shop_name"`
	ShopImage string      `json:"shop_image"`
	Items     []OrderItem `json:"items"`
}

// UserCart — клиентская корзина пользователя, разбитая по магазинам.
// Инвариант: не более одной группы на shop_id. Документ целиком живёт
// в одном строковом слоте клиентского хранилища и является единственным
// источником правды о неоформленных заказах.
type UserCart struct {
	UserID       string                    `json:"user_id"`
	OrdersByShop map[string]ShopOrderGroup `json:"orders_by_shop"`
}

// NewUserCart возвращает пустую корзину пользователя.
func NewUserCart(userID string) UserCart {
	return UserCart{
		UserID:       userID,
		OrdersByShop: make(map[string]ShopOrderGroup),
	}
}

// Upsert добавляет позицию в группу магазина, создавая группу при
// необходимости. Если позиция с тем же MealID уже есть, количества
// складываются: слияние идёт по meal_id, а не по имени.
func (c *UserCart) Upsert(shopID string, shop ShopRef, item OrderItem) {
	if c.OrdersByShop == nil {
		c.OrdersByShop = make(map[string]ShopOrderGroup)
	}

	group, ok := c.OrdersByShop[shopID]
	if !ok {
		group = ShopOrderGroup{ShopName: shop.Name, ShopImage: shop.Image}
	}

	merged := false
	for i := range group.Items {
		if group.Items[i].MealID == item.MealID {
			group.Items[i].Quantity += item.Quantity
			if item.Remark != "" {
				group.Items[i].Remark = item.Remark
			}
			merged = true
			break
		}
	}
	if !merged {
		group.Items = append(group.Items, item)
	}

	c.OrdersByShop[shopID] = group
}

// RemoveShop удаляет группу магазина целиком. Используется после успешного
// оформления заказа; остальные группы не затрагиваются.
func (c *UserCart) RemoveShop(shopID string) {
	delete(c.OrdersByShop, shopID)
}

// Group возвращает глубокую копию группы магазина, чтобы дальнейшие
// изменения корзины не влияли на уже сделанный снимок.
func (c *UserCart) Group(shopID string) (ShopOrderGroup, bool) {
	group, ok := c.OrdersByShop[shopID]
	if !ok {
		return ShopOrderGroup{}, false
	}
	return copyGroup(group), true
}

// Clone возвращает глубокую копию всей корзины.
func (c *UserCart) Clone() UserCart {
	clone := NewUserCart(c.UserID)
	for shopID, group := range c.OrdersByShop {
		clone.OrdersByShop[shopID] = copyGroup(group)
	}
	return clone
}

// Empty сообщает, пуста ли корзина.
func (c *UserCart) Empty() bool {
	return len(c.OrdersByShop) == 0
}

func copyGroup(group ShopOrderGroup) ShopOrderGroup {
	items := make([]OrderItem, len(group.Items))
	copy(items, group.Items)
	group.Items = items
	return group
}
