package cart

// LineProduct is the product snapshot captured into a line item at add
// time. Catalog edits after that point do not touch it.
type LineProduct struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
}

type LineItem struct {
	Product  LineProduct `json:"product"`
	Quantity int         `json:"quantity"`
	Variant  string      `json:"variant,omitempty"`
}

type Cart struct {
	Items []LineItem `json:"items"`
}

// Intent is one cart mutation. Folding intents over a Cart is the only
// way cart state changes.
type Intent interface {
	apply(Cart) Cart
}

// AddItem merges by product id only: if a line with the same product id
// exists its quantity is incremented and the line keeps its original
// variant; the new variant argument is dropped.
type AddItem struct {
	Product  LineProduct
	Quantity int
	Variant  string
}

type RemoveItem struct {
	ProductID string
}

// SetQuantity overwrites a line's quantity. Zero or negative removes the
// line entirely.
type SetQuantity struct {
	ProductID string
	Quantity  int
}

type Clear struct{}

func (in AddItem) apply(c Cart) Cart {
	for i, item := range c.Items {
		if item.Product.ID == in.Product.ID {
			items := make([]LineItem, len(c.Items))
			copy(items, c.Items)
			items[i].Quantity += in.Quantity
			return Cart{Items: items}
		}
	}
	items := make([]LineItem, len(c.Items), len(c.Items)+1)
	copy(items, c.Items)
	items = append(items, LineItem{Product: in.Product, Quantity: in.Quantity, Variant: in.Variant})
	return Cart{Items: items}
}

func (in RemoveItem) apply(c Cart) Cart {
	items := make([]LineItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.Product.ID != in.ProductID {
			items = append(items, item)
		}
	}
	return Cart{Items: items}
}

func (in SetQuantity) apply(c Cart) Cart {
	if in.Quantity <= 0 {
		return RemoveItem{ProductID: in.ProductID}.apply(c)
	}
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	for i := range items {
		if items[i].Product.ID == in.ProductID {
			items[i].Quantity = in.Quantity
		}
	}
	return Cart{Items: items}
}

func (Clear) apply(Cart) Cart {
	return Cart{}
}

// Apply folds a single intent over the cart and returns the new state.
func Apply(c Cart, in Intent) Cart {
	return in.apply(c)
}

// Total is recomputed from current state on every call.
func (c Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}
