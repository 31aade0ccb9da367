// Package cart prices a browser-held cart against the catalog.
package cart

import "sort"

// Item is one requested line as sent by the storefront.
type Item struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

// Line is a priced cart line.
type Line struct {
	ProductID uint    `json:"productId"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// MaxQuantity caps the quantity held for one product.
const MaxQuantity = 1000

// Cart holds quantities keyed by product ID. The zero value is ready to use.
type Cart struct {
	qty   map[uint]int
	order []uint
}

// FromItems merges duplicate product IDs and drops non-positive quantities.
func FromItems(items []Item) Cart {
	var c Cart
	for _, it := range items {
		c.Add(it.ProductID, it.Quantity)
	}
	return c
}

// Add increases the quantity of a product, saturating at MaxQuantity.
// Non-positive quantities are ignored.
func (c *Cart) Add(productID uint, quantity int) {
	if productID == 0 || quantity <= 0 {
		return
	}
	if c.qty == nil {
		c.qty = make(map[uint]int)
	}
	if _, ok := c.qty[productID]; !ok {
		c.order = append(c.order, productID)
	}
	if quantity > MaxQuantity-c.qty[productID] {
		c.qty[productID] = MaxQuantity
		return
	}
	c.qty[productID] += quantity
}

// Update sets the quantity of a product; zero or less removes it.
func (c *Cart) Update(productID uint, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	if _, ok := c.qty[productID]; !ok {
		c.Add(productID, quantity)
		return
	}
	if quantity > MaxQuantity {
		quantity = MaxQuantity
	}
	c.qty[productID] = quantity
}

func (c *Cart) Remove(productID uint) {
	if _, ok := c.qty[productID]; !ok {
		return
	}
	delete(c.qty, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Quantity returns the quantity held for a product.
func (c Cart) Quantity(productID uint) int { return c.qty[productID] }

// ProductIDs returns the product IDs in the order they were first added.
func (c Cart) ProductIDs() []uint {
	ids := make([]uint, len(c.order))
	copy(ids, c.order)
	return ids
}

// Product is the catalog data needed to price a line.
type Product struct {
	ID    uint
	Name  string
	Slug  string
	Image string
	Price float64
}

// Quote is the priced cart returned to the storefront.
type Quote struct {
	Lines      []Line  `json:"lines"`
	TotalItems int     `json:"totalItems"`
	TotalPrice float64 `json:"totalPrice"`
	Missing    []uint  `json:"missing"`
}

// Totals prices the cart. IDs absent from catalog are reported as missing.
func (c Cart) Totals(catalog map[uint]Product) Quote {
	q := Quote{Lines: []Line{}, Missing: []uint{}}
	for _, id := range c.order {
		p, ok := catalog[id]
		if !ok {
			q.Missing = append(q.Missing, id)
			continue
		}
		n := c.qty[id]
		if n <= 0 {
			continue
		}
		line := Line{
			ProductID: id,
			Name:      p.Name,
			Slug:      p.Slug,
			Image:     p.Image,
			Price:     p.Price,
			Quantity:  n,
			Subtotal:  p.Price * float64(n),
		}
		q.Lines = append(q.Lines, line)
		q.TotalItems += n
		q.TotalPrice += line.Subtotal
	}
	sort.Slice(q.Missing, func(i, j int) bool { return q.Missing[i] < q.Missing[j] })
	return q
}
