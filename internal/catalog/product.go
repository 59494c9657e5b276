package catalog

// Product is one purchasable piece as stored in the catalog collection.
// The catalog store assigns the ID; everything else is authored by the shop
// owner. Price is in major units (dollars). JSON tags match the shapes the
// storefront and the checkout endpoint exchange.
type Product struct {
	ID          string  `json:"id" bson:"-"`
	Name        string  `json:"name" bson:"name"`
	Description string  `json:"description" bson:"description"`
	Price       float64 `json:"price" bson:"price"`
	ImageURL    string  `json:"imageURL" bson:"imageURL"`
	Available   bool    `json:"available" bson:"available"`
}

// Valid reports whether a fetched record is usable. Records coming out of a
// schemaless store can be missing anything; a product without a name or with
// a negative price is rejected at the fetch boundary instead of leaking
// half-empty fields downstream.
func (p Product) Valid() bool {
	return p.Name != "" && p.Price >= 0
}
