package model

type ProductListItem struct {
	ID            uint64 `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	Price         int64  `db:"price" json:"price"`
	StockQuantity int64  `db:"stock_quantity" json:"stockQuantity"`
}

type ProductDetail struct {
	ID            uint64  `db:"id" json:"id"`
	Name          string  `db:"name" json:"name"`
	Description   string  `db:"description" json:"description,omitempty"`
	Price         int64   `db:"price" json:"price"`
	StockQuantity int64   `db:"stock_quantity" json:"stockQuantity"`
	CategoryID    *uint64 `db:"category_id" json:"categoryId,omitempty"`
}

// ProductStock is the locked row read while pricing a cart.
type ProductStock struct {
	ID            uint64 `db:"id"`
	Name          string `db:"name"`
	Price         int64  `db:"price"`
	StockQuantity int64  `db:"stock_quantity"`
}

type ProductListResponse struct {
	Items      []ProductListItem `json:"items"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	PerPage    int               `json:"per_page"`
}
