package entity

import "time"

type Item struct {
	Seq          int64     `db:"seq"`
	UserSeq      int64     `db:"user_seq"`
	Name         string    `db:"name"`
	Cnt          int       `db:"cnt"`
	Price        int       `db:"price"`
	Description  string    `db:"description"`
	Views        int       `db:"views"`
	CreatedAt    time.Time `db:"created_at"`
	CategorySeq  int64     `db:"category_seq"`
	PurchaseType bool      `db:"purchase_type"`
}

// ItemDetail is an item joined with its owner, category and save count.
type ItemDetail struct {
	Item
	OwnerName    string `db:"owner_name"`
	CategoryName string `db:"category_name"`
	SavedCount   int    `db:"saved_cnt"`
}

// ItemSummary is the list-card view of an item; ImagePath is the index 0 image.
type ItemSummary struct {
	Seq        int64     `db:"seq"`
	Name       string    `db:"name"`
	Price      int       `db:"price"`
	CreatedAt  time.Time `db:"created_at"`
	SavedCount int       `db:"saved_cnt"`
	ImagePath  *string   `db:"image_path"`
}

// ItemPatch holds the listing fields an update may overwrite; nil means keep.
type ItemPatch struct {
	Name        *string
	Cnt         *int
	Price       *int
	Description *string
}

func (p ItemPatch) Empty() bool {
	return p.Name == nil && p.Cnt == nil && p.Price == nil && p.Description == nil
}
