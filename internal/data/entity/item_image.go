package entity

type ItemImage struct {
	ItemSeq int64  `db:"item_seq"`
	Index   int    `db:"index"`
	Path    string `db:"path"`
}
