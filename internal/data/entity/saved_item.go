package entity

import "time"

type SavedItem struct {
	UserSeq int64     `db:"user_seq"`
	ItemSeq int64     `db:"item_seq"`
	SavedAt time.Time `db:"saved_at"`
}
