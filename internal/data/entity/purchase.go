package entity

import "time"

type Purchase struct {
	UserSeq  int64      `db:"user_seq"`
	ItemSeq  int64      `db:"item_seq"`
	StartAt  time.Time  `db:"start_at"`
	EndAt    *time.Time `db:"end_at"`
	Complete bool       `db:"complete"`
}
