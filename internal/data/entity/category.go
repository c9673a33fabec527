package entity

type Category struct {
	Seq  int64  `db:"seq"`
	Name string `db:"name"`
}
