package entity

import "strings"

type Address struct {
	UserSeq      int64   `db:"user_seq"`
	RoadFullAddr string  `db:"road_full_addr"`
	IsDefault    bool    `db:"is_default"`
	EngAddr      string  `db:"eng_addr"`
	ZipNo        string  `db:"zip_no"`
	AddrDetail   *string `db:"addr_detail"`
	AdmCd        string  `db:"adm_cd"`
	RnMgtSn      string  `db:"rn_mgt_sn"`
	BgMgtSn      string  `db:"bg_mgt_sn"`
	SiNm         string  `db:"si_nm"`
	SggNm        string  `db:"sgg_nm"`
	EmdNm        string  `db:"emd_nm"`
	Rn           string  `db:"rn"`
}

// NormalizeRoadAddr trims and collapses inner whitespace so the same
// address typed twice maps to the same key.
func NormalizeRoadAddr(addr string) string {
	return strings.Join(strings.Fields(addr), " ")
}
