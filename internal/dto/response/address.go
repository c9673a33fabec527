package response

import "classifieds-market/internal/data/entity"

type AddressResponse struct {
	UserSeq      int64   `json:"user_seq"`
	RoadFullAddr string  `json:"road_full_addr"`
	IsDefault    bool    `json:"is_default"`
	EngAddr      string  `json:"eng_addr"`
	ZipNo        string  `json:"zip_no"`
	AddrDetail   *string `json:"addr_detail"`
	AdmCd        string  `json:"adm_cd"`
	RnMgtSn      string  `json:"rn_mgt_sn"`
	BgMgtSn      string  `json:"bg_mgt_sn"`
	SiNm         string  `json:"si_nm"`
	SggNm        string  `json:"sgg_nm"`
	EmdNm        string  `json:"emd_nm"`
	Rn           string  `json:"rn"`
}

func AddressesToResponse(addresses []*entity.Address) []AddressResponse {
	out := make([]AddressResponse, 0, len(addresses))
	for _, a := range addresses {
		out = append(out, AddressResponse{
			UserSeq:      a.UserSeq,
			RoadFullAddr: a.RoadFullAddr,
			IsDefault:    a.IsDefault,
			EngAddr:      a.EngAddr,
			ZipNo:        a.ZipNo,
			AddrDetail:   a.AddrDetail,
			AdmCd:        a.AdmCd,
			RnMgtSn:      a.RnMgtSn,
			BgMgtSn:      a.BgMgtSn,
			SiNm:         a.SiNm,
			SggNm:        a.SggNm,
			EmdNm:        a.EmdNm,
			Rn:           a.Rn,
		})
	}
	return out
}
