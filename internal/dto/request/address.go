package request

import "classifieds-market/internal/data/entity"

// AddressRequest mirrors the road-name address search API payload.
type AddressRequest struct {
	RoadFullAddr string  `json:"road_full_addr" validate:"required,max=255"`
	EngAddr      string  `json:"eng_addr" validate:"required"`
	ZipNo        string  `json:"zip_no" validate:"required"`
	AddrDetail   *string `json:"addr_detail,omitempty"`
	AdmCd        string  `json:"adm_cd" validate:"required"`
	RnMgtSn      string  `json:"rn_mgt_sn" validate:"required"`
	BgMgtSn      string  `json:"bg_mgt_sn" validate:"required"`
	SiNm         string  `json:"si_nm" validate:"required"`
	SggNm        string  `json:"sgg_nm" validate:"required"`
	EmdNm        string  `json:"emd_nm" validate:"required"`
	Rn           string  `json:"rn" validate:"required"`
}

func (r AddressRequest) ToEntity(userSeq int64) *entity.Address {
	return &entity.Address{
		UserSeq:      userSeq,
		RoadFullAddr: entity.NormalizeRoadAddr(r.RoadFullAddr),
		EngAddr:      r.EngAddr,
		ZipNo:        r.ZipNo,
		AddrDetail:   r.AddrDetail,
		AdmCd:        r.AdmCd,
		RnMgtSn:      r.RnMgtSn,
		BgMgtSn:      r.BgMgtSn,
		SiNm:         r.SiNm,
		SggNm:        r.SggNm,
		EmdNm:        r.EmdNm,
		Rn:           r.Rn,
	}
}
