package adaptor

import (
	"net/http"
	"strconv"

	"classifieds-market/internal/data/entity"
	"classifieds-market/internal/dto/request"
	"classifieds-market/internal/usecase"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const msgAddressInternal = "서버 내부에러가 발생하였습니다."

var (
	listAddressMessages = messages{
		entity.ResultSuccess:             "주소를 조회하였습니다.",
		entity.ResultFail:                "주소 조회에 실패하였습니다.",
		entity.ResultInternalServerError: msgAddressInternal,
	}
	insertAddressMessages = messages{
		entity.ResultSuccess:             "주소가 성공적으로 등록되었습니다.",
		entity.ResultFail:                "주소 등록에 실패하였습니다.",
		entity.ResultConflict:            "주소가 이미 등록되었습니다.",
		entity.ResultInternalServerError: msgAddressInternal,
	}
	deleteAddressMessages = messages{
		entity.ResultSuccess:             "주소가 성공적으로 삭제되었습니다.",
		entity.ResultFail:                "주소 제거에 실패하였습니다.",
		entity.ResultInternalServerError: msgAddressInternal,
	}
	defaultAddressMessages = messages{
		entity.ResultSuccess:             "기본 배송지가 변경되었습니다.",
		entity.ResultFail:                "기본 배송지 변경에 실패하였습니다.",
		entity.ResultInternalServerError: msgAddressInternal,
	}
)

type AddressHandler struct {
	service usecase.AddressService
	log     *zap.Logger
}

func NewAddressHandler(service usecase.AddressService, log *zap.Logger) *AddressHandler {
	return &AddressHandler{
		service: service,
		log:     log.With(zap.String("handler", "address")),
	}
}

// List handles GET /user/address/{user_id}?default=
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	defaultOnly, _ := strconv.ParseBool(r.URL.Query().Get("default"))

	addresses, result := h.service.List(r.Context(), chi.URLParam(r, "user_id"), defaultOnly)
	if !result.OK() {
		writeResult(w, result, listAddressMessages)
		return
	}

	writeData(w, result, listAddressMessages, addresses)
}

// Insert handles PUT /user/address/{user_id}
func (h *AddressHandler) Insert(w http.ResponseWriter, r *http.Request) {
	var req request.AddressRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result := h.service.Insert(r.Context(), chi.URLParam(r, "user_id"), &req)
	writeResult(w, result, insertAddressMessages)
}

// Delete handles DELETE /user/address/{user_id}?road_full_addr=
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	result := h.service.Delete(r.Context(), chi.URLParam(r, "user_id"), r.URL.Query().Get("road_full_addr"))
	writeResult(w, result, deleteAddressMessages)
}

// SetDefault handles POST /user/address/{user_id}?road_full_addr=
func (h *AddressHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	result := h.service.SetDefault(r.Context(), chi.URLParam(r, "user_id"), r.URL.Query().Get("road_full_addr"))
	writeResult(w, result, defaultAddressMessages)
}
