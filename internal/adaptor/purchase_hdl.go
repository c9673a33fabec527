package adaptor

import (
	"net/http"

	"classifieds-market/internal/data/entity"
	"classifieds-market/internal/usecase"

	"go.uber.org/zap"
)

var (
	purchaseMessages = messages{
		entity.ResultSuccess:   "성공적으로 구매 신청하였습니다.",
		entity.ResultNotFound:  "사용자를 찾을 수 없습니다.",
		entity.ResultForbidden: "본인의 상품은 구매할 수 없습니다.",
		entity.ResultConflict:  "이미 구매중인 상품입니다.",
	}
	purchaseListMessages = messages{
		entity.ResultSuccess:  "구매중인 상품을 조회하였습니다.",
		entity.ResultNotFound: "사용자를 찾을 수 없습니다.",
	}
	purchaseCompleteMessages = messages{
		entity.ResultSuccess:   "구매가 완료되었습니다.",
		entity.ResultNotFound:  "구매 정보를 찾을 수 없습니다.",
		entity.ResultForbidden: "접근 권한이 없습니다.",
		entity.ResultConflict:  "이미 완료된 구매입니다.",
	}
)

type PurchaseHandler struct {
	service usecase.PurchaseService
	log     *zap.Logger
}

func NewPurchaseHandler(service usecase.PurchaseService, log *zap.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		service: service,
		log:     log.With(zap.String("handler", "purchase")),
	}
}

// Request handles POST /user/purchase?user_id=&item_seq=
func (h *PurchaseHandler) Request(w http.ResponseWriter, r *http.Request) {
	itemSeq, ok := queryInt64(r, "item_seq")
	if !ok {
		writeBadRequest(w, map[string]string{"item_seq": "must be an integer"})
		return
	}

	result := h.service.Request(r.Context(), r.URL.Query().Get("user_id"), itemSeq)
	writeResult(w, result, purchaseMessages)
}

// List handles GET /user/purchase/list?user_id=
func (h *PurchaseHandler) List(w http.ResponseWriter, r *http.Request) {
	items, result := h.service.List(r.Context(), r.URL.Query().Get("user_id"))
	if !result.OK() {
		writeResult(w, result, purchaseListMessages)
		return
	}

	writeData(w, result, purchaseListMessages, items)
}

// Complete handles POST /user/purchase/complete?user_id=&buyer_id=&item_seq=
func (h *PurchaseHandler) Complete(w http.ResponseWriter, r *http.Request) {
	itemSeq, ok := queryInt64(r, "item_seq")
	if !ok {
		writeBadRequest(w, map[string]string{"item_seq": "must be an integer"})
		return
	}

	q := r.URL.Query()
	result := h.service.Complete(r.Context(), q.Get("user_id"), q.Get("buyer_id"), itemSeq)
	writeResult(w, result, purchaseCompleteMessages)
}
