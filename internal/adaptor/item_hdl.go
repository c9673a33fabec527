package adaptor

import (
	"net/http"

	"classifieds-market/internal/data/entity"
	"classifieds-market/internal/dto/request"
	"classifieds-market/internal/dto/response"
	"classifieds-market/internal/usecase"
	"classifieds-market/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var (
	getItemMessages = messages{
		entity.ResultSuccess: "상품 정보를 조회하였습니다.",
		entity.ResultFail:    "아이템이 존재하지 않습니다.",
	}
	listingMessages = messages{
		entity.ResultSuccess:     "검색에 성공하였습니다.",
		entity.ResultFail:        "조건을 만족하는 상품이 없습니다.",
		entity.ResultEntityError: "start는 0 이상, count는 1 이상 50 이하이어야 합니다.",
	}
	categoryMessages = messages{
		entity.ResultSuccess: "카테고리를 조회하였습니다.",
	}
	insertItemMessages = messages{
		entity.ResultSuccess:     "상품정보가 등록되었습니다.",
		entity.ResultFail:        "상품정보 입력에 실패하였습니다.",
		entity.ResultForbidden:   "접근 권한이 없습니다.",
		entity.ResultEntityError: "유효한 카테고리가 아닙니다.",
	}
	updateItemMessages = messages{
		entity.ResultSuccess:   "성공적으로 상품정보를 업데이트 하였습니다.",
		entity.ResultFail:      "상품 정보를 찾을 수 없습니다.",
		entity.ResultForbidden: "접근 권한이 없습니다.",
	}
	deleteItemMessages = messages{
		entity.ResultSuccess:   "상품이 성공적으로 제거되었습니다.",
		entity.ResultFail:      "상품 제거에 실패하였습니다.",
		entity.ResultForbidden: "접근 권한이 없습니다.",
	}
)

type ItemHandler struct {
	service usecase.ItemService
	log     *zap.Logger
}

func NewItemHandler(service usecase.ItemService, log *zap.Logger) *ItemHandler {
	return &ItemHandler{
		service: service,
		log:     log.With(zap.String("handler", "item")),
	}
}

// parseWindow reads start and count, defaulting to the first ten rows.
// Bounds are checked by the service.
func parseWindow(r *http.Request) (request.WindowRequest, bool) {
	window := request.DefaultWindow()
	q := r.URL.Query()

	start, ok := utils.ParseInt(q.Get("start"), window.Start)
	if !ok {
		return window, false
	}
	count, ok := utils.ParseInt(q.Get("count"), window.Count)
	if !ok {
		return window, false
	}

	window.Start, window.Count = start, count
	return window, true
}

// GetItem handles GET /item?item_seq=
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	seq, ok := queryInt64(r, "item_seq")
	if !ok {
		writeBadRequest(w, map[string]string{"item_seq": "must be an integer"})
		return
	}

	item, result := h.service.GetItem(r.Context(), seq)
	if !result.OK() {
		writeResult(w, result, getItemMessages)
		return
	}

	writeData(w, result, getItemMessages, item)
}

// Categories handles GET /item/categories
func (h *ItemHandler) Categories(w http.ResponseWriter, r *http.Request) {
	names, result := h.service.Categories(r.Context())
	writeData(w, result, categoryMessages, names)
}

// Search handles GET /item/search/{value}?start=&count=
func (h *ItemHandler) Search(w http.ResponseWriter, r *http.Request) {
	window, ok := parseWindow(r)
	if !ok {
		writeResult(w, entity.ResultEntityError, listingMessages)
		return
	}

	names, result := h.service.Search(r.Context(), chi.URLParam(r, "value"), window)
	writeData(w, result, listingMessages, names)
}

// SearchDetail handles GET /item/search_detail/{value}?start=&count=
func (h *ItemHandler) SearchDetail(w http.ResponseWriter, r *http.Request) {
	window, ok := parseWindow(r)
	if !ok {
		writeResult(w, entity.ResultEntityError, listingMessages)
		return
	}

	items, result := h.service.SearchDetail(r.Context(), chi.URLParam(r, "value"), window)
	writeData(w, result, listingMessages, items)
}

// Recommend handles GET /item/recommend?start=&count=
func (h *ItemHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	window, ok := parseWindow(r)
	if !ok {
		writeResult(w, entity.ResultEntityError, listingMessages)
		return
	}

	items, result := h.service.Recommend(r.Context(), window)
	writeData(w, result, listingMessages, items)
}

// Insert handles PUT /item/insert?user_id=
func (h *ItemHandler) Insert(w http.ResponseWriter, r *http.Request) {
	var req request.InsertItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	seq, result := h.service.Insert(r.Context(), r.URL.Query().Get("user_id"), &req)
	if !result.OK() {
		writeResult(w, result, insertItemMessages)
		return
	}

	writeData(w, result, insertItemMessages, response.ItemCreatedResponse{Seq: seq})
}

// Update handles POST /item/update?user_id=&item_seq=
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	seq, ok := queryInt64(r, "item_seq")
	if !ok {
		writeBadRequest(w, map[string]string{"item_seq": "must be an integer"})
		return
	}

	var req request.UpdateItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result := h.service.Update(r.Context(), r.URL.Query().Get("user_id"), seq, &req)
	writeResult(w, result, updateItemMessages)
}

// Delete handles DELETE /item/delete?user_id=&item_seq=
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	seq, ok := queryInt64(r, "item_seq")
	if !ok {
		writeBadRequest(w, map[string]string{"item_seq": "must be an integer"})
		return
	}

	result := h.service.Delete(r.Context(), r.URL.Query().Get("user_id"), seq)
	writeResult(w, result, deleteItemMessages)
}
