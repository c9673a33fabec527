package adaptor

import (
	"net/http"
	"strconv"

	"classifieds-market/internal/data/entity"
	"classifieds-market/internal/dto/response"
	"classifieds-market/internal/usecase"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var (
	imageMessages = messages{
		entity.ResultSuccess:   "이미지를 조회하였습니다.",
		entity.ResultNotFound:  "이미지를 찾을 수 없습니다.",
		entity.ResultForbidden: "접근 권한이 없습니다.",
	}
	uploadImageMessages = messages{
		entity.ResultSuccess:     "이미지를 성공적으로 업로드 하였습니다.",
		entity.ResultNotFound:    "상품 정보를 찾을 수 없습니다.",
		entity.ResultForbidden:   "접근 권한이 없습니다.",
		entity.ResultConflict:    "해당 인덱스에 이미지가 존재합니다.",
		entity.ResultEntityError: "유효한 이미지가 아닙니다.",
	}
	deleteImageMessages = messages{
		entity.ResultSuccess:   "이미지를 성공적으로 제거하였습니다.",
		entity.ResultNotFound:  "이미지를 찾을 수 없습니다.",
		entity.ResultForbidden: "접근 권한이 없습니다.",
	}
)

type ItemImageHandler struct {
	service usecase.ItemImageService
	log     *zap.Logger
}

func NewItemImageHandler(service usecase.ItemImageService, log *zap.Logger) *ItemImageHandler {
	return &ItemImageHandler{
		service: service,
		log:     log.With(zap.String("handler", "item_image")),
	}
}

func urlInt64(r *http.Request, key string) (int64, bool) {
	n, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	return n, err == nil
}

// Open handles GET /item/images/?path=
func (h *ItemImageHandler) Open(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")

	rc, result := h.service.Open(r.Context(), path)
	if !result.OK() {
		writeResult(w, result, imageMessages)
		return
	}

	serveImage(w, rc, path, h.log)
}

// ListPaths handles GET /item/images/{item_seq}
func (h *ItemImageHandler) ListPaths(w http.ResponseWriter, r *http.Request) {
	itemSeq, ok := urlInt64(r, "item_seq")
	if !ok {
		writeBadRequest(w, map[string]string{"item_seq": "must be an integer"})
		return
	}

	paths, result := h.service.ListPaths(r.Context(), itemSeq)
	writeData(w, result, imageMessages, paths)
}

// GetPath handles GET /item/images/{item_seq}/{index}
func (h *ItemImageHandler) GetPath(w http.ResponseWriter, r *http.Request) {
	itemSeq, ok := urlInt64(r, "item_seq")
	index, ok2 := urlInt64(r, "index")
	if !ok || !ok2 {
		writeBadRequest(w, map[string]string{"path": "item_seq and index must be integers"})
		return
	}

	path, result := h.service.GetPath(r.Context(), itemSeq, int(index))
	if !result.OK() {
		writeResult(w, result, imageMessages)
		return
	}

	writeData(w, result, imageMessages, response.ImagePathResponse{Path: path})
}

// Upload handles PUT /item/images/{item_seq}/{index}?user_id= with multipart
// field "image".
func (h *ItemImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	itemSeq, ok := urlInt64(r, "item_seq")
	index, ok2 := urlInt64(r, "index")
	if !ok || !ok2 {
		writeBadRequest(w, map[string]string{"path": "item_seq and index must be integers"})
		return
	}

	data, err := readUpload(w, r, "image")
	if err != nil {
		h.log.Warn("Failed to read image upload", zap.Error(err))
		writeResult(w, entity.ResultEntityError, uploadImageMessages)
		return
	}

	result := h.service.Upload(r.Context(), r.URL.Query().Get("user_id"), itemSeq, int(index), data)
	writeResult(w, result, uploadImageMessages)
}

// Delete handles DELETE /item/images/{item_seq}?user_id=[&index=]
func (h *ItemImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	itemSeq, ok := urlInt64(r, "item_seq")
	if !ok {
		writeBadRequest(w, map[string]string{"item_seq": "must be an integer"})
		return
	}

	var index *int
	if raw := optionalQuery(r, "index"); raw != nil {
		n, err := strconv.Atoi(*raw)
		if err != nil {
			writeBadRequest(w, map[string]string{"index": "must be an integer"})
			return
		}
		index = &n
	}

	result := h.service.Delete(r.Context(), r.URL.Query().Get("user_id"), itemSeq, index)
	writeResult(w, result, deleteImageMessages)
}
