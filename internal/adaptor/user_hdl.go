package adaptor

import (
	"net/http"

	"classifieds-market/internal/data/entity"
	"classifieds-market/internal/dto/request"
	"classifieds-market/internal/dto/response"
	"classifieds-market/internal/usecase"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var (
	userInfoMessages = messages{
		entity.ResultSuccess:   "유저 정보를 조회하였습니다.",
		entity.ResultNotFound:  "조건을 만족하는 유저가 없습니다.",
		entity.ResultForbidden: "접근 권한이 없습니다.",
	}
	updateInfoMessages = messages{
		entity.ResultSuccess:  "성공적으로 정보를 변경하였습니다.",
		entity.ResultFail:     "정보 변경에 실패하였습니다.",
		entity.ResultConflict: "이미 해당 이메일이 존재합니다.",
		entity.ResultTimeOut:  "세션이 만료되었습니다.",
	}
	profileMessages = messages{
		entity.ResultSuccess:  "이미지를 성공적으로 변경하였습니다!",
		entity.ResultFail:     "이미지 변경에 실패하였습니다.",
		entity.ResultTimeOut:  "세션이 만료되었습니다.",
		entity.ResultNotFound: "이미지를 찾을 수 없습니다.",
	}
	savedItemsMessages = messages{
		entity.ResultSuccess: "찜한 상품을 조회하였습니다.",
		entity.ResultFail:    "유저 아이디가 잘못 입력되었습니다.",
	}
	toggleSavedMessages = messages{
		entity.ResultSuccess: "성공적으로 변경하였습니다.",
		entity.ResultFail:    "변경에 실패하였습니다.",
	}
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// GetInfo handles GET /user/{user_id} (api key)
func (h *UserHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	info, result := h.service.GetInfo(r.Context(), chi.URLParam(r, "user_id"))
	if !result.OK() {
		writeResult(w, result, userInfoMessages)
		return
	}

	writeData(w, result, userInfoMessages, info)
}

// UpdateInfo handles POST /user/update?user_id=&name=&email=&phone=
func (h *UserHandler) UpdateInfo(w http.ResponseWriter, r *http.Request) {
	req := request.UpdateInfoRequest{
		Name:  optionalQuery(r, "name"),
		Email: optionalQuery(r, "email"),
		Phone: optionalQuery(r, "phone"),
	}

	result := h.service.UpdateInfo(r.Context(), r.URL.Query().Get("user_id"), &req)
	writeResult(w, result, updateInfoMessages)
}

// Profile handles GET /user/profile?path=
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")

	rc, result := h.service.OpenProfileImage(r.Context(), path)
	if !result.OK() {
		writeResult(w, result, profileMessages)
		return
	}

	serveImage(w, rc, path, h.log)
}

// UpdateProfile handles POST /user/profile/update?user_id= with multipart
// field "file". A request without a file clears the picture.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	data, err := readUpload(w, r, "file")
	if err != nil {
		h.log.Warn("Failed to read profile upload", zap.Error(err))
		writeResult(w, entity.ResultEntityError, profileMessages)
		return
	}

	result := h.service.UpdateProfileImage(r.Context(), r.URL.Query().Get("user_id"), data)
	writeResult(w, result, profileMessages)
}

// SavedItems handles GET /user/items?user_id=
func (h *UserHandler) SavedItems(w http.ResponseWriter, r *http.Request) {
	items, result := h.service.ListSavedItems(r.Context(), r.URL.Query().Get("user_id"))
	if !result.OK() {
		writeResult(w, result, savedItemsMessages)
		return
	}

	writeData(w, result, savedItemsMessages, items)
}

// ToggleSavedItem handles POST /user/items/update?user_id=&item_seq=
func (h *UserHandler) ToggleSavedItem(w http.ResponseWriter, r *http.Request) {
	itemSeq, ok := queryInt64(r, "item_seq")
	if !ok {
		writeBadRequest(w, map[string]string{"item_seq": "must be an integer"})
		return
	}

	saved, result := h.service.ToggleSavedItem(r.Context(), r.URL.Query().Get("user_id"), itemSeq)
	if !result.OK() {
		writeResult(w, result, toggleSavedMessages)
		return
	}

	writeData(w, result, toggleSavedMessages, response.SavedItemResponse{ItemSeq: itemSeq, Saved: saved})
}
