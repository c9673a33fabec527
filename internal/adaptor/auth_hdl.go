package adaptor

import (
	"fmt"
	"net/http"

	"classifieds-market/internal/data/entity"
	"classifieds-market/internal/dto/request"
	"classifieds-market/internal/dto/response"
	"classifieds-market/internal/usecase"

	"go.uber.org/zap"
)

var (
	signupMessages = messages{
		entity.ResultSuccess:  "회원가입에 성공하였습니다.",
		entity.ResultFail:     "회원가입에 실패하였습니다.",
		entity.ResultConflict: "이미 등록된 계정 또는 이메일 입니다.",
	}
	signoutMessages = messages{
		entity.ResultSuccess: "회원탈퇴에 성공하였습니다.",
		entity.ResultFail:    "회원탈퇴에 실패하였습니다.",
		entity.ResultTimeOut: "세션이 만료되었습니다.",
	}
	loginMessages = messages{
		entity.ResultSuccess: "로그인에 성공하였습니다.",
		entity.ResultFail:    "아이디 또는 비밀번호가 일치하지 않습니다.",
	}
	logoutMessages = messages{
		entity.ResultSuccess: "성공적으로 로그아웃 하였습니다",
		entity.ResultFail:    "로그아웃에 실패하였습니다.",
	}
	checkIDMessages = messages{
		entity.ResultSuccess:     "아이디가 사용 가능합니다!",
		entity.ResultConflict:    "아이디가 이미 사용중입니다.",
		entity.ResultEntityError: "아이디와 이메일중 하나만 입력하세요.",
	}
	checkEmailMessages = messages{
		entity.ResultSuccess:     "이메일이 사용 가능합니다!",
		entity.ResultConflict:    "이메일이 이미 사용중입니다.",
		entity.ResultEntityError: "아이디와 이메일중 하나만 입력하세요.",
	}
	forgotIDMessages = messages{
		entity.ResultFail:     "아이디 찾기에 실패하였습니다.",
		entity.ResultNotFound: "아이디 찾기에 실패하였습니다.",
	}
	forgotPasswordMessages = messages{
		entity.ResultSuccess:  "성공적으로 정보를 변경하였습니다.",
		entity.ResultFail:     "정보 변경에 실패하였습니다.",
		entity.ResultConflict: "이미 해당 이메일이 존재합니다.",
	}
	sendEmailMessages = messages{
		entity.ResultSuccess: "메일을 성공적으로 전송하였습니다!",
		entity.ResultFail:    "메일 전송에 실패하였습니다.",
	}
	verifyEmailMessages = messages{
		entity.ResultSuccess: "성공적으로 인증되었습니다!",
		entity.ResultFail:    "인증에 실패하였습니다.",
		entity.ResultTimeOut: "세션이 만료되었습니다.",
	}
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Signup handles PUT /user/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	writeResult(w, h.service.Signup(r.Context(), &req), signupMessages)
}

// CheckID handles POST /user/check/id?id=
func (h *AuthHandler) CheckID(w http.ResponseWriter, r *http.Request) {
	result := h.service.CheckDuplicate(r.Context(), r.URL.Query().Get("id"), "")
	writeResult(w, result, checkIDMessages)
}

// CheckEmail handles POST /user/check/email?email=
func (h *AuthHandler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	result := h.service.CheckDuplicate(r.Context(), "", r.URL.Query().Get("email"))
	writeResult(w, result, checkEmailMessages)
}

// Login handles POST /user/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	writeResult(w, h.service.Login(r.Context(), &req), loginMessages)
}

// Logout handles POST /user/logout?user_id=
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.service.Logout(r.Context(), r.URL.Query().Get("user_id")), logoutMessages)
}

// Signout handles DELETE /user/signout
func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	var req request.SignoutRequest
	if !decodeBody(w, r, &req) {
		return
	}

	writeResult(w, h.service.Signout(r.Context(), &req), signoutMessages)
}

// ForgotID handles POST /user/forgot/id?email=
func (h *AuthHandler) ForgotID(w http.ResponseWriter, r *http.Request) {
	userID, result := h.service.ForgotID(r.Context(), r.URL.Query().Get("email"))
	if !result.OK() {
		writeResult(w, result, forgotIDMessages)
		return
	}

	msgs := messages{entity.ResultSuccess: fmt.Sprintf("아이디는 %s 입니다.", userID)}
	writeData(w, result, msgs, response.ForgotIDResponse{UserID: userID})
}

// ForgotPassword handles POST /user/forgot/password
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ForgotPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	writeResult(w, h.service.ForgotPassword(r.Context(), &req), forgotPasswordMessages)
}

// SendEmail handles POST /user/email/send?email=
func (h *AuthHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.service.SendEmail(r.Context(), r.URL.Query().Get("email")), sendEmailMessages)
}

// VerifyEmail handles POST /user/email/verify?email=&verify_code=
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result := h.service.VerifyEmail(r.Context(), q.Get("email"), q.Get("verify_code"))
	writeResult(w, result, verifyEmailMessages)
}
