package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"classifieds-market/internal/data/entity"
	"classifieds-market/pkg/utils"

	"go.uber.org/zap"
)

// maxUploadBytes caps multipart bodies; the services enforce the image limit.
const maxUploadBytes = 10 << 20

const (
	msgInternal   = "서버 내부 에러가 발생하였습니다."
	msgBadRequest = "요청 형식이 올바르지 않습니다."
)

// messages is the per-endpoint text for each Result.
type messages map[entity.Result]string

func (m messages) get(result entity.Result) string {
	if msg, ok := m[result]; ok {
		return msg
	}
	switch result {
	case entity.ResultInternalServerError:
		return msgInternal
	case entity.ResultEntityError:
		return msgBadRequest
	}
	return result.String()
}

func writeResult(w http.ResponseWriter, result entity.Result, msgs messages) {
	utils.ResponseMessage(w, result.Code(), msgs.get(result))
}

func writeData(w http.ResponseWriter, result entity.Result, msgs messages, data any) {
	utils.ResponseData(w, result.Code(), msgs.get(result), data)
}

func writeBadRequest(w http.ResponseWriter, errs map[string]string) {
	utils.ResponseUnprocessable(w, msgBadRequest, errs)
}

// decodeBody decodes and validates a JSON body, answering 422 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeBadRequest(w, map[string]string{"body": "Invalid request body"})
		return false
	}

	if validationErrors := utils.ValidateStruct(v); len(validationErrors) > 0 {
		writeBadRequest(w, validationErrors)
		return false
	}

	return true
}

// queryInt64 reads a required integer query parameter.
func queryInt64(r *http.Request, key string) (int64, bool) {
	n, err := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	return n, err == nil
}

// optionalQuery returns nil for absent parameters.
func optionalQuery(r *http.Request, key string) *string {
	q := r.URL.Query()
	if !q.Has(key) {
		return nil
	}
	v := q.Get(key)
	return &v
}

// readUpload returns the bytes of a multipart file field, nil when the
// request carries none.
func readUpload(w http.ResponseWriter, r *http.Request, field string) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, _, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

// serveImage streams a stored image with a content type taken from its name.
func serveImage(w http.ResponseWriter, rc io.ReadCloser, path string, log *zap.Logger) {
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, rc); err != nil {
		log.Warn("Failed to stream image", zap.Error(err), zap.String("path", path))
	}
}
