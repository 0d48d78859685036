package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/m04kA/InternHub-Service/internal/domain"
)

const (
	msgInternalError = "internal server error"
	maxJSONBodyBytes = 1 << 20
)

var (
	// ErrMissingParam возвращается, когда обязательный параметр отсутствует
	ErrMissingParam = errors.New("missing parameter")

	// ErrInvalidParam возвращается, когда параметр имеет неверный формат
	ErrInvalidParam = errors.New("invalid parameter")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// В сообщениях об ошибках используем имена полей из json тегов
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// DecodeJSON декодирует тело запроса, запрещая неизвестные поля
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxJSONBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return err
	}

	return nil
}

// Validate проверяет структуру по тегам validate
// Возвращает map поле -> правило для ответа клиенту
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"_": err.Error()}
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		fields[fe.Field()] = rule
	}

	return fields
}

// DecodeAndValidate декодирует JSON и проверяет его
// При ошибке сам отвечает 400 и возвращает false
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := DecodeJSON(r, dst); err != nil {
		RespondBadRequest(w, "invalid request body")
		return false
	}

	if fields := Validate(dst); fields != nil {
		RespondValidationError(w, fields)
		return false
	}

	return true
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// RespondNoContent отправляет 204
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondError отправляет ошибку в формате {"code": ..., "message": ...}
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

// RespondValidationError отправляет 400 с перечнем невалидных полей
func RespondValidationError(w http.ResponseWriter, fields map[string]string) {
	RespondJSON(w, http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: "validation failed",
		Fields:  fields,
	})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondTooManyRequests(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusTooManyRequests, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// PathInt64 извлекает положительный int64 из переменной пути mux
func PathInt64(r *http.Request, name string) (int64, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok || raw == "" {
		return 0, fmt.Errorf("%w: %s", ErrMissingParam, name)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidParam, name, raw)
	}

	return id, nil
}

// QueryInt64 извлекает необязательный положительный int64 из query
func QueryInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidParam, name, raw)
	}

	return &v, nil
}

// QueryUint64 извлекает неотрицательное число с значением по умолчанию
func QueryUint64(r *http.Request, name string, def uint64) (uint64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidParam, name, raw)
	}

	return v, nil
}

// QueryBool извлекает булев параметр с значением по умолчанию
func QueryBool(r *http.Request, name string, def bool) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q", ErrInvalidParam, name, raw)
	}

	return v, nil
}

// UploadedFile файл из multipart формы
type UploadedFile struct {
	File        multipart.File
	Filename    string
	Size        int64
	ContentType string
}

// Close закрывает файл, если он есть
func (f *UploadedFile) Close() {
	if f != nil && f.File != nil {
		_ = f.File.Close()
	}
}

// ParseMultipart разбирает multipart/form-data с ограничением размера тела
func ParseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	return r.ParseMultipartForm(maxBytes)
}

// FormFile возвращает необязательный файл из формы (nil, если поле не передано)
func FormFile(r *http.Request, field string) (*UploadedFile, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &UploadedFile{
		File:        file,
		Filename:    header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
	}, nil
}

// ToUpload конвертирует файл формы в domain.Upload (nil для отсутствующего файла)
func (f *UploadedFile) ToUpload() *domain.Upload {
	if f == nil {
		return nil
	}
	return &domain.Upload{
		Reader:      f.File,
		Filename:    f.Filename,
		Size:        f.Size,
		ContentType: f.ContentType,
	}
}

// FormString возвращает значение поля формы без пробелов по краям
func FormString(r *http.Request, field string) string {
	return strings.TrimSpace(r.FormValue(field))
}

// FormOptionalString возвращает nil для пустого поля формы
func FormOptionalString(r *http.Request, field string) *string {
	v := FormString(r, field)
	if v == "" {
		return nil
	}
	return &v
}

// FormInt64 извлекает целое из поля формы, пустое поле дает def
func FormInt64(r *http.Request, field string, def int64) (int64, error) {
	raw := FormString(r, field)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidParam, field, raw)
	}

	return v, nil
}

// FormBool извлекает булево значение из поля формы
func FormBool(r *http.Request, field string) (*bool, error) {
	raw := FormString(r, field)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidParam, field, raw)
	}

	return &v, nil
}
