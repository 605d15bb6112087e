package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const msgInvalidRequest = "잘못된 요청입니다."

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// decodeAndValidate читает JSON-тело в dst и проверяет теги validate.
// При ошибке пишет 400 с сообщением первого нарушенного поля и возвращает false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		badRequest(w, msgInvalidRequest)
		return false
	}
	if msg := validationMessage(dst); msg != "" {
		badRequest(w, msg)
		return false
	}
	return true
}

// validationMessage возвращает сообщение первого нарушенного поля или "".
// Текст берётся из тега msg поля, иначе из самой ошибки валидатора.
func validationMessage(dst any) string {
	err := validate.Struct(dst)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return msgInvalidRequest
	}
	fe := verrs[0]
	if msg := msgTag(reflect.TypeOf(dst), fe.StructNamespace()); msg != "" {
		return msg
	}
	return fe.Error()
}

// msgTag проходит по пути вида "Req.Coordinate.Lat" и читает тег msg последнего поля.
func msgTag(t reflect.Type, namespace string) string {
	parts := strings.Split(namespace, ".")
	var msg string
	for _, name := range parts[1:] {
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			return msg
		}
		f, found := t.FieldByName(name)
		if !found {
			return msg
		}
		msg = f.Tag.Get("msg")
		t = f.Type
	}
	return msg
}

// pathID читает числовой параметр маршрута.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryInt читает неотрицательный параметр запроса; пустое значение даёт def.
func queryInt(r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// pageParams читает page (с нуля) и limit из запроса.
func pageParams(r *http.Request, defLimit int) (page, limit int, ok bool) {
	page, okPage := queryInt(r, "page", 0)
	limit, okLimit := queryInt(r, "limit", defLimit)
	if !okPage || !okLimit {
		return 0, 0, false
	}
	if limit == 0 {
		limit = defLimit
	}
	return page, limit, true
}
