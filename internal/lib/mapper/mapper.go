// Package mapper собирает входные данные запроса в типизированную структуру.
//
// Источники сливаются в порядке body, параметры пути, query: более поздний
// источник перезаписывает ключ из раннего. Неизвестные поля отбрасываются,
// строковые поля нормализуются по тегу mod, затем структура проверяется
// валидатором. Запрос не изменяется: нормализованные значения есть только в
// возвращаемой структуре.
package mapper

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-playground/validator"
	"github.com/go-viper/mapstructure/v2"

	"github.com/magabrotheeeer/auth-service/internal/lib/apperr"
)

// MaxBodyBytes ограничение на размер тела запроса.
const MaxBodyBytes = 1 << 20

const (
	modTag = "mod"
	tagTag = "json"
)

// NewValidator возвращает валидатор, который называет поля по json-тегам.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get(tagTag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ToDTO читает body, параметры пути и query запроса и возвращает проверенную структуру T.
func ToDTO[T any](r *http.Request, v *validator.Validate) (T, error) {
	var zero T
	payload, err := Payload(r)
	if err != nil {
		return zero, err
	}
	return FromMap[T](payload, v)
}

// Payload сливает источники запроса в одну карту: body, затем параметры пути, затем query.
func Payload(r *http.Request) (map[string]any, error) {
	payload, err := readBody(r)
	if err != nil {
		return nil, err
	}

	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			if key == "*" || i >= len(rctx.URLParams.Values) {
				continue
			}
			payload[key] = rctx.URLParams.Values[i]
		}
	}

	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			payload[key] = values[0]
		}
	}
	return payload, nil
}

func readBody(r *http.Request) (map[string]any, error) {
	payload := make(map[string]any)
	if r.Body == nil || r.Body == http.NoBody {
		return payload, nil
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		r.Body = http.MaxBytesReader(nil, r.Body, MaxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return nil, invalidBody(err)
		}
		for key, values := range r.PostForm {
			if len(values) > 0 {
				payload[key] = values[0]
			}
		}
		return payload, nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, invalidBody(err)
	}
	if len(body) > MaxBodyBytes {
		return nil, invalidBody(errors.New("body too large"))
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return payload, nil
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, invalidBody(err)
	}
	if payload == nil {
		payload = make(map[string]any)
	}
	return payload, nil
}

func invalidBody(cause error) error {
	e := apperr.Validation("invalid request body")
	e.Err = cause
	return e
}

// FromMap декодирует карту в T, нормализует строки и проверяет результат.
//
// Проверяются все правила, но в ошибке возвращается сообщение только первого нарушения.
func FromMap[T any](payload map[string]any, v *validator.Validate) (T, error) {
	var dto T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          tagTag,
		WeaklyTypedInput: true,
		Result:           &dto,
	})
	if err != nil {
		return dto, fmt.Errorf("mapper.FromMap: %w", err)
	}
	if err := decoder.Decode(payload); err != nil {
		e := apperr.Validation("request fields have invalid types")
		e.Err = err
		return dto, e
	}

	normalize(reflect.ValueOf(&dto).Elem())

	if err := v.Struct(dto); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) || len(errs) == 0 {
			return dto, fmt.Errorf("mapper.FromMap: %w", err)
		}
		e := apperr.Validation(message(errs[0]))
		e.Err = errs
		return dto, e
	}
	return dto, nil
}

// normalize применяет модификаторы из тега mod к строковым полям: trim, lcase, ucase.
func normalize(v reflect.Value) {
	if v.Kind() != reflect.Struct {
		return
	}
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}
		if field.Kind() == reflect.Struct {
			normalize(field)
			continue
		}
		mods := t.Field(i).Tag.Get(modTag)
		if mods == "" || field.Kind() != reflect.String {
			continue
		}
		s := field.String()
		for _, mod := range strings.Split(mods, ",") {
			switch strings.TrimSpace(mod) {
			case "trim":
				s = strings.TrimSpace(s)
			case "lcase":
				s = strings.ToLower(s)
			case "ucase":
				s = strings.ToUpper(s)
			}
		}
		field.SetString(s)
	}
}

func message(fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required":
		return fmt.Sprintf("field %s is a required field", fe.Field())
	case "email":
		return fmt.Sprintf("field %s must be a valid email", fe.Field())
	case "min":
		return fmt.Sprintf("field %s must be at least %s characters long", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("field %s must be at most %s characters long", fe.Field(), fe.Param())
	case "uuid":
		return fmt.Sprintf("field %s can contain only uuid", fe.Field())
	case "numeric":
		return fmt.Sprintf("field %s can contain only numbers", fe.Field())
	default:
		return fmt.Sprintf("field %s is not a valid", fe.Field())
	}
}
