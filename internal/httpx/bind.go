package httpx

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"gudang-backend/internal/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// pakai nama field JSON di peta error
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Bind mem-parse body lalu memvalidasi tag `validate`. Kegagalan keduanya
// menjadi 422 dengan peta error per field.
func Bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperror.Validation("Validasi gagal", map[string]string{
			"body": "format data tidak valid",
		})
	}
	return Validate(out)
}

func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Internal("", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, exists := fields[fe.Field()]; exists {
			continue
		}
		fields[fe.Field()] = fieldMessage(fe)
	}
	return apperror.Validation("Validasi gagal", fields)
}

func fieldMessage(fe validator.FieldError) string {
	isText := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "wajib diisi"
	case "min", "gte":
		if isText {
			return fmt.Sprintf("minimal %s karakter", fe.Param())
		}
		return fmt.Sprintf("minimal %s", fe.Param())
	case "max", "lte":
		if isText {
			return fmt.Sprintf("maksimal %s karakter", fe.Param())
		}
		return fmt.Sprintf("maksimal %s", fe.Param())
	case "gt":
		return fmt.Sprintf("harus lebih besar dari %s", fe.Param())
	case "oneof":
		return "harus salah satu dari: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "eqfield":
		return "konfirmasi tidak cocok"
	case "datetime":
		return "format tanggal harus YYYY-MM-DD"
	}
	return "tidak valid"
}

// ParamID mem-parse parameter path sebagai ID positif.
func ParamID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.Field(name, "harus berupa angka positif")
	}
	return uint(id), nil
}

// QueryID mengembalikan nil bila query kosong.
func QueryID(c *fiber.Ctx, name string) (*uint, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil, apperror.Field(name, "harus berupa angka positif")
	}
	v := uint(id)
	return &v, nil
}
