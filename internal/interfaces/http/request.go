package http

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/supplychain-api/internal/application/listing"
)

var errInvalidBody = errors.New("cuerpo inválido")

// validationError campos que no pasan las reglas `validate` del DTO.
type validationError struct {
	fields map[string]string
}

func (e *validationError) Error() string {
	names := make([]string, 0, len(e.fields))
	for k := range e.fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return "campos inválidos: " + strings.Join(names, ", ")
}

var validate = newValidator()

// newValidator reporta los campos con su nombre JSON/query y no con el del struct.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	return v
}

func validateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validación: %w", err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		fields[fe.Namespace()[strings.Index(fe.Namespace(), ".")+1:]] = rule
	}
	return &validationError{fields: fields}
}

// bind parsea el body JSON en out y aplica las reglas `validate`.
func bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	return validateStruct(out)
}

// listQuery lee ?search=&status=&sort=&order=&limit=&offset=.
func listQuery(c *fiber.Ctx) (listing.Query, error) {
	var q listing.Query
	if err := c.QueryParser(&q); err != nil {
		return q, &validationError{fields: map[string]string{"query": err.Error()}}
	}
	if err := validateStruct(&q); err != nil {
		return q, err
	}
	q.Normalize()
	return q, nil
}
