package handlers

import (
	"errors"
	"fmt"
	"regexp"

	"storefront/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var mmyyPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)

// NewValidator returns a validator with the storefront's custom rules registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	// Card expiry dates are written MM/YY.
	_ = v.RegisterValidation("mmyy", func(fl validator.FieldLevel) bool {
		return mmyyPattern.MatchString(fl.Field().String())
	})
	return v
}

// requestError is a malformed or invalid request body or parameter.
type requestError struct {
	message string
	err     error
	fields  map[string]string
}

func (e *requestError) Error() string {
	if e.err != nil {
		return e.message + ": " + e.err.Error()
	}
	return e.message
}

func (e *requestError) Unwrap() error { return e.err }

func (e *requestError) respond(c *fiber.Ctx) error {
	if e.fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": e.message,
			"errors":  e.fields,
		})
	}
	body := fiber.Map{"message": e.message}
	if e.err != nil {
		body["error"] = e.err.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}

// bindBody parses the JSON body into dst and validates it.
func bindBody(c *fiber.Ctx, validate *validator.Validate, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return &requestError{message: "Invalid request body", err: err}
	}
	return validateStruct(validate, dst)
}

func validateStruct(validate *validator.Validate, v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return &requestError{message: "Invalid request body", err: err}
	}
	errorMessages := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return &requestError{message: "Validation failed", fields: errorMessages}
}

// paramID reads a positive numeric path parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, &requestError{message: fmt.Sprintf("Invalid %s parameter", name)}
	}
	return uint(id), nil
}

func paginationFrom(c *fiber.Ctx) repositories.Pagination {
	page := repositories.Pagination{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", repositories.DefaultPageLimit),
	}
	return page.Normalize()
}

// paginated writes the list envelope shared by every listing endpoint.
func paginated(c *fiber.Ctx, data interface{}, total int64, page repositories.Pagination) error {
	return c.JSON(fiber.Map{
		"data":      data,
		"total":     total,
		"page":      page.Page,
		"pageCount": page.PageCount(total),
	})
}
