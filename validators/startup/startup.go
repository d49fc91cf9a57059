package startupValidator

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"venturescope/middleware"
	"venturescope/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// maxTopInvestors caps the investor list, matching the submission form.
const maxTopInvestors = 5

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report errors under the json field names the caller actually sent
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Submit validates the profile body of a fill request. Accepted input is
// passed on via c.Locals("validatedProfile"); anything mistyped or out of
// range comes back as a 400 with per-field messages.
func Submit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile := new(models.StartupProfile)

		if err := c.BodyParser(profile); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) && typeErr.Field != "" {
				return middleware.ValidationErrorResponse(c, map[string]string{
					typeErr.Field: "must be of type " + typeErr.Type.String(),
				})
			}
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(profile); err != nil {
			var fieldErrs validator.ValidationErrors
			if !errors.As(err, &fieldErrs) {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}

			errs := make(map[string]string)
			for _, fe := range fieldErrs {
				errs[fe.Field()] = validationMessage(fe)
			}
			return middleware.ValidationErrorResponse(c, errs)
		}

		// The form offers "Top 5 Investors"; extra entries are dropped, not
		// rejected, so pasted longer lists still submit cleanly.
		if len(profile.TopInvestors) > maxTopInvestors {
			profile.TopInvestors = profile.TopInvestors[:maxTopInvestors]
		}

		c.Locals("validatedProfile", profile)
		return c.Next()
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "url":
		return "Must be a valid URL!"
	case "gte":
		return "Must be at least " + fe.Param() + "!"
	case "lte":
		return "Must be at most " + fe.Param() + "!"
	default:
		return "Invalid value!"
	}
}
