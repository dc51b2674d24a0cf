package user

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// fieldRule describes one field of the user payload. Rules are evaluated in
// declaration order and only the first failure is reported.
type fieldRule struct {
	field    string
	required bool
	check    func(value any) error
}

var userFieldRules = []fieldRule{
	{
		field:    "name",
		required: true,
		check: func(value any) error {
			s, ok := value.(string)
			if !ok {
				return errors.New(`"name" should be a type of 'text'`)
			}
			if len(strings.TrimSpace(s)) < 3 {
				return errors.New(`"name" should have a minimum length of 3`)
			}
			return nil
		},
	},
	{
		field:    "email",
		required: true,
		check: func(value any) error {
			s, ok := value.(string)
			if !ok {
				return errors.New(`"email" should be a type of 'text'`)
			}
			if !emailPattern.MatchString(s) {
				return errors.New(`"email" must be a valid email`)
			}
			return nil
		},
	},
	{
		field:    "age",
		required: false,
		check: func(value any) error {
			n, ok := value.(float64)
			if !ok {
				return errors.New(`"age" should be a type of 'number'`)
			}
			if n < 0 {
				return errors.New(`"age" should be greater than or equal to 0`)
			}
			return nil
		},
	},
}

func validatePayload(body map[string]any, requireAll bool) error {
	for _, rule := range userFieldRules {
		value, present := body[rule.field]
		if !present || value == nil {
			if requireAll && rule.required {
				return errors.New(`"` + rule.field + `" is a required field`)
			}
			continue
		}
		if err := rule.check(value); err != nil {
			return err
		}
	}
	return nil
}

// ValidateCreate checks a create payload: name and email are required, age is
// optional. Pure check over the decoded body.
func ValidateCreate(body map[string]any) error {
	return validatePayload(body, true)
}

// ValidateUpdate checks a partial update payload. Every field is optional and
// an empty body is valid.
func ValidateUpdate(body map[string]any) error {
	return validatePayload(body, false)
}

func decodeBody(c *fiber.Ctx) (map[string]any, error) {
	body := map[string]any{}
	raw := c.Body()
	if len(raw) == 0 {
		return body, nil
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, errors.New("request body must be a JSON object")
	}
	return body, nil
}

// ValidateCreateUser rejects malformed create bodies before the handler runs.
func ValidateCreateUser(c *fiber.Ctx) error {
	body, err := decodeBody(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := ValidateCreate(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Next()
}

// ValidateUpdateUser rejects malformed update bodies before the handler runs.
func ValidateUpdateUser(c *fiber.Ctx) error {
	body, err := decodeBody(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := ValidateUpdate(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Next()
}

// ValidateID rejects requests whose :id path parameter is not a valid
// identifier token, so malformed ids never reach the store.
func ValidateID(c *fiber.Ctx) error {
	if !IsValidID(c.Params("id")) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID format"})
	}
	return c.Next()
}
