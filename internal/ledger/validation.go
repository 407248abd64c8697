package ledger

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rogerio-castellano/stockbook/internal/models"
)

// Fields is a validated draft.
type Fields struct {
	Text        string
	Quantity    models.Amount
	CostPrice   models.Amount
	SellPrice   models.Amount
	Description string
}

type draftForm struct {
	Text      string `json:"text" validate:"required"`
	Quantity  string `json:"quantity" validate:"required"`
	CostPrice string `json:"costPrice" validate:"required"`
	SellPrice string `json:"sellPrice" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateDraft checks required fields first and numbers second, so a draft
// with both problems reports ErrMissingFields.
func ValidateDraft(d models.Draft) (Fields, error) {
	form := draftForm{
		Text:      strings.TrimSpace(d.Text),
		Quantity:  strings.TrimSpace(d.Quantity),
		CostPrice: strings.TrimSpace(d.CostPrice),
		SellPrice: strings.TrimSpace(d.SellPrice),
	}

	if err := validate.Struct(form); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return Fields{}, err
		}
		missing := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			missing = append(missing, fe.Field())
		}
		return Fields{}, &ValidationError{Reason: ErrMissingFields, Fields: missing}
	}

	f := Fields{Text: form.Text, Description: d.Description}
	var invalid []string
	for _, field := range []struct {
		name string
		raw  string
		dst  *models.Amount
	}{
		{"quantity", form.Quantity, &f.Quantity},
		{"costPrice", form.CostPrice, &f.CostPrice},
		{"sellPrice", form.SellPrice, &f.SellPrice},
	} {
		a, err := models.ParseAmount(field.raw)
		if err != nil {
			invalid = append(invalid, field.name)
			continue
		}
		*field.dst = a
	}
	if len(invalid) > 0 {
		return Fields{}, &ValidationError{Reason: ErrNotANumber, Fields: invalid}
	}
	return f, nil
}
