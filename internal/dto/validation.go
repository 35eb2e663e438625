package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerOnce sync.Once

// RegisterValidators configures gin's validator engine: decimals validate as numbers, field
// names are reported by their json name, and percentage scholarships are capped at 100.
// Money fields carry at most two decimal places and required dates must not be empty.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
		v.RegisterStructValidation(validateFeeStructureRequest, FeeStructureRequest{})
		v.RegisterStructValidation(validateCreateInvoiceRequest, CreateInvoiceRequest{})
		v.RegisterStructValidation(validateCreatePlanRequest, CreatePlanRequest{})
	})
}

// moneyScale matches the NUMERIC(12, 2) columns amounts are stored in.
const moneyScale = 2

func validateFeeStructureRequest(sl validator.StructLevel) {
	req := sl.Current().Interface().(FeeStructureRequest)
	if req.ScholarshipType == domain.ScholarshipPercentage && req.Scholarship != nil &&
		req.Scholarship.GreaterThan(decimal.NewFromInt(100)) {
		sl.ReportError(req.Scholarship, "scholarship", "Scholarship", "scholarship_pct", "")
	}
	reportExcessScale(sl, req.MonthlyFee, "monthlyFee", "MonthlyFee")
	reportExcessScale(sl, req.Scholarship, "scholarship", "Scholarship")
	reportEmptyDate(sl, req.EffectiveFrom, "effectiveFrom", "EffectiveFrom")
}

func validateCreateInvoiceRequest(sl validator.StructLevel) {
	req := sl.Current().Interface().(CreateInvoiceRequest)
	reportExcessScale(sl, req.Amount, "amount", "Amount")
	reportEmptyDate(sl, req.DueDate, "dueDate", "DueDate")
}

func validateCreatePlanRequest(sl validator.StructLevel) {
	req := sl.Current().Interface().(CreatePlanRequest)
	reportExcessScale(sl, req.PricePerMonth, "pricePerMonth", "PricePerMonth")
}

func reportExcessScale(sl validator.StructLevel, d *decimal.Decimal, field, structField string) {
	if d != nil && !d.Equal(d.Round(moneyScale)) {
		sl.ReportError(*d, field, structField, "decimal_places", fmt.Sprint(moneyScale))
	}
}

// reportEmptyDate flags a date sent as "". A missing date is left to the required tag.
func reportEmptyDate(sl validator.StructLevel, d *Date, field, structField string) {
	if d != nil && d.IsZero() {
		sl.ReportError(*d, field, structField, "required", "")
	}
}

// ValidationMessage turns a binding error into the first human-readable failure.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			return fmt.Sprintf("%q is required", field)
		case "email":
			return fmt.Sprintf("%q must be a valid email", field)
		case "min":
			if fe.Kind() == reflect.String {
				return fmt.Sprintf("%q length must be at least %s characters long", field, fe.Param())
			}
			return fmt.Sprintf("%q must be greater than or equal to %s", field, fe.Param())
		case "max", "lte":
			if fe.Kind() == reflect.String {
				return fmt.Sprintf("%q length must be less than or equal to %s characters long", field, fe.Param())
			}
			return fmt.Sprintf("%q must be less than or equal to %s", field, fe.Param())
		case "gte":
			return fmt.Sprintf("%q must be greater than or equal to %s", field, fe.Param())
		case "gt":
			return fmt.Sprintf("%q must be greater than %s", field, fe.Param())
		case "oneof":
			return fmt.Sprintf("%q must be one of [%s]", field, strings.ReplaceAll(fe.Param(), " ", ", "))
		case "len":
			return fmt.Sprintf("%q length must be %s characters long", field, fe.Param())
		case "decimal_places":
			return fmt.Sprintf("%q must have at most %s decimal places", field, fe.Param())
		case "scholarship_pct":
			return "percentage scholarship cannot exceed 100"
		default:
			return fmt.Sprintf("%q is invalid", field)
		}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("%q must be a %s", typeErr.Field, typeErr.Type.String())
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return "Invalid JSON body"
	}
	if errors.Is(err, io.EOF) {
		return "Request body is required"
	}
	if err != nil {
		return err.Error()
	}
	return "Invalid request"
}
