// File: internal/validation/validator.go
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iyunix/go-smsproxy/internal/domain"
)

const (
	FieldCountry    = "country"
	FieldService    = "service"
	FieldActivation = "activation"
	FieldOperation  = "operation"

	// validator/v10 ships a country_code alias, so these names must stay unique.
	tagAllowedCountry = "allowed_country"
	tagAllowedService = "allowed_service"
)

// Rules per field, in validator tag syntax. Each rule is checked on its own so
// a value can collect more than one message.
var (
	countryRules    = []string{"len=2", tagAllowedCountry}
	serviceRules    = []string{"len=2", tagAllowedService}
	activationRules = []string{"required"}
)

// ValidationError carries every rule violation, keyed by query parameter.
type ValidationError struct {
	Errors map[string][]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e.Errors[field], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	if e.Errors == nil {
		e.Errors = make(map[string][]string)
	}
	e.Errors[field] = append(e.Errors[field], message)
}

// Validator checks inbound parameters against the per-operation rules and the
// configured allow-lists. It holds no mutable state after construction.
type Validator struct {
	validate  *validator.Validate
	countries map[string]struct{}
	services  map[string]struct{}
}

// New builds a Validator bound to the given allow-lists.
func New(allowedCountries, allowedServices map[string]struct{}) (*Validator, error) {
	v := &Validator{
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		countries: allowedCountries,
		services:  allowedServices,
	}
	if err := v.validate.RegisterValidation(tagAllowedCountry, inSet(v.countries)); err != nil {
		return nil, fmt.Errorf("register %s: %w", tagAllowedCountry, err)
	}
	if err := v.validate.RegisterValidation(tagAllowedService, inSet(v.services)); err != nil {
		return nil, fmt.Errorf("register %s: %w", tagAllowedService, err)
	}
	return v, nil
}

func inSet(set map[string]struct{}) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, ok := set[fl.Field().String()]
		return ok
	}
}

// Validate returns the typed request for op, or a *ValidationError.
// getNumber parameters are optional but checked when present, even if empty.
func (v *Validator) Validate(op domain.Operation, query url.Values) (domain.ActivationRequest, error) {
	req := domain.ActivationRequest{Operation: op}
	verr := &ValidationError{}

	switch {
	case op == domain.OpGetNumber:
		if query.Has(FieldCountry) {
			req.Country = query.Get(FieldCountry)
			v.check(verr, FieldCountry, req.Country, countryRules)
		}
		if query.Has(FieldService) {
			req.Service = query.Get(FieldService)
			v.check(verr, FieldService, req.Service, serviceRules)
		}
	case op.RequiresActivation():
		req.Activation = strings.TrimSpace(query.Get(FieldActivation))
		v.check(verr, FieldActivation, req.Activation, activationRules)
	default:
		verr.add(FieldOperation, fmt.Sprintf("The selected %s is invalid.", FieldOperation))
	}

	if len(verr.Errors) > 0 {
		return domain.ActivationRequest{}, verr
	}
	return req, nil
}

func (v *Validator) check(verr *ValidationError, field, value string, rules []string) {
	for _, rule := range rules {
		err := v.validate.Var(value, rule)
		if err == nil {
			continue
		}
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			verr.add(field, fmt.Sprintf("The %s field is invalid.", field))
			continue
		}
		for _, fe := range fieldErrs {
			verr.add(field, message(field, fe))
		}
	}
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "len":
		return fmt.Sprintf("The %s field must be %s characters.", field, fe.Param())
	case tagAllowedCountry, tagAllowedService:
		return fmt.Sprintf("The selected %s is invalid.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}
