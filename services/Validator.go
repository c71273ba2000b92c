package services

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"luxeStore/entities"
	"luxeStore/models"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var (
	digitsRe     = regexp.MustCompile(`^[0-9]+$`)
	looseEmailRe = regexp.MustCompile(`\S+@\S+\.\S+`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "digits", func(fl validator.FieldLevel) bool {
		return digitsRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "looseemail", func(fl validator.FieldLevel) bool {
		return looseEmailRe.MatchString(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

var addressRequired = map[string]string{
	"fullName":     "Full name is required",
	"phoneNumber":  "Phone number is required",
	"addressLine1": "Address is required",
	"city":         "City is required",
	"state":        "State is required",
	"pinCode":      "PIN code is required",
}

var addressInvalid = map[string]string{
	"phoneNumber": "Please enter a valid 10-digit phone number",
	"pinCode":     "Please enter a valid 6-digit PIN code",
}

var credentialsRequired = map[string]string{
	"email":    "Email is required",
	"password": "Password is required",
}

var credentialsInvalid = map[string]string{
	"email":    "Please enter a valid email address",
	"password": "Password must be at least 6 characters",
}

// ValidateAddress returns nil when the address can be shipped to. Required
// fields are checked trimmed; the phone number may contain spaces.
func ValidateAddress(addr models.DeliveryAddress) entities.ValidationErrors {
	check := addr
	check.FullName = strings.TrimSpace(addr.FullName)
	check.PhoneNumber = strings.Join(strings.Fields(addr.PhoneNumber), "")
	check.AddressLine1 = strings.TrimSpace(addr.AddressLine1)
	check.City = strings.TrimSpace(addr.City)
	check.State = strings.TrimSpace(addr.State)
	if strings.TrimSpace(addr.PinCode) == "" {
		check.PinCode = ""
	}
	return validationErrors(validate.Struct(check), addressRequired, addressInvalid)
}

func ValidateCredentials(creds models.Credentials) entities.ValidationErrors {
	return validationErrors(validate.Struct(creds), credentialsRequired, credentialsInvalid)
}

func validationErrors(err error, required, invalid map[string]string) entities.ValidationErrors {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		logrus.Errorf("validationErrors: %v", err)
		return entities.ValidationErrors{"form": err.Error()}
	}
	out := entities.ValidationErrors{}
	for _, fe := range fieldErrs {
		field := fe.Field()
		if fe.Tag() == "required" {
			out[field] = required[field]
			continue
		}
		if msg, ok := invalid[field]; ok {
			out[field] = msg
		} else {
			out[field] = required[field]
		}
	}
	return out
}
