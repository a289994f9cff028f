// Package envstruct populates tagged struct fields from environment
// variables.
package envstruct

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrEnvNotSet    = errors.New("environment variable not set")
	ErrInvalidValue = errors.New("v must be a pointer to a struct")
)

// Populate fills the fields of the pointer to struct v from the environment.
//
// lookupEnv has the same signature as [os.LookupEnv]. Fields tagged with
// `env:"ENV_VAR"` receive the value of ENV_VAR. When the variable is unset,
// the `envDefault:"value"` tag supplies a fallback; without one, the field
// contributes an ErrEnvNotSet to the joined error. Only string fields are
// supported.
func Populate(v any, lookupEnv func(string) (string, bool)) error {
	ptrRef := reflect.ValueOf(v)
	if ptrRef.Kind() != reflect.Ptr {
		return fmt.Errorf("%w: not pointer: %v", ErrInvalidValue, v)
	}
	ref := ptrRef.Elem()
	if ref.Kind() != reflect.Struct {
		return fmt.Errorf("%w: not struct: %v", ErrInvalidValue, v)
	}

	refType := ref.Type()
	var errorList []error
	for i := range refType.NumField() {
		if err := populateField(ref.Field(i), refType.Field(i), lookupEnv); err != nil {
			errorList = append(errorList, err)
		}
	}

	return errors.Join(errorList...)
}

func populateField(
	field reflect.Value,
	fieldType reflect.StructField,
	lookupEnv func(string) (string, bool),
) error {
	envVarName, ok := fieldType.Tag.Lookup("env")
	if !ok {
		return nil
	}

	if !field.CanSet() {
		return fmt.Errorf("%w: cannot set field: %s", ErrInvalidValue, fieldType.Name)
	}
	if field.Kind() != reflect.String {
		return fmt.Errorf("%w: only strings are supported - field: %s, type: %s, env: %s",
			ErrInvalidValue, fieldType.Name, field.Kind().String(), envVarName)
	}

	val, ok := lookupEnv(envVarName)
	if !ok {
		if val, ok = fieldType.Tag.Lookup("envDefault"); !ok {
			return fmt.Errorf("%w: %s", ErrEnvNotSet, envVarName)
		}
	}
	field.SetString(val)

	return nil
}
