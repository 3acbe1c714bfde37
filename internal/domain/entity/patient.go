package entity

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPatient возвращается при неполных данных пациента.
var ErrInvalidPatient = errors.New("invalid patient info")

const maxPatientAge = 120

// Gender пол пациента
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// ParseGender принимает значение без учёта регистра.
func ParseGender(s string) (Gender, error) {
	for _, g := range []Gender{GenderMale, GenderFemale, GenderOther} {
		if strings.EqualFold(strings.TrimSpace(s), string(g)) {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: unknown gender %q", ErrInvalidPatient, s)
}

// Patient данные пациента для отчёта
type Patient struct {
	Name   string
	Age    int
	Gender Gender
}

// Validate проверяет, что все поля заполнены.
func (p Patient) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPatient)
	}
	if p.Age <= 0 || p.Age > maxPatientAge {
		return fmt.Errorf("%w: age must be between 1 and %d", ErrInvalidPatient, maxPatientAge)
	}
	if _, err := ParseGender(string(p.Gender)); err != nil {
		return err
	}
	return nil
}
