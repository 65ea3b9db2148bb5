package handler

import (
	dErrors "github.com/Kamduis/name-combo/pkg/domain-errors"
	"github.com/Kamduis/name-combo/pkg/person"
)

// RegisterPersonRequest is the HTTP request body for POST /persons.
type RegisterPersonRequest struct {
	Title      string   `json:"title,omitempty"`
	GivenNames []string `json:"given_names"`
	FamilyName string   `json:"family_name,omitempty"`
	Suffix     string   `json:"suffix,omitempty"`
	Gender     string   `json:"gender,omitempty"`

	// Parsed values (populated by Validate)
	parsedName   person.Name
	parsedGender person.Gender
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *RegisterPersonRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	name, err := person.New(r.GivenNames, r.FamilyName,
		person.WithTitle(r.Title),
		person.WithSuffix(r.Suffix),
		person.AllowEmptyFamilyName(),
	)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, err.Error())
	}
	r.parsedName = name

	gender, err := person.ParseGender(r.Gender)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, err.Error())
	}
	r.parsedGender = gender

	return nil
}

// ParsedName returns the validated name.
func (r *RegisterPersonRequest) ParsedName() person.Name {
	return r.parsedName
}

// ParsedGender returns the validated gender.
func (r *RegisterPersonRequest) ParsedGender() person.Gender {
	return r.parsedGender
}

// RenamePersonRequest is the HTTP request body for PUT /persons/{id}/name.
type RenamePersonRequest struct {
	Title      string   `json:"title,omitempty"`
	GivenNames []string `json:"given_names"`
	FamilyName string   `json:"family_name,omitempty"`
	Suffix     string   `json:"suffix,omitempty"`

	parsedName person.Name
}

// Validate validates and parses the request.
func (r *RenamePersonRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	name, err := person.New(r.GivenNames, r.FamilyName,
		person.WithTitle(r.Title),
		person.WithSuffix(r.Suffix),
		person.AllowEmptyFamilyName(),
	)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, err.Error())
	}
	r.parsedName = name

	return nil
}

// ParsedName returns the validated replacement name.
func (r *RenamePersonRequest) ParsedName() person.Name {
	return r.parsedName
}
