package service

import (
	"errors"
	"strings"
)

// PropertyDTO is the flat shape exchanged at the API boundary.  It is
// deliberately decoupled from model.Property: the DTO carries only what the
// client may send or see, and IDProperty is output-only (populated by the
// service after a create, ignored on input).
type PropertyDTO struct {
	IDProperty   *uint64 `json:"idProperty,omitempty"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Price        float64 `json:"price"`
	CodeInternal string  `json:"codeInternal"`
	Year         string  `json:"year"`
	IDOwner      uint64  `json:"idOwner"`
}

// Validate enforces the boundary limits before any service call.  Lengths
// mirror the column definitions: name 100, address 250, codeInternal 10,
// year 4.
func (d *PropertyDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("name is required")
	}
	if len(d.Name) > 100 {
		return errors.New("name must be at most 100 characters")
	}
	if strings.TrimSpace(d.Address) == "" {
		return errors.New("address is required")
	}
	if len(d.Address) > 250 {
		return errors.New("address must be at most 250 characters")
	}
	if d.Price < 0 {
		return errors.New("price must not be negative")
	}
	if len(d.CodeInternal) > 10 {
		return errors.New("codeInternal must be at most 10 characters")
	}
	if len(d.Year) > 4 {
		return errors.New("year must be at most 4 characters")
	}
	if d.IDOwner == 0 {
		return errors.New("idOwner is required")
	}
	return nil
}

// PropertyAddImageDTO carries a new image for an existing property.
type PropertyAddImageDTO struct {
	File    string `json:"file"`
	Enabled bool   `json:"enabled"`
}

// Validate enforces the file reference limits.
func (d *PropertyAddImageDTO) Validate() error {
	if strings.TrimSpace(d.File) == "" {
		return errors.New("file is required")
	}
	if len(d.File) > 500 {
		return errors.New("file must be at most 500 characters")
	}
	return nil
}

// PropertyFilterDTO carries the optional catalog filters.  Empty fields
// mean "no constraint"; provided fields match as case-sensitive substrings
// combined with AND.
type PropertyFilterDTO struct {
	Name         string `query:"name"`
	Address      string `query:"address"`
	CodeInternal string `query:"codeInternal"`
	Year         string `query:"year"`
}
