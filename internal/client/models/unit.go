package models

import "strings"

type UnitOfMeasure struct {
	ID   ID     `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type UnitRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (r UnitRequest) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return invalid("unit code is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return invalid("unit name is required")
	}
	return nil
}
