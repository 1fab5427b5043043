package models

import (
	"strings"

	"gorm.io/gorm"
)

// Category is a spending category a budget line can reference.
type Category struct {
	DefaultModel
	Name  string `json:"name" gorm:"uniqueIndex"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
	Note  string `json:"note,omitempty"`
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)

	return nil
}
