// Package models defines the gorm mappings of the authors, books and library
// tables.
package models
