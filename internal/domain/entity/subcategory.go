package entity

import (
	"regexp"
	"strings"
	"time"
)

// Subcategory segundo nivel del catálogo maestro. El código sigue el formato
// <CAT>-NN[-X] donde <CAT> es el código de la categoría padre.
type Subcategory struct {
	Code         string // único (ej. "EL-01" o "EL-01-A")
	CategoryCode string
	Name         string
	Sort         int
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

var subcategoryCodeRe = regexp.MustCompile(`^[A-Z0-9]+-[0-9]{2}(-[A-Z0-9]+)?$`)

// ValidSubcategoryCode valida sintácticamente el formato <CAT>-NN[-X] y que el
// prefijo coincida con la categoría padre.
func ValidSubcategoryCode(code, categoryCode string) bool {
	if !subcategoryCodeRe.MatchString(code) {
		return false
	}
	return strings.HasPrefix(code, categoryCode+"-")
}
