package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Los metacaracteres de ILIKE deben buscarse como literales: un usuario que
// busca "50%" no debe obtener un match de prefijo arbitrario.
func TestEscapeLike(t *testing.T) {
	casos := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"panel", "panel"},
		{"50%", `50\%`},
		{"a_b", `a\_b`},
		{`c:\tmp`, `c:\\tmp`},
		{`100%_\`, `100\%\_\\`},
	}
	for _, c := range casos {
		assert.Equal(t, c.want, escapeLike(c.in), "in=%q", c.in)
	}
}
