package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/farmacia-pro/pkg/normalize"
)

func TestSearch_QuitaTildesYMayusculas(t *testing.T) {
	casos := map[string]string{
		"Acetaminofén":      "acetaminofen",
		"  IBUPROFENO 400 ": "ibuprofeno 400",
		"Loratadina":        "loratadina",
		"Ácido Fólico":      "acido folico",
		"":                  "",
	}
	for in, want := range casos {
		assert.Equal(t, want, normalize.Search(in), "entrada: %q", in)
	}
}
