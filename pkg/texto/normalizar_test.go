package texto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizar(t *testing.T) {
	cases := map[string]string{
		"  Feijão   Carioca ": "feijao carioca",
		"AÇÚCAR Cristal":      "acucar cristal",
		"maçã":                "maca",
		"":                    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalizar(in), in)
	}
}

func TestContem(t *testing.T) {
	assert.True(t, Contem("Feijão Carioca 1kg", "feijao"))
	assert.True(t, Contem("Leite em Pó", "LEITE EM PO"))
	assert.True(t, Contem("Arroz", ""))
	assert.False(t, Contem("Arroz", "feijão"))
}
