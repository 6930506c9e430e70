package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestLerEscolasCSV_Latin1(t *testing.T) {
	conteudo := "nome;codigo_inep;endereco;telefone\n" +
		"E.M. João Ribeiro;15012345;Rua das Acácias, 10;(91) 3333-0000\n" +
		";;;\n" +
		"Creche Pequeno Príncipe;15054321;;\n"
	latin1, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(conteudo))
	require.NoError(t, err)

	escolas, err := lerEscolasCSV(bytes.NewReader(latin1), true)
	require.NoError(t, err)
	require.Len(t, escolas, 2)

	assert.Equal(t, "E.M. João Ribeiro", escolas[0].Nome)
	assert.Equal(t, "15012345", escolas[0].CodigoINEP)
	assert.Equal(t, "Rua das Acácias, 10", escolas[0].Endereco)
	assert.Equal(t, "(91) 3333-0000", escolas[0].Telefone)
	assert.Equal(t, "Creche Pequeno Príncipe", escolas[1].Nome)
	assert.Empty(t, escolas[1].Endereco)
}

func TestLerEscolasCSV_UTF8SoNome(t *testing.T) {
	escolas, err := lerEscolasCSV(strings.NewReader("Nome\nEscola Açaí\n"), false)
	require.NoError(t, err)
	require.Len(t, escolas, 1)
	assert.Equal(t, "Escola Açaí", escolas[0].Nome)
	assert.Empty(t, escolas[0].CodigoINEP)
}

func TestLerEscolasCSV_SemColunaNome(t *testing.T) {
	_, err := lerEscolasCSV(strings.NewReader("escola;inep\nX;1\n"), false)
	assert.Error(t, err)
}
