package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
)

// Planilhas exportadas pelo Censo Escolar e pelas secretarias vêm em ISO-8859-1
// com separador ';'. Cabeçalho obrigatório: nome; opcionais: codigo_inep, endereco, telefone.
func lerEscolasCSV(r io.Reader, latin1 bool) ([]dto.EscolaRequest, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	df := dataframe.ReadCSV(r,
		dataframe.WithDelimiter(';'),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("ler planilha: %w", df.Err)
	}

	colunas := map[string][]string{}
	for _, nome := range df.Names() {
		colunas[strings.ToLower(strings.TrimSpace(nome))] = df.Col(nome).Records()
	}
	nomes, ok := colunas["nome"]
	if !ok {
		return nil, fmt.Errorf("planilha sem coluna nome")
	}
	campo := func(col string, i int) string {
		v := colunas[col]
		if i >= len(v) {
			return ""
		}
		return strings.TrimSpace(v[i])
	}

	out := make([]dto.EscolaRequest, 0, len(nomes))
	for i := range nomes {
		nome := campo("nome", i)
		if nome == "" {
			continue
		}
		out = append(out, dto.EscolaRequest{
			Nome:       nome,
			CodigoINEP: campo("codigo_inep", i),
			Endereco:   campo("endereco", i),
			Telefone:   campo("telefone", i),
		})
	}
	return out, nil
}
