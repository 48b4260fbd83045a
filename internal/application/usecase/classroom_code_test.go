package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodePrefix(t *testing.T) {
	cases := []struct {
		name   string
		prefix string
	}{
		// La palabra significativa es la última de más de dos letras.
		{"Aula de Ciencias", "CIE"},
		{"Laboratorio", "LAB"},
		{"Sala 2", "SAL"},
		// Los acentos se pliegan antes de recortar.
		{"Salón de Química", "QUI"},
		{"Informática", "INF"},
		// Sin palabra útil se cae al prefijo genérico.
		{"", "AUL"},
		{"A B", "AUL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.prefix, codePrefix(tc.name))
		})
	}
}

func TestFoldAccents(t *testing.T) {
	assert.Equal(t, "quimica", foldAccents("Química"))
	assert.Equal(t, "nino", foldAccents("Niño"))
}
