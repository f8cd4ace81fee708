package memory

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// nameCollator ordena nomes com colação pt-BR, para casar com a colação
// do banco nas listagens por nome (acentos antes de Z, não depois).
var nameCollator = collate.New(language.BrazilianPortuguese)

func nameLess(a, b string) bool {
	return nameCollator.CompareString(a, b) < 0
}
