package sync

import "strings"

// recordIDTrimSet: puntuación que puede envolver un token numérico
// ("(1001)", "#1001", "1001."). El guion queda afuera a propósito:
// "A-7" no es un token numérico standalone.
const recordIDTrimSet = ".,;:!?()[]{}<>\"'#"

// ExtractRecordID recupera el record id del registry embebido en texto libre
// (el campo description del evento). Regla única y determinista, compartida
// por los dos sentidos del sync: se tokeniza por espacios, un token cuenta
// solo si queda íntegramente numérico tras sacarle puntuación envolvente, y
// gana el ÚLTIMO token numérico standalone (tolera boilerplate con números
// al principio de la descripción). Dígitos adentro de tokens alfanuméricos
// nunca matchean.
func ExtractRecordID(text string) (string, bool) {
	last := ""
	for _, field := range strings.Fields(text) {
		tok := strings.Trim(field, recordIDTrimSet)
		if tok != "" && isAllDigits(tok) {
			last = tok
		}
	}
	return last, last != ""
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
