package db

import "strings"

// Dialect adapts SQL rendered by the query package to a concrete database.
type Dialect func(sql string) string

// Verbatim leaves SQL untouched. Used for databases that accept bracketed
// identifiers.
func Verbatim(sql string) string { return sql }

// PostgresIdentifiers turns [column] identifiers into "column". Text inside
// single-quoted literals is left alone.
func PostgresIdentifiers(sql string) string {
	if !strings.ContainsRune(sql, '[') {
		return sql
	}
	var sb strings.Builder
	sb.Grow(len(sql))
	inLiteral := false
	inIdent := false
	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		switch {
		case ch == '\'' && !inIdent:
			// a doubled quote toggles twice and stays inside the literal
			inLiteral = !inLiteral
			sb.WriteByte(ch)
		case ch == '[' && !inLiteral && !inIdent:
			inIdent = true
			sb.WriteByte('"')
		case ch == ']' && inIdent:
			inIdent = false
			sb.WriteByte('"')
		default:
			sb.WriteByte(ch)
		}
	}
	return sb.String()
}

func dialectFor(name string) Dialect {
	switch name {
	case "postgres":
		return PostgresIdentifiers
	default:
		return Verbatim
	}
}
