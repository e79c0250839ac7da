// seed_padron genera un script SQL para poblar el directorio de
// contribuyentes a partir del padrón RNC publicado por la DGII
// (TXT delimitado por "|", codificado en ISO-8859-1).
//
// Uso: go run ./cmd/seed_padron [ruta/DGII_RNC.TXT]
// Por defecto busca DGII_RNC.TXT en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_contribuyentes.sql
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Campos del padrón: RNC | RAZON SOCIAL | NOMBRE COMERCIAL | ... | ESTADO | ...
const (
	campoRNC             = 0
	campoRazonSocial     = 1
	campoNombreComercial = 2
	campoEstado          = 9
	camposMinimos        = 10
)

func main() {
	txtPath := "DGII_RNC.TXT"
	if len(os.Args) > 1 {
		txtPath = os.Args[1]
	}
	f, err := os.Open(txtPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir padrón: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_contribuyentes.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Directorio de contribuyentes (padrón RNC DGII)\n")
	out.WriteString("-- Generado desde " + filepath.Base(txtPath) + "\n\n")

	// El padrón viene en ISO-8859-1; decodificar a UTF-8 al leer.
	scanner := bufio.NewScanner(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	total := 0
	for scanner.Scan() {
		campos := strings.Split(scanner.Text(), "|")
		if len(campos) < camposMinimos {
			continue
		}
		rnc := strings.TrimSpace(campos[campoRNC])
		razon := strings.TrimSpace(campos[campoRazonSocial])
		if rnc == "" || razon == "" {
			continue
		}
		nombre := strings.TrimSpace(campos[campoNombreComercial])
		estado := normalizarEstado(campos[campoEstado])

		fmt.Fprintf(out, "INSERT INTO contribuyentes (id, rnc, razon_social, nombre_comercial, estado, activo, es_emisor_electronico, es_receptor_electronico, fecha_actualizacion)\n")
		fmt.Fprintf(out, "VALUES ('%s', '%s', '%s', %s, '%s', %t, FALSE, TRUE, now())\n",
			uuid.New().String(), escapeSQL(rnc), escapeSQL(razon), sqlNullable(nombre), estado, estado == "ACTIVO")
		out.WriteString("ON CONFLICT (rnc) DO UPDATE SET razon_social = EXCLUDED.razon_social, estado = EXCLUDED.estado, activo = EXCLUDED.activo, fecha_actualizacion = now();\n")
		total++
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Leer padrón: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generado %s: %d contribuyentes\n", outPath, total)
}

// normalizarEstado mapea los estados del padrón al catálogo interno.
func normalizarEstado(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ACTIVO", "NORMAL":
		return "ACTIVO"
	case "SUSPENDIDO":
		return "SUSPENDIDO"
	default:
		return "INACTIVO"
	}
}

func sqlNullable(s string) string {
	if s == "" {
		return "NULL"
	}
	return "'" + escapeSQL(s) + "'"
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
