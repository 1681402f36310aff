package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// flexInt decodes IMPO numeric fields, which arrive either as JSON numbers
// or as quoted strings depending on the endpoint.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*n = 0
		return nil
	}

	v, err := strconv.Atoi(string(data))
	if err != nil {
		// non-numeric article numbers ("UNICO" and the like) map to zero
		*n = 0
		return nil
	}
	*n = flexInt(v)
	return nil
}

// impoNorm mirrors the JSON served by the IMPO registry for a single norm.
type impoNorm struct {
	NroNorma          flexInt       `json:"nroNorma"`
	TipoNorma         string        `json:"tipoNorma"`
	AnioNorma         flexInt       `json:"anioNorma"`
	NombreNorma       string        `json:"nombreNorma"`
	Vistos            string        `json:"vistos"`
	Firmantes         string        `json:"firmantes"`
	URLVerImagen      string        `json:"urlVerImagen"`
	FechaPromulgacion string        `json:"fechaPromulgacion"`
	FechaPublicacion  string        `json:"fechaPublicacion"`
	Articulos         []impoArticle `json:"articulos"`
}

type impoArticle struct {
	NroArticulo    flexInt `json:"nroArticulo"`
	TituloArticulo string  `json:"tituloArticulo"`
	NotasArticulo  string  `json:"notasArticulo"`
	SecArticulo    string  `json:"secArticulo"`
	TextoArticulo  string  `json:"textoArticulo"`
	URLArticulo    string  `json:"urlArticulo"`
}

// ParseNorm transforms raw IMPO norm JSON into a Norm. Article text is
// carried over as-is; embedding attributes are filled in later by the
// ingestion pipeline. Articles without text are dropped.
func ParseNorm(data []byte) (*Norm, error) {
	var raw impoNorm
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode norm JSON: %w", err)
	}

	norm := &Norm{
		NormID:        int(raw.NroNorma),
		NormType:      strings.TrimSpace(raw.TipoNorma),
		Number:        int(raw.NroNorma),
		Year:          int(raw.AnioNorma),
		Title:         strings.TrimSpace(raw.NombreNorma),
		Hearings:      strings.TrimSpace(raw.Vistos),
		Signers:       strings.TrimSpace(raw.Firmantes),
		ImpoURL:       strings.TrimSpace(raw.URLVerImagen),
		PromulgatedAt: formatDate(strings.TrimSpace(raw.FechaPromulgacion)),
		PublishedAt:   formatDate(strings.TrimSpace(raw.FechaPublicacion)),
	}

	norm.Articles = make([]Article, 0, len(raw.Articulos))
	for _, art := range raw.Articulos {
		if art.TextoArticulo == "" {
			continue
		}

		norm.Articles = append(norm.Articles, Article{
			Number:        int(art.NroArticulo),
			Title:         strings.TrimSpace(art.TituloArticulo),
			Notes:         strings.TrimSpace(art.NotasArticulo),
			References:    strings.TrimSpace(art.SecArticulo),
			Signers:       norm.Signers,
			Text:          art.TextoArticulo,
			ReferencesURL: strings.TrimSpace(art.URLArticulo),
			ImpoURL:       strings.TrimSpace(art.URLArticulo),
		})
	}

	return norm, nil
}

// formatDate converts DD/MM/YYYY to YYYY-MM-DD, returning an empty string
// for anything it cannot parse.
func formatDate(dateStr string) string {
	if dateStr == "" {
		return ""
	}

	t, err := time.Parse("02/01/2006", dateStr)
	if err != nil {
		slog.Warn("could not parse norm date, expected DD/MM/YYYY", "date", dateStr)
		return ""
	}
	return t.Format("2006-01-02")
}
