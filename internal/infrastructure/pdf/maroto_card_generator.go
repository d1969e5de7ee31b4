// Package pdf genera la tarjeta de contacto imprimible de perfiles y empresas.
//
// Layout (A6 horizontal):
//
//	┌───────────────────────────────────────────┐
//	│ ▌ NOMBRE                                   │
//	│ ▌ cargo / titular                          │
//	│ ───────────────────────────────────────── │
//	│  teléfono              │  ┌──────┐        │
//	│  email / web           │  │  QR  │        │
//	│                        │  └──────┘        │
//	│  URL pública                               │
//	└───────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/ophuaconnect-api/internal/application/dto"
	"github.com/jhoicas/ophuaconnect-api/internal/application/usecase"
)

var _ usecase.CardGenerator = (*MarotoCardGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorDefault = &props.Color{Red: 11, Green: 61, Blue: 145}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoCardGenerator implementa usecase.CardGenerator usando Maroto v2.
type MarotoCardGenerator struct{}

// NewMarotoCardGenerator construye el generador.
func NewMarotoCardGenerator() *MarotoCardGenerator { return &MarotoCardGenerator{} }

// GenerateCard genera el PDF y devuelve sus bytes.
func (g *MarotoCardGenerator) GenerateCard(_ context.Context, card dto.ContactCard) ([]byte, error) {
	if strings.TrimSpace(card.Title) == "" {
		return nil, fmt.Errorf("pdf: la tarjeta necesita un título")
	}
	primary := parseHexColor(card.PrimaryColor, colorDefault)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A6).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(6).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(card.Title, true).
		WithAuthor("OphuaConnect", true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(card, primary))
	m.AddRows(line.NewRow(2, props.Line{Color: primary, Thickness: 0.6}))
	m.AddRows(bodyRow(card))
	m.AddRows(footerRow(card, primary))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar tarjeta: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(card dto.ContactCard, primary *props.Color) core.Row {
	components := []core.Component{
		text.New(card.Title, props.Text{
			Style: fontstyle.Bold, Size: 15, Color: primary, Top: 1,
		}),
	}
	if card.Subtitle != "" {
		components = append(components, text.New(card.Subtitle, props.Text{
			Size: 9, Top: 10, Color: colorGray,
		}))
	}
	return row.New(18).Add(col.New(12).Add(components...))
}

// bodyRow: datos de contacto (izq) y QR hacia la URL pública (der).
func bodyRow(card dto.ContactCard) core.Row {
	contact := col.New(7)
	for i, l := range card.Lines {
		contact.Add(text.New(l, props.Text{Size: 9, Top: 3 + float64(i)*6}))
	}
	qr := col.New(5)
	if card.URL != "" {
		qr.Add(code.NewQr(card.URL, props.Rect{Percent: 90, Center: true}))
	}
	return row.New(42).Add(contact, qr)
}

func footerRow(card dto.ContactCard, primary *props.Color) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(card.URL, props.Text{Size: 7, Align: align.Center, Color: primary, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// parseHexColor "#RRGGBB" -> props.Color; acepta también #RGB, #RGBA y #RRGGBBAA ignorando el alfa.
// Devuelve fallback si el valor no es válido.
func parseHexColor(hex string, fallback *props.Color) *props.Color {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	switch len(hex) {
	case 3, 4:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 8:
		hex = hex[:6]
	case 6:
	default:
		return fallback
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return fallback
	}
	return &props.Color{Red: int(v >> 16 & 0xFF), Green: int(v >> 8 & 0xFF), Blue: int(v & 0xFF)}
}
