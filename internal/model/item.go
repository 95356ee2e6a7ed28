package model

import "strconv"

// Item is one piece of equipment on the checklist.
// ID is stable for the item's lifetime; Label is never blank.
type Item struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

var seedLabels = []string{
	"Cámara",
	"Lente(s)",
	"Tripié",
	"Fondo / backdrop",
	"Soporte de fondo",
	"Iluminación",
	"Cables y extensiones",
	"Laptop / tablet",
	"Impresora",
	"Papel fotográfico",
	"Tinta / cartuchos",
	"Props / accesorios",
	"Router / internet",
	"Pantalla de vista previa",
	"Baterías / cargadores",
	"Control remoto",
}

// DefaultTemplate returns a fresh copy of the seed checklist used when no
// template has been stored yet. Seed ids are "1".."16".
func DefaultTemplate() []Item {
	out := make([]Item, len(seedLabels))
	for i, l := range seedLabels {
		out[i] = Item{ID: strconv.Itoa(i + 1), Label: l}
	}
	return out
}

