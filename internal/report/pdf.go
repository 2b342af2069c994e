package report

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// PDF rend le tableau en document tabulaire : titre + date en en-tête,
// auteur en pied de page, une ligne de libellés en gras puis les données.
func PDF(t Tableau) ([]byte, error) {
	m := maroto.New()

	if err := m.RegisterHeader(enTete(t)); err != nil {
		return nil, fmt.Errorf("en-tête pdf: %w", err)
	}
	if err := m.RegisterFooter(piedDePage(t)); err != nil {
		return nil, fmt.Errorf("pied de page pdf: %w", err)
	}

	libelles := row.New(8)
	for _, c := range t.Colonnes {
		libelles.Add(text.NewCol(c.Largeur, c.Titre, props.Text{Style: fontstyle.Bold, Size: 9}))
	}
	m.AddRows(libelles)

	for _, ligne := range t.Lignes {
		r := row.New(6)
		for i, cellule := range ligne {
			if i >= len(t.Colonnes) {
				break
			}
			r.Add(text.NewCol(t.Colonnes[i].Largeur, cellule, props.Text{Size: 8}))
		}
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("génération pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func enTete(t Tableau) core.Row {
	return row.New(12).Add(
		text.NewCol(8, t.Titre, props.Text{Style: fontstyle.Bold, Size: 13}),
		text.NewCol(4, t.GenereLe.Format("02/01/2006 15:04"), props.Text{Size: 8, Align: align.Right}),
	)
}

func piedDePage(t Tableau) core.Row {
	auteur := t.Auteur
	if auteur == "" {
		auteur = "gestion-pro"
	}
	return row.New(6).Add(
		text.NewCol(12, "Généré par "+auteur, props.Text{Size: 7, Align: align.Center}),
	)
}
