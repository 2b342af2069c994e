package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Classeur rend un ou plusieurs tableaux en classeur Excel, une feuille par
// tableau. La feuille par défaut du fichier vierge est supprimée.
func Classeur(tableaux ...Tableau) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tableaux {
		nom := nomFeuille(t.Titre, i)
		idx, err := f.NewSheet(nom)
		if err != nil {
			return nil, fmt.Errorf("feuille %q: %w", nom, err)
		}
		if i == 0 {
			f.SetActiveSheet(idx)
		}
		for c, colonne := range t.Colonnes {
			cell, err := excelize.CoordinatesToCellName(c+1, 1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(nom, cell, colonne.Titre); err != nil {
				return nil, err
			}
		}
		for l, ligne := range t.Lignes {
			for c, valeur := range ligne {
				cell, err := excelize.CoordinatesToCellName(c+1, l+2)
				if err != nil {
					return nil, err
				}
				if err := f.SetCellValue(nom, cell, valeur); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("écriture classeur: %w", err)
	}
	return buf.Bytes(), nil
}

// nomFeuille borne le titre aux 31 caractères autorisés par le format.
func nomFeuille(titre string, i int) string {
	if titre == "" {
		return fmt.Sprintf("Feuille%d", i+1)
	}
	if len(titre) > 31 {
		return titre[:31]
	}
	return titre
}
