// Package report assemble des tableaux en mémoire en PDF ou classeur Excel,
// livrés en téléchargement direct (jamais persistés côté serveur).
package report

import (
	"fmt"
	"time"

	"github.com/diewo77/gestion-pro/internal/models"
	"github.com/diewo77/gestion-pro/internal/services"
)

// Colonne : titre et largeur (en douzièmes de page pour le PDF).
type Colonne struct {
	Titre   string
	Largeur int
}

// Tableau : données tabulaires prêtes à exporter, avec les métadonnées
// d'en-tête et de pied de page.
type Tableau struct {
	Titre    string
	Colonnes []Colonne
	Lignes   [][]string
	GenereLe time.Time
	Auteur   string
}

func montant(v float64) string { return fmt.Sprintf("%.0f", v) }

// TableauClients prépare l'export de la liste des clients.
func TableauClients(clients []models.Client, genereLe time.Time) Tableau {
	t := Tableau{
		Titre: "Liste des clients",
		Colonnes: []Colonne{
			{Titre: "Nom", Largeur: 3},
			{Titre: "Email", Largeur: 3},
			{Titre: "Téléphone", Largeur: 2},
			{Titre: "Secteurs", Largeur: 2},
			{Titre: "Statut", Largeur: 2},
		},
		GenereLe: genereLe,
	}
	for _, c := range clients {
		t.Lignes = append(t.Lignes, []string{
			c.NomComplet(), c.Email, c.Telephone,
			joinSecteurs(c.Secteurs), c.Statut,
		})
	}
	return t
}

// TableauPaiements prépare l'export des paiements.
func TableauPaiements(paiements []models.Payment, genereLe time.Time) Tableau {
	t := Tableau{
		Titre: "Paiements",
		Colonnes: []Colonne{
			{Titre: "Référence", Largeur: 3},
			{Titre: "Secteur", Largeur: 2},
			{Titre: "Montant", Largeur: 2},
			{Titre: "Statut", Largeur: 2},
			{Titre: "Date", Largeur: 3},
		},
		GenereLe: genereLe,
	}
	for _, p := range paiements {
		t.Lignes = append(t.Lignes, []string{
			p.Reference, p.Secteur, montant(p.Montant), p.Statut,
			p.DatePaiement.Format("02/01/2006"),
		})
	}
	return t
}

// TableauBilan prépare l'export du bilan financier dérivé.
func TableauBilan(b services.BilanFinancier) Tableau {
	return Tableau{
		Titre: "Bilan financier",
		Colonnes: []Colonne{
			{Titre: "Secteur", Largeur: 3},
			{Titre: "Revenus", Largeur: 3},
			{Titre: "Dépenses", Largeur: 3},
			{Titre: "Bénéfice", Largeur: 3},
		},
		Lignes: [][]string{
			{"Immobilier", montant(b.Revenus.Immobilier), montant(b.Depenses.Immobilier), montant(b.Benefice.Immobilier)},
			{"Voyage", montant(b.Revenus.Voyage), montant(b.Depenses.Voyage), montant(b.Benefice.Voyage)},
			{"Assurance", montant(b.Revenus.Assurance), montant(b.Depenses.Assurance), montant(b.Benefice.Assurance)},
			{"Total", montant(b.Revenus.Total), montant(b.Depenses.Total), montant(b.Benefice.Total)},
		},
		GenereLe: b.CalculeLe,
	}
}

func joinSecteurs(s models.StringList) string {
	out := ""
	for i, v := range s {
		if i > 0 {
			out += ", "
		}
		out += v
	}
	return out
}
