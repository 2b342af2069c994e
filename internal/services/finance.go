package services

import (
	"hash/fnv"
	"math"
	"sync"
	"time"

	"github.com/diewo77/gestion-pro/internal/models"
	"github.com/shopspring/decimal"
)

// ValeurMoyenneBien : revenu immobilier modélisé par client, faute de suivi
// des loyers réellement encaissés. Approximation assumée, à remplacer par une
// somme de paiements immobiliers quand ils seront saisis.
const ValeurMoyenneBien = 1_200_000

// Ratios de dépenses modélisées par secteur, appliqués au revenu du secteur.
var (
	ratioImmobilier = decimal.NewFromFloat(0.35)
	ratioVoyage     = decimal.NewFromFloat(0.25)
	ratioAssurance  = decimal.NewFromFloat(0.15)
)

// MontantsSecteur ventile un agrégat par secteur avec son total.
type MontantsSecteur struct {
	Immobilier float64 `json:"immobilier"`
	Voyage     float64 `json:"voyage"`
	Assurance  float64 `json:"assurance"`
	Total      float64 `json:"total"`
}

// BilanFinancier : valeur dérivée, jamais persistée. Invariant :
// Benefice = Revenus - Depenses par secteur et au total.
type BilanFinancier struct {
	Revenus  MontantsSecteur `json:"revenus"`
	Depenses MontantsSecteur `json:"depenses"`
	Benefice MontantsSecteur `json:"benefice"`
	// Taux de paiement en pourcentage sur les paiements voyage + assurance.
	NbPaiementsCompletes int       `json:"nb_paiements_completes"`
	NbPaiements          int       `json:"nb_paiements"`
	TauxPaiement         float64   `json:"taux_paiement"`
	CalculeLe            time.Time `json:"calcule_le"`
}

// CalculerBilan est une fonction pure de trois entrées : nombre de clients
// immobilier, paiements voyage, paiements assurance. L'arithmétique passe par
// des décimaux pour que les égalités (bénéfice, totaux) soient exactes.
func CalculerBilan(nbClientsImmobilier int, voyage, assurance []models.Payment) BilanFinancier {
	revImmo := decimal.NewFromInt(int64(nbClientsImmobilier)).Mul(decimal.NewFromInt(ValeurMoyenneBien))
	revVoyage, completesVoyage := sommeCompletes(voyage)
	revAssurance, completesAssurance := sommeCompletes(assurance)

	depImmo := revImmo.Mul(ratioImmobilier)
	depVoyage := revVoyage.Mul(ratioVoyage)
	depAssurance := revAssurance.Mul(ratioAssurance)

	b := BilanFinancier{
		Revenus:   ventiler(revImmo, revVoyage, revAssurance),
		Depenses:  ventiler(depImmo, depVoyage, depAssurance),
		Benefice:  ventiler(revImmo.Sub(depImmo), revVoyage.Sub(depVoyage), revAssurance.Sub(depAssurance)),
		CalculeLe: time.Now(),
	}

	b.NbPaiements = len(voyage) + len(assurance)
	b.NbPaiementsCompletes = completesVoyage + completesAssurance
	if b.NbPaiements > 0 {
		taux := decimal.NewFromInt(int64(b.NbPaiementsCompletes)).
			Div(decimal.NewFromInt(int64(b.NbPaiements))).
			Mul(decimal.NewFromInt(100))
		b.TauxPaiement = taux.InexactFloat64()
	}
	return b
}

func sommeCompletes(paiements []models.Payment) (decimal.Decimal, int) {
	somme := decimal.Zero
	n := 0
	for _, p := range paiements {
		if p.Statut != models.StatutPaiementComplete {
			continue
		}
		somme = somme.Add(decimal.NewFromFloat(p.Montant))
		n++
	}
	return somme, n
}

func ventiler(immo, voyage, assurance decimal.Decimal) MontantsSecteur {
	return MontantsSecteur{
		Immobilier: immo.InexactFloat64(),
		Voyage:     voyage.InexactFloat64(),
		Assurance:  assurance.InexactFloat64(),
		Total:      immo.Add(voyage).Add(assurance).InexactFloat64(),
	}
}

// BilanCache mémoïse le dernier bilan par empreinte des entrées : tant que
// les collections sources n'ont pas changé, le calcul n'est pas refait.
type BilanCache struct {
	mu         sync.Mutex
	empreinte  uint64
	bilan      BilanFinancier
	initialise bool
}

func (c *BilanCache) Bilan(nbClientsImmobilier int, voyage, assurance []models.Payment) BilanFinancier {
	fp := empreinte(nbClientsImmobilier, voyage, assurance)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialise && c.empreinte == fp {
		return c.bilan
	}
	c.bilan = CalculerBilan(nbClientsImmobilier, voyage, assurance)
	c.empreinte = fp
	c.initialise = true
	return c.bilan
}

func empreinte(nb int, voyage, assurance []models.Payment) uint64 {
	h := fnv.New64a()
	ecrireInt(h, uint64(nb))
	for _, p := range voyage {
		ecrirePaiement(h, p)
	}
	ecrireInt(h, 0xffff) // séparateur entre collections
	for _, p := range assurance {
		ecrirePaiement(h, p)
	}
	return h.Sum64()
}

func ecrirePaiement(h interface{ Write([]byte) (int, error) }, p models.Payment) {
	ecrireInt(h, uint64(p.ID))
	ecrireInt(h, math.Float64bits(p.Montant))
	_, _ = h.Write([]byte(p.Statut))
}

func ecrireInt(h interface{ Write([]byte) (int, error) }, v uint64) {
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
	_, _ = h.Write(buf[:])
}
