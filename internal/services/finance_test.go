package services

import (
	"testing"
	"time"

	"github.com/diewo77/gestion-pro/internal/models"
)

func paiement(id uint, montant float64, statut string) models.Payment {
	return models.Payment{ID: id, Montant: montant, Statut: statut, DatePaiement: time.Now()}
}

func TestCalculerBilanScenarioNominal(t *testing.T) {
	voyage := []models.Payment{
		paiement(1, 850000, models.StatutPaiementComplete),
		paiement(2, 350000, models.StatutPaiementComplete),
	}
	b := CalculerBilan(1, voyage, nil)

	if b.Revenus.Voyage != 1200000 {
		t.Fatalf("revenus voyage: attendu 1200000, obtenu %v", b.Revenus.Voyage)
	}
	if b.Depenses.Voyage != 300000 {
		t.Fatalf("depenses voyage: attendu 300000, obtenu %v", b.Depenses.Voyage)
	}
	if b.Benefice.Voyage != 900000 {
		t.Fatalf("benefice voyage: attendu 900000, obtenu %v", b.Benefice.Voyage)
	}
	if b.Revenus.Immobilier != 1200000 {
		t.Fatalf("revenus immobilier: attendu 1200000 (1 client), obtenu %v", b.Revenus.Immobilier)
	}
}

func TestCalculerBilanInvariants(t *testing.T) {
	voyage := []models.Payment{
		paiement(1, 123460, models.StatutPaiementComplete),
		paiement(2, 99999, models.StatutPaiementPartiel),
	}
	assurance := []models.Payment{
		paiement(3, 45000, models.StatutPaiementComplete),
		paiement(4, 77777, models.StatutPaiementAttente),
	}
	b := CalculerBilan(3, voyage, assurance)

	// benefice = revenus - depenses, exactement, par secteur et au total
	cas := []struct{ rev, dep, ben float64 }{
		{b.Revenus.Immobilier, b.Depenses.Immobilier, b.Benefice.Immobilier},
		{b.Revenus.Voyage, b.Depenses.Voyage, b.Benefice.Voyage},
		{b.Revenus.Assurance, b.Depenses.Assurance, b.Benefice.Assurance},
		{b.Revenus.Total, b.Depenses.Total, b.Benefice.Total},
	}
	for i, c := range cas {
		if c.ben != c.rev-c.dep {
			t.Fatalf("cas %d: benefice %v != revenus %v - depenses %v", i, c.ben, c.rev, c.dep)
		}
	}
	// total = somme des secteurs
	if b.Revenus.Total != b.Revenus.Immobilier+b.Revenus.Voyage+b.Revenus.Assurance {
		t.Fatalf("total revenus incohérent: %v", b.Revenus)
	}
	// seuls les paiements completed comptent dans les revenus
	if b.Revenus.Voyage != 123460 {
		t.Fatalf("revenus voyage: attendu 123460, obtenu %v", b.Revenus.Voyage)
	}
	// taux = completed / total * 100 sur voyage + assurance
	if b.NbPaiements != 4 || b.NbPaiementsCompletes != 2 {
		t.Fatalf("compteurs paiements: %d/%d", b.NbPaiementsCompletes, b.NbPaiements)
	}
	if b.TauxPaiement != 50 {
		t.Fatalf("taux paiement: attendu 50, obtenu %v", b.TauxPaiement)
	}
}

func TestCalculerBilanCollectionsVides(t *testing.T) {
	b := CalculerBilan(0, nil, nil)
	if b.TauxPaiement != 0 {
		t.Fatalf("taux sur dénominateur nul: attendu 0, obtenu %v", b.TauxPaiement)
	}
	if b.Revenus.Total != 0 || b.Depenses.Total != 0 || b.Benefice.Total != 0 {
		t.Fatalf("bilan vide non nul: %+v", b)
	}
}

func TestBilanCacheMemoization(t *testing.T) {
	cache := &BilanCache{}
	voyage := []models.Payment{paiement(1, 1000, models.StatutPaiementComplete)}

	b1 := cache.Bilan(2, voyage, nil)
	b2 := cache.Bilan(2, voyage, nil)
	if !b1.CalculeLe.Equal(b2.CalculeLe) {
		t.Fatalf("entrées identiques recalculées: %v vs %v", b1.CalculeLe, b2.CalculeLe)
	}

	// un changement de statut invalide l'empreinte
	voyage[0].Statut = models.StatutPaiementAttente
	b3 := cache.Bilan(2, voyage, nil)
	if b3.Revenus.Voyage != 0 {
		t.Fatalf("cache non invalidé après mutation: %v", b3.Revenus.Voyage)
	}
}
