package messaging

import (
	"testing"
	"time"
)

func TestSubstituer(t *testing.T) {
	now := time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)
	cases := []struct {
		nom     string
		contenu string
		client  string
		attendu string
	}{
		{"toutes les variables", "Bonjour {prenom} {nom}, dossier de {nom_complet} à {heure}",
			"Alice Durand", "Bonjour Alice Durand, dossier de Alice Durand à 14:30"},
		{"nom d'un seul mot", "Cher {prenom}{nom}", "Durand", "Cher Durand"},
		{"nom composé", "{nom}", "Jean de La Fontaine", "de La Fontaine"},
		{"variable inconnue conservée", "Ref {dossier}", "Alice Durand", "Ref {dossier}"},
		{"contenu sans variable", "Bonjour", "Alice Durand", "Bonjour"},
		{"client vide", "{prenom}|{nom}|{nom_complet}", "", "||"},
	}
	for _, c := range cases {
		if got := Substituer(c.contenu, c.client, now); got != c.attendu {
			t.Fatalf("%s: attendu %q, obtenu %q", c.nom, c.attendu, got)
		}
	}
}
