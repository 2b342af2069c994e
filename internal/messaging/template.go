package messaging

import (
	"strings"
	"time"
)

// Substituer remplace les variables de gabarit dans un contenu de message :
// {prenom}, {nom}, {nom_complet} à partir du nom complet du client, et
// {heure} (HH:MM) pour les SMS. Les variables inconnues restent telles quelles.
func Substituer(contenu, nomComplet string, now time.Time) string {
	prenom, nom := decouperNom(nomComplet)
	r := strings.NewReplacer(
		"{prenom}", prenom,
		"{nom}", nom,
		"{nom_complet}", strings.TrimSpace(nomComplet),
		"{heure}", now.Format("15:04"),
	)
	return r.Replace(contenu)
}

// decouperNom : premier mot = prénom, reste = nom. Un nom d'un seul mot est
// traité comme un nom de famille sans prénom.
func decouperNom(nomComplet string) (prenom, nom string) {
	parts := strings.Fields(nomComplet)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return "", parts[0]
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
