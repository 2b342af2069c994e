// Package i18n fournit un catalogue fr/en minimal pour les messages exposés
// aux utilisateurs (notifications, confirmations). Français par défaut.
package i18n

import "strings"

var translations = map[string]map[string]string{
	"fr": {
		"required":              "Requis",
		"invalid":               "Invalide",
		"saved":                 "Enregistré",
		"deleted":               "Supprimé",
		"notif_relance_titre":   "Relance à effectuer",
		"notif_relance_message": "Relance prévue aujourd'hui pour %s",
		"notif_retard_titre":    "Relance en retard",
		"notif_retard_message":  "Relance en retard de %d jour(s) pour %s",
		"notif_nouveau_titre":   "Nouveau client",
		"notif_nouveau_message": "%s a été ajouté récemment",
		"notif_resume_titre":    "Résumé d'activité",
		"notif_resume_message":  "%d clients, %d suivis actifs, %d prospects",
	},
	"en": {
		"required":              "Required",
		"invalid":               "Invalid",
		"saved":                 "Saved",
		"deleted":               "Deleted",
		"notif_relance_titre":   "Follow-up due",
		"notif_relance_message": "Follow-up due today for %s",
		"notif_retard_titre":    "Overdue follow-up",
		"notif_retard_message":  "Follow-up overdue by %d day(s) for %s",
		"notif_nouveau_titre":   "New client",
		"notif_nouveau_message": "%s was added recently",
		"notif_resume_titre":    "Activity summary",
		"notif_resume_message":  "%d clients, %d active follow-ups, %d prospects",
	},
}

// DetectLanguage extrait la langue d'un en-tête Accept-Language. Seul
// l'anglais est distingué ; tout le reste retombe sur le français.
func DetectLanguage(acceptLanguage string) string {
	al := strings.ToLower(strings.TrimSpace(acceptLanguage))
	if strings.HasPrefix(al, "en") {
		return "en"
	}
	return "fr"
}

// T traduit un code. Langue inconnue -> français ; code inconnu -> le code
// lui-même, pour que l'oubli d'une entrée reste visible sans casser l'appel.
func T(lang, code string) string {
	m, ok := translations[lang]
	if !ok {
		m = translations["fr"]
	}
	if v, ok := m[code]; ok {
		return v
	}
	if v, ok := translations["fr"][code]; ok {
		return v
	}
	return code
}
