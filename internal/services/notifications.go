package services

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/diewo77/gestion-pro/internal/i18n"
	"github.com/diewo77/gestion-pro/internal/models"
)

const (
	NotifRelance       = "relance"
	NotifRetard        = "retard"
	NotifNouveauClient = "nouveau_client"
	NotifResume        = "resume"
)

// Notification dérivée, jamais persistée. L'état lu/supprimé vit en mémoire
// de processus (voir Centre) et disparaît au redémarrage.
type Notification struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	Titre    string    `json:"titre"`
	Message  string    `json:"message"`
	ClientID uint      `json:"client_id,omitempty"`
	Urgent   bool      `json:"urgent"`
	Lue      bool      `json:"lue"`
	CreeLe   time.Time `json:"cree_le"`
}

// fenêtre de détection des nouveaux clients, bornes incluses
const fenetreNouveauClient = 3

// GenererNotifications recalcule la liste complète (pas d'incrémental) à
// partir des suivis et des clients :
//  1. suivi dont next_contact tombe aujourd'hui -> relance, urgente si priorité haute
//  2. suivi dont next_contact est passé -> retard, toujours urgent, jours écoulés
//  3. clients créés dans les 3 derniers jours -> nouveau client (3 max),
//     non lu si créé dans les dernières 24 h
//  4. une notification de résumé avec les compteurs agrégés
//
// Tri : urgentes non lues d'abord, puis non lues, ordre stable sinon.
func GenererNotifications(clients []models.Client, suivis []models.ClientFollowUp, now time.Time, lang string) []Notification {
	var out []Notification
	aujourdhui := jour(now)

	nomParClient := make(map[uint]string, len(clients))
	for i := range clients {
		nomParClient[clients[i].ID] = clients[i].NomComplet()
	}

	for _, s := range suivis {
		if s.NextContact == nil {
			continue
		}
		nom := nomParClient[s.ClientID]
		if nom == "" {
			// suivi orphelin (client supprimé) : toléré, on affiche l'id
			nom = fmt.Sprintf("client #%d", s.ClientID)
		}
		prochain := jour(*s.NextContact)
		switch {
		case prochain.Equal(aujourdhui):
			out = append(out, Notification{
				ID:       fmt.Sprintf("relance-%d", s.ClientID),
				Type:     NotifRelance,
				Titre:    i18n.T(lang, "notif_relance_titre"),
				Message:  fmt.Sprintf(i18n.T(lang, "notif_relance_message"), nom),
				ClientID: s.ClientID,
				Urgent:   s.Priorite == models.PrioriteHaute,
				CreeLe:   now,
			})
		case prochain.Before(aujourdhui):
			jours := int(aujourdhui.Sub(prochain).Hours() / 24)
			out = append(out, Notification{
				ID:       fmt.Sprintf("retard-%d", s.ClientID),
				Type:     NotifRetard,
				Titre:    i18n.T(lang, "notif_retard_titre"),
				Message:  fmt.Sprintf(i18n.T(lang, "notif_retard_message"), jours, nom),
				ClientID: s.ClientID,
				Urgent:   true,
				CreeLe:   now,
			})
		}
	}

	out = append(out, notificationsNouveauxClients(clients, now, lang)...)

	actifs, prospects := 0, 0
	for _, s := range suivis {
		switch s.Statut {
		case models.SuiviActif:
			actifs++
		case models.SuiviProspect:
			prospects++
		}
	}
	out = append(out, Notification{
		ID:      "resume",
		Type:    NotifResume,
		Titre:   i18n.T(lang, "notif_resume_titre"),
		Message: fmt.Sprintf(i18n.T(lang, "notif_resume_message"), len(clients), actifs, prospects),
		Lue:     true,
		CreeLe:  now,
	})

	trier(out)
	return out
}

func notificationsNouveauxClients(clients []models.Client, now time.Time, lang string) []Notification {
	limite := now.AddDate(0, 0, -fenetreNouveauClient)
	var recents []models.Client
	for _, c := range clients {
		if !c.CreatedAt.Before(limite) {
			recents = append(recents, c)
		}
	}
	sort.SliceStable(recents, func(i, j int) bool {
		return recents[i].CreatedAt.After(recents[j].CreatedAt)
	})
	if len(recents) > 3 {
		recents = recents[:3]
	}
	out := make([]Notification, 0, len(recents))
	for _, c := range recents {
		out = append(out, Notification{
			ID:       fmt.Sprintf("client-%d", c.ID),
			Type:     NotifNouveauClient,
			Titre:    i18n.T(lang, "notif_nouveau_titre"),
			Message:  fmt.Sprintf(i18n.T(lang, "notif_nouveau_message"), c.NomComplet()),
			ClientID: c.ID,
			Lue:      now.Sub(c.CreatedAt) > 24*time.Hour,
			CreeLe:   c.CreatedAt,
		})
	}
	return out
}

func trier(notifs []Notification) {
	rang := func(n Notification) int {
		switch {
		case n.Urgent && !n.Lue:
			return 0
		case !n.Lue:
			return 1
		default:
			return 2
		}
	}
	sort.SliceStable(notifs, func(i, j int) bool { return rang(notifs[i]) < rang(notifs[j]) })
}

// jour tronque un instant à minuit local.
func jour(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Centre conserve la dernière génération et superpose l'état lu/supprimé.
// Les identifiants de notification sont déterministes, donc l'état survit aux
// régénérations successives — mais pas au redémarrage du processus.
type Centre struct {
	mu            sync.RWMutex
	notifications []Notification
	lues          map[string]bool
	supprimees    map[string]bool
}

func NewCentre() *Centre {
	return &Centre{lues: make(map[string]bool), supprimees: make(map[string]bool)}
}

// Rafraichir régénère la liste et réapplique les marquages locaux.
func (c *Centre) Rafraichir(clients []models.Client, suivis []models.ClientFollowUp, now time.Time, lang string) {
	generees := GenererNotifications(clients, suivis, now, lang)
	c.mu.Lock()
	defer c.mu.Unlock()
	out := generees[:0]
	for _, n := range generees {
		if c.supprimees[n.ID] {
			continue
		}
		if c.lues[n.ID] {
			n.Lue = true
		}
		out = append(out, n)
	}
	trier(out)
	c.notifications = out
}

// Liste retourne une copie de l'état courant.
func (c *Centre) Liste() []Notification {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Notification, len(c.notifications))
	copy(out, c.notifications)
	return out
}

// NonLues compte les notifications non lues.
func (c *Centre) NonLues() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, notif := range c.notifications {
		if !notif.Lue {
			n++
		}
	}
	return n
}

// MarquerLue marque une notification par id ; retourne false si inconnue.
func (c *Centre) MarquerLue(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.notifications {
		if c.notifications[i].ID == id {
			c.notifications[i].Lue = true
			c.lues[id] = true
			trier(c.notifications)
			return true
		}
	}
	return false
}

// MarquerToutesLues marque tout l'état courant.
func (c *Centre) MarquerToutesLues() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.notifications {
		c.notifications[i].Lue = true
		c.lues[c.notifications[i].ID] = true
	}
	trier(c.notifications)
}

// Supprimer retire une notification de l'état courant et des générations à venir.
func (c *Centre) Supprimer(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.notifications {
		if c.notifications[i].ID == id {
			c.notifications = append(c.notifications[:i], c.notifications[i+1:]...)
			c.supprimees[id] = true
			return true
		}
	}
	return false
}
