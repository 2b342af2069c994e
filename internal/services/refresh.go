package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/diewo77/gestion-pro/internal/models"
	"github.com/diewo77/gestion-pro/internal/store"
)

// IntervalleDefaut entre deux recalculs des vues dérivées.
const IntervalleDefaut = 5 * time.Minute

// Rafraichisseur recalcule périodiquement le bilan financier et les
// notifications depuis le dépôt partagé. Boucle unique sur un ticker : un
// tick en cours n'est jamais doublé par le suivant.
type Rafraichisseur struct {
	repo       *store.Repository
	centre     *Centre
	cache      *BilanCache
	intervalle time.Duration

	mu    sync.RWMutex
	bilan BilanFinancier
}

func NewRafraichisseur(repo *store.Repository, centre *Centre, intervalle time.Duration) *Rafraichisseur {
	if intervalle <= 0 {
		intervalle = IntervalleDefaut
	}
	return &Rafraichisseur{repo: repo, centre: centre, cache: &BilanCache{}, intervalle: intervalle}
}

// Run exécute un premier recalcul immédiat puis boucle jusqu'à annulation.
func (r *Rafraichisseur) Run(ctx context.Context) {
	if err := r.Tick(ctx); err != nil {
		log.Printf("[refresh] recalcul initial: %v", err)
	}
	ticker := time.NewTicker(r.intervalle)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Tick(ctx); err != nil {
				log.Printf("[refresh] recalcul: %v", err)
			}
		}
	}
}

// Tick recharge les collections sources et reconstruit les vues dérivées.
// Un échec de lecture laisse le dernier état connu en place.
func (r *Rafraichisseur) Tick(ctx context.Context) error {
	clients, err := r.repo.Clients.List(ctx)
	if err != nil {
		return fmt.Errorf("clients: %w", err)
	}
	suivis, err := r.repo.Suivis.List(ctx)
	if err != nil {
		return fmt.Errorf("suivis: %w", err)
	}
	paiements, err := r.repo.Paiements.List(ctx)
	if err != nil {
		return fmt.Errorf("paiements: %w", err)
	}

	nbImmobilier := 0
	for i := range clients {
		if clients[i].DansSecteur(models.SecteurImmobilier) {
			nbImmobilier++
		}
	}
	var voyage, assurance []models.Payment
	for _, p := range paiements {
		switch p.Secteur {
		case models.SecteurVoyage:
			voyage = append(voyage, p)
		case models.SecteurAssurance:
			assurance = append(assurance, p)
		}
	}

	bilan := r.cache.Bilan(nbImmobilier, voyage, assurance)
	r.mu.Lock()
	r.bilan = bilan
	r.mu.Unlock()

	r.centre.Rafraichir(clients, suivis, time.Now(), "fr")
	return nil
}

// Bilan retourne le dernier bilan calculé.
func (r *Rafraichisseur) Bilan() BilanFinancier {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.bilan
}
