package store

import (
	"context"

	"github.com/diewo77/gestion-pro/internal/models"
	"gorm.io/gorm"
)

// Store expose les opérations génériques d'une table : lecture triée par date
// de création décroissante, insertion, mise à jour partielle, suppression.
// Chaque opération est asynchrone côté appelant (context) et sans retry ;
// en cas d'échec l'état en base comme l'état de l'appelant restent inchangés.
type Store[T any] struct {
	db       *gorm.DB
	table    string
	reporter Reporter
}

func New[T any](db *gorm.DB, table string, reporter Reporter) *Store[T] {
	if reporter == nil {
		reporter = LogReporter{}
	}
	return &Store[T]{db: db, table: table, reporter: reporter}
}

func (s *Store[T]) fail(op string, err error) error {
	e := &Error{Kind: Classify(err), Op: op, Table: s.table, Err: err}
	s.reporter.Report(op, s.table, err)
	return e
}

// List retourne toutes les lignes, plus récentes d'abord.
func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	var rows []T
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, s.fail("list", err)
	}
	return rows, nil
}

// Get charge une ligne par id.
func (s *Store[T]) Get(ctx context.Context, id uint) (*T, error) {
	var row T
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, s.fail("get", err)
	}
	return &row, nil
}

// Insert crée la ligne et la recharge (valeurs par défaut incluses).
func (s *Store[T]) Insert(ctx context.Context, row *T) (*T, error) {
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, s.fail("insert", err)
	}
	return row, nil
}

// Update applique un patch partiel par id et retourne la ligne à jour.
// Dernière écriture gagnante, sans détection de conflit.
func (s *Store[T]) Update(ctx context.Context, id uint, patch map[string]any) (*T, error) {
	var row T
	tx := s.db.WithContext(ctx).Model(&row).Where("id = ?", id).Updates(patch)
	if tx.Error != nil {
		return nil, s.fail("update", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, s.fail("update", gorm.ErrRecordNotFound)
	}
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, s.fail("update", err)
	}
	return &row, nil
}

// Delete supprime par id. Aucune suppression en cascade : les lignes liées
// (paiements, suivis) restent orphelines et sont tolérées par les lectures.
func (s *Store[T]) Delete(ctx context.Context, id uint) error {
	tx := s.db.WithContext(ctx).Delete(new(T), id)
	if tx.Error != nil {
		return s.fail("delete", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return s.fail("delete", gorm.ErrRecordNotFound)
	}
	return nil
}

// Repository regroupe un magasin typé par entité : source unique partagée par
// les handlers et les calculs dérivés, au lieu de N chargements parallèles.
type Repository struct {
	Clients            *Store[models.Client]
	Paiements          *Store[models.Payment]
	Proprietes         *Store[models.Propriete]
	Contrats           *Store[models.Contrat]
	Maintenance        *Store[models.Maintenance]
	ReservationsVols   *Store[models.ReservationVol]
	ReservationsHotels *Store[models.ReservationHotel]
	LocationsVehicules *Store[models.LocationVehicule]
	AssurancesAuto     *Store[models.AssuranceAuto]
	Suivis             *Store[models.ClientFollowUp]
	Templates          *Store[models.CommunicationTemplate]
	Communications     *Store[models.CommunicationLog]

	db *gorm.DB
}

func NewRepository(db *gorm.DB, reporter Reporter) *Repository {
	return &Repository{
		Clients:            New[models.Client](db, "clients", reporter),
		Paiements:          New[models.Payment](db, "payments", reporter),
		Proprietes:         New[models.Propriete](db, "proprietes", reporter),
		Contrats:           New[models.Contrat](db, "contrats", reporter),
		Maintenance:        New[models.Maintenance](db, "maintenance", reporter),
		ReservationsVols:   New[models.ReservationVol](db, "reservations_vols", reporter),
		ReservationsHotels: New[models.ReservationHotel](db, "reservations_hotels", reporter),
		LocationsVehicules: New[models.LocationVehicule](db, "locations_vehicules", reporter),
		AssurancesAuto:     New[models.AssuranceAuto](db, "assurances_auto", reporter),
		Suivis:             New[models.ClientFollowUp](db, "client_follow_ups", reporter),
		Templates:          New[models.CommunicationTemplate](db, "communication_templates", reporter),
		Communications:     New[models.CommunicationLog](db, "communication_logs", reporter),
		db:                 db,
	}
}

// DB expose la connexion pour les requêtes qui sortent du CRUD générique.
func (r *Repository) DB() *gorm.DB { return r.db }
