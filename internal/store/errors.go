package store

import (
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"
)

// Kind classe les échecs du magasin pour que les appelants décident de la
// présentation sans inspecter le texte de l'erreur brute.
type Kind int

const (
	KindInterne Kind = iota
	KindConnexion
	KindValidation
	KindPermission
	KindIntrouvable
)

func (k Kind) String() string {
	switch k {
	case KindConnexion:
		return "connexion"
	case KindValidation:
		return "validation"
	case KindPermission:
		return "permission"
	case KindIntrouvable:
		return "introuvable"
	default:
		return "interne"
	}
}

// Error enveloppe une erreur du magasin avec son opération et sa table.
type Error struct {
	Kind  Kind
	Op    string // list, insert, update, delete
	Table string
	Err   error
}

func (e *Error) Error() string {
	return "store: " + e.Op + " " + e.Table + " (" + e.Kind.String() + "): " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extrait le Kind d'une erreur du magasin, KindInterne sinon.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInterne
}

// Classify mappe une erreur GORM/transport vers un Kind.
func Classify(err error) Kind {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return KindIntrouvable
	case errors.Is(err, gorm.ErrInvalidData), errors.Is(err, gorm.ErrDuplicatedKey):
		return KindValidation
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "duplicate"), strings.Contains(msg, "constraint"), strings.Contains(msg, "unique"):
		return KindValidation
	case strings.Contains(msg, "connection"), strings.Contains(msg, "refused"), strings.Contains(msg, "timeout"):
		return KindConnexion
	case strings.Contains(msg, "permission"), strings.Contains(msg, "denied"):
		return KindPermission
	}
	return KindInterne
}

// Reporter reçoit chaque échec du magasin. La présentation (log serveur,
// notification côté client) est injectée ici plutôt que câblée dans les
// opérations de données.
type Reporter interface {
	Report(op, table string, err error)
}

// LogReporter journalise via le logger standard.
type LogReporter struct{}

func (LogReporter) Report(op, table string, err error) {
	log.Printf("[store] %s %s: %v", op, table, err)
}

// NopReporter pour les tests.
type NopReporter struct{}

func (NopReporter) Report(string, string, error) {}
