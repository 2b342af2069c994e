package messaging

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFunctionClientSendEmail(t *testing.T) {
	var recu Email
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type: %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&recu); err != nil {
			t.Errorf("decode: %v", err)
		}
		_ = json.NewEncoder(w).Encode(Resultat{Success: true, Status: "delivered", SID: "msg-42"})
	}))
	defer srv.Close()

	c := NewFunctionClient(srv.URL, "")
	res, err := c.SendEmail(context.Background(), Email{To: "alice@example.com", Subject: "Hello", Content: "corps"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if !res.Success || res.SID != "msg-42" {
		t.Fatalf("résultat: %+v", res)
	}
	if recu.To != "alice@example.com" || recu.Subject != "Hello" {
		t.Fatalf("charge utile: %+v", recu)
	}
}

func TestFunctionClientRefus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(Resultat{Success: false, Erreur: "quota dépassé"})
	}))
	defer srv.Close()

	c := NewFunctionClient("", srv.URL)
	if _, err := c.SendSMS(context.Background(), SMS{To: "+33600000000", Content: "x"}); err == nil {
		t.Fatalf("refus distant non signalé")
	}
}

func TestFunctionClientURLManquante(t *testing.T) {
	c := NewFunctionClient("", "")
	if _, err := c.SendEmail(context.Background(), Email{To: "x@example.com"}); err == nil {
		t.Fatalf("URL vide non signalée")
	}
}
