package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// FunctionClient poste les charges utiles JSON aux fonctions d'envoi hébergées.
// Le transport décide seul du timeout ; aucun n'est imposé ici.
type FunctionClient struct {
	HTTPClient *http.Client
	EmailURL   string
	SMSURL     string
}

func NewFunctionClient(emailURL, smsURL string) *FunctionClient {
	return &FunctionClient{HTTPClient: http.DefaultClient, EmailURL: emailURL, SMSURL: smsURL}
}

func (c *FunctionClient) SendEmail(ctx context.Context, msg Email) (Resultat, error) {
	return c.post(ctx, c.EmailURL, msg)
}

func (c *FunctionClient) SendSMS(ctx context.Context, msg SMS) (Resultat, error) {
	return c.post(ctx, c.SMSURL, msg)
}

func (c *FunctionClient) post(ctx context.Context, url string, payload any) (Resultat, error) {
	if url == "" {
		return Resultat{}, errors.New("messaging: URL de fonction non configurée")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Resultat{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Resultat{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Resultat{}, err
	}
	defer resp.Body.Close()
	var out Resultat
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Resultat{}, fmt.Errorf("messaging: réponse illisible: %w", err)
	}
	if resp.StatusCode >= 400 || !out.Success {
		msg := out.Erreur
		if msg == "" {
			msg = resp.Status
		}
		return out, errors.New("messaging: envoi refusé: " + msg)
	}
	return out, nil
}
