package app

import (
	"context"

	"github.com/dropDatabas3/hellogrant/internal/cache"
	"github.com/dropDatabas3/hellogrant/internal/directory"
	"github.com/dropDatabas3/hellogrant/internal/hydra"
)

// Provider es la capability del admin API que consumen los handlers.
// hydra.Client la implementa; los tests inyectan un double.
type Provider interface {
	GetLoginRequest(ctx context.Context, challenge string) (*hydra.LoginRequest, error)
	AcceptLoginRequest(ctx context.Context, challenge string, body hydra.AcceptLogin) (*hydra.RedirectResult, error)
	RejectLoginRequest(ctx context.Context, challenge string, body hydra.RejectRequest) (*hydra.RedirectResult, error)

	GetConsentRequest(ctx context.Context, challenge string) (*hydra.ConsentRequest, error)
	AcceptConsentRequest(ctx context.Context, challenge string, body hydra.AcceptConsent) (*hydra.RedirectResult, error)
	RejectConsentRequest(ctx context.Context, challenge string, body hydra.RejectRequest) (*hydra.RedirectResult, error)
}

// Container agrupa las dependencias que comparten los handlers.
// Se construye una vez en main y se inyecta; no hay estado global de proceso.
type Container struct {
	Provider  Provider
	Directory directory.Validator
	Cache     cache.Cache
}
