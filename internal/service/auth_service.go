package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/apierror"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/model"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/posapi"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/session"
)

type AuthService interface {
	// Login exchanges credentials with the POS API and persists the returned
	// session. The returned id is the cookie value.
	Login(ctx context.Context, email, password string) (string, *model.Sesion, error)
	Logout(ctx context.Context, sesionID string)
}

type authService struct {
	api      *posapi.Client
	sesiones session.Store
}

func NewAuthService(api *posapi.Client, sesiones session.Store) AuthService {
	return &authService{api: api, sesiones: sesiones}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *model.Sesion, error) {
	sesion, err := s.api.Login(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	if sesion.Token == "" || !sesion.Usuario.Valida() {
		return "", nil, apierror.ErrRespuestaInvalida
	}

	// Only roles the interface knows how to route.
	switch sesion.Usuario.Rol {
	case model.RolAdmin, model.RolMesero:
	default:
		return "", nil, apierror.NewValidacion("Rol de usuario no reconocido.")
	}

	id := session.NuevoID()
	if err := s.sesiones.Guardar(ctx, id, *sesion); err != nil {
		return "", nil, err
	}

	log.Info().Str("email", sesion.Usuario.Email).Str("rol", sesion.Usuario.Rol).Msg("login")
	return id, sesion, nil
}

func (s *authService) Logout(ctx context.Context, sesionID string) {
	if sesionID == "" {
		return
	}
	if err := s.sesiones.Limpiar(ctx, sesionID); err != nil {
		log.Warn().Err(err).Msg("logout: no se pudo limpiar la sesion")
	}
}
