package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/pkg/jwt"
)

// RoleOperador es el único rol de la herramienta: quien sube los archivos,
// ejecuta la conciliación y descarga los reportes.
const RoleOperador = "operador"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login del operador contra la credencial estática de
// configuración. No hay tabla de usuarios: la herramienta es interna y la
// credencial llega por entorno; la contraseña se hashea con bcrypt al
// arranque y el proceso nunca la retiene en claro.
type AuthUseCase struct {
	user   string
	hash   []byte
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth hasheando la contraseña
// configurada.
func NewAuthUseCase(user, password string, jwtCfg JWTConfig) (*AuthUseCase, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &AuthUseCase{user: user, hash: hash, jwtCfg: jwtCfg}, nil
}

// Login verifica usuario/contraseña, genera JWT y retorna el token.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.User != uc.user {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(uc.hash, []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uuid.New().String(), RoleOperador, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
	}, nil
}
