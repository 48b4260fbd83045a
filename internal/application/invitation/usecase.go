package invitation

import (
	"time"

	"github.com/google/uuid"

	"github.com/issaqr/inventory-qr-api/internal/application/dto"
	"github.com/issaqr/inventory-qr-api/internal/domain"
	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
	"github.com/issaqr/inventory-qr-api/pkg/logger"
)

// Mailer envía el correo de invitación. El envío es best-effort: un fallo
// de SMTP no revierte la invitación ya persistida.
type Mailer interface {
	SendInvitation(to, token, schoolName, roleName string) error
}

// InvitationUseCase emisión y consulta de invitaciones. Solo el super_admin
// invita (el gate vive en el middleware HTTP).
type InvitationUseCase struct {
	invitationRepo repository.InvitationRepository
	schoolRepo     repository.SchoolRepository
	mailer         Mailer
	log            *logger.Logger
	expireHours    int
}

// NewInvitationUseCase construye el caso de uso. mailer puede ser nil si no
// hay SMTP configurado.
func NewInvitationUseCase(
	invitationRepo repository.InvitationRepository,
	schoolRepo repository.SchoolRepository,
	mailer Mailer,
	log *logger.Logger,
	expireHours int,
) *InvitationUseCase {
	return &InvitationUseCase{
		invitationRepo: invitationRepo,
		schoolRepo:     schoolRepo,
		mailer:         mailer,
		log:            log,
		expireHours:    expireHours,
	}
}

// Create emite una invitación con token aleatorio y vencimiento relativo a
// la emisión. El correo se intenta después del commit.
func (uc *InvitationUseCase) Create(sentBy string, in dto.CreateInvitationRequest) (*dto.InvitationResponse, error) {
	if !entity.ValidRoleID(in.RoleID) {
		return nil, domain.ErrInvalidInput
	}
	school, err := uc.schoolRepo.GetByID(in.SchoolID)
	if err != nil {
		return nil, err
	}
	if school == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	inv := &entity.Invitation{
		ID:        uuid.New().String(),
		Email:     in.Email,
		RoleID:    in.RoleID,
		SchoolID:  in.SchoolID,
		Token:     uuid.New().String(),
		ExpiresAt: now.Add(time.Duration(uc.expireHours) * time.Hour),
		SentBy:    &sentBy,
		CreatedAt: now,
	}
	if err := uc.invitationRepo.Create(inv); err != nil {
		return nil, err
	}
	if uc.mailer != nil {
		if err := uc.mailer.SendInvitation(inv.Email, inv.Token, school.Name, entity.RoleName(inv.RoleID)); err != nil {
			uc.log.Warn().Err(err).Str("email", inv.Email).Msg("no se pudo enviar el correo de invitación")
		}
	}
	return toInvitationResponse(inv, now), nil
}

// GetByToken consulta pública previa al registro: el frontend la usa para
// mostrar si el token sigue siendo canjeable.
func (uc *InvitationUseCase) GetByToken(token string) (*dto.InvitationResponse, error) {
	inv, err := uc.invitationRepo.GetByToken(token)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrInvitationNotFound
	}
	return toInvitationResponse(inv, time.Now()), nil
}

// List lista invitaciones con filtros opcionales por colegio y email.
func (uc *InvitationUseCase) List(in dto.InvitationListRequest) (*dto.InvitationListResponse, error) {
	in.DefaultPage()
	list, err := uc.invitationRepo.List(in.SchoolID, in.Email, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	items := make([]dto.InvitationResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toInvitationResponse(inv, now))
	}
	return &dto.InvitationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

func toInvitationResponse(i *entity.Invitation, now time.Time) *dto.InvitationResponse {
	return &dto.InvitationResponse{
		ID:        i.ID,
		Token:     i.Token,
		Email:     i.Email,
		RoleID:    i.RoleID,
		RoleName:  entity.RoleName(i.RoleID),
		SchoolID:  i.SchoolID,
		ExpiresAt: i.ExpiresAt,
		UsedAt:    i.UsedAt,
		Valid:     i.IsValid(now),
		SentBy:    i.SentBy,
		CreatedAt: i.CreatedAt,
	}
}
