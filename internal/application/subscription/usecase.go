package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/issaqr/inventory-qr-api/internal/application/dto"
	"github.com/issaqr/inventory-qr-api/internal/domain"
	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
	"github.com/issaqr/inventory-qr-api/pkg/logger"
)

// EventPaymentSucceeded único tipo de evento del gateway que procesamos;
// cualquier otro se reconoce con 200 sin efectos.
const EventPaymentSucceeded = "payment_intent.succeeded"

// SubscriptionUseCase catálogo de planes, ciclo de vida de suscripciones y
// procesamiento de webhooks de pago.
type SubscriptionUseCase struct {
	planRepo   repository.PlanRepository
	subRepo    repository.SubscriptionRepository
	payRepo    repository.PaymentRepository
	schoolRepo repository.SchoolRepository
	txRunner   PaymentTxRunner
	log        *logger.Logger
	now        func() time.Time
}

// NewSubscriptionUseCase construye el caso de uso.
func NewSubscriptionUseCase(
	planRepo repository.PlanRepository,
	subRepo repository.SubscriptionRepository,
	payRepo repository.PaymentRepository,
	schoolRepo repository.SchoolRepository,
	txRunner PaymentTxRunner,
	log *logger.Logger,
) *SubscriptionUseCase {
	return &SubscriptionUseCase{
		planRepo:   planRepo,
		subRepo:    subRepo,
		payRepo:    payRepo,
		schoolRepo: schoolRepo,
		txRunner:   txRunner,
		log:        log,
		now:        time.Now,
	}
}

// ─────────────────────────────────────────────
// Planes
// ─────────────────────────────────────────────

// CreatePlan alta de plan. El nombre es único (23505 → ErrDuplicate).
func (uc *SubscriptionUseCase) CreatePlan(in dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	if in.Price.IsNegative() || in.DurationDays <= 0 {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	plan := &entity.Plan{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Price:        in.Price,
		DurationDays: in.DurationDays,
		FeaturesList: in.Features,
		Description:  in.Description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.planRepo.Create(plan); err != nil {
		return nil, err
	}
	return toPlanResponse(plan), nil
}

// GetPlan obtiene un plan por ID.
func (uc *SubscriptionUseCase) GetPlan(id string) (*dto.PlanResponse, error) {
	plan, err := uc.planRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	return toPlanResponse(plan), nil
}

// ListPlans lista el catálogo de planes.
func (uc *SubscriptionUseCase) ListPlans(page dto.PageRequest) (*dto.PlanListResponse, error) {
	page.DefaultPage()
	list, err := uc.planRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PlanResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPlanResponse(p))
	}
	return &dto.PlanListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// UpdatePlan actualización parcial. Los cambios de precio o duración no
// tocan suscripciones ya activadas: aplican a futuras activaciones.
func (uc *SubscriptionUseCase) UpdatePlan(id string, in dto.UpdatePlanRequest) (*dto.PlanResponse, error) {
	plan, err := uc.planRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		plan.Name = *in.Name
	}
	if in.Description != nil {
		plan.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		plan.Price = *in.Price
	}
	if in.DurationDays != nil {
		if *in.DurationDays <= 0 {
			return nil, domain.ErrInvalidInput
		}
		plan.DurationDays = *in.DurationDays
	}
	if len(in.Features) > 0 {
		plan.FeaturesList = in.Features
	}
	plan.UpdatedAt = uc.now()
	if err := uc.planRepo.Update(plan); err != nil {
		return nil, err
	}
	return toPlanResponse(plan), nil
}

// DeletePlan borra un plan solo si ninguna suscripción active/past_due lo
// referencia.
func (uc *SubscriptionUseCase) DeletePlan(id string) error {
	plan, err := uc.planRepo.GetByID(id)
	if err != nil {
		return err
	}
	if plan == nil {
		return domain.ErrNotFound
	}
	n, err := uc.planRepo.CountActiveSubscriptions(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrPlanInUse
	}
	return uc.planRepo.Delete(id)
}

// ─────────────────────────────────────────────
// Suscripciones
// ─────────────────────────────────────────────

// Create crea la suscripción de un colegio para un plan, en estado inactive
// con end = start + duración del plan. Idempotente mientras no se pague: si
// ya existe una inactive para el mismo par se devuelve esa; si existe una
// active/past_due se rechaza con ErrSubscriptionActive.
func (uc *SubscriptionUseCase) Create(in dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	school, err := uc.schoolRepo.GetByID(in.SchoolID)
	if err != nil {
		return nil, err
	}
	if school == nil {
		return nil, domain.ErrNotFound
	}
	plan, err := uc.planRepo.GetByID(in.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.subRepo.GetOpenBySchoolAndPlan(in.SchoolID, in.PlanID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Status != entity.SubscriptionStatusInactive {
			return nil, domain.ErrSubscriptionActive
		}
		return uc.toSubscriptionResponse(existing, plan), nil
	}
	now := uc.now()
	today := dateOnly(now)
	sub := &entity.Subscription{
		ID:        uuid.New().String(),
		SchoolID:  in.SchoolID,
		PlanID:    in.PlanID,
		StartDate: today,
		EndDate:   today.AddDate(0, 0, plan.DurationDays),
		Status:    entity.SubscriptionStatusInactive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.subRepo.Create(sub); err != nil {
		// Otra request ganó la carrera del índice parcial: devolver la suya.
		if errors.Is(err, domain.ErrDuplicate) {
			existing, err2 := uc.subRepo.GetOpenBySchoolAndPlan(in.SchoolID, in.PlanID)
			if err2 == nil && existing != nil && existing.Status == entity.SubscriptionStatusInactive {
				return uc.toSubscriptionResponse(existing, plan), nil
			}
			return nil, domain.ErrSubscriptionActive
		}
		return nil, err
	}
	return uc.toSubscriptionResponse(sub, plan), nil
}

// Get obtiene una suscripción por ID.
func (uc *SubscriptionUseCase) Get(id string) (*dto.SubscriptionResponse, error) {
	sub, err := uc.subRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.ErrNotFound
	}
	plan, err := uc.planRepo.GetByID(sub.PlanID)
	if err != nil {
		return nil, err
	}
	return uc.toSubscriptionResponse(sub, plan), nil
}

// Current devuelve la suscripción vigente (active/past_due) del colegio.
func (uc *SubscriptionUseCase) Current(schoolID string) (*dto.SubscriptionResponse, error) {
	sub, err := uc.subRepo.GetCurrentBySchool(schoolID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.ErrNotFound
	}
	plan, err := uc.planRepo.GetByID(sub.PlanID)
	if err != nil {
		return nil, err
	}
	return uc.toSubscriptionResponse(sub, plan), nil
}

// ListBySchool historial de suscripciones del colegio.
func (uc *SubscriptionUseCase) ListBySchool(schoolID string, page dto.PageRequest) (*dto.SubscriptionListResponse, error) {
	page.DefaultPage()
	list, err := uc.subRepo.ListBySchool(schoolID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SubscriptionResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *uc.toSubscriptionResponse(s, nil))
	}
	return &dto.SubscriptionListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// ListPayments pagos registrados de una suscripción.
func (uc *SubscriptionUseCase) ListPayments(subscriptionID string, page dto.PageRequest) (*dto.PaymentListResponse, error) {
	page.DefaultPage()
	list, err := uc.payRepo.ListBySubscription(subscriptionID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPaymentResponse(p))
	}
	return &dto.PaymentListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Renew renovación manual (admin): extiende end_date desde
// max(hoy, end anterior) y vuelve el estado a active. Solo aplica a
// suscripciones active/past_due.
func (uc *SubscriptionUseCase) Renew(id string) (*dto.SubscriptionResponse, error) {
	sub, err := uc.subRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.ErrNotFound
	}
	if !sub.Renewable() {
		return nil, domain.ErrConflict
	}
	plan, err := uc.planRepo.GetByID(sub.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	uc.extend(sub, plan)
	sub.UpdatedAt = uc.now()
	if err := uc.subRepo.Update(sub); err != nil {
		return nil, err
	}
	return uc.toSubscriptionResponse(sub, plan), nil
}

// HandlePaymentWebhook procesa un evento del gateway. Solo
// payment_intent.succeeded tiene efectos: registra el pago (monto en
// centavos) y activa una suscripción inactiva (start=hoy,
// end=hoy+duración) o renueva una vigente (end se extiende desde
// max(hoy, end anterior)). Pago y cambio de estado van en la misma
// transacción. Un gateway_payment_id repetido se reconoce como reintento y
// responde éxito sin efectos.
func (uc *SubscriptionUseCase) HandlePaymentWebhook(ctx context.Context, in dto.PaymentWebhookRequest) (*dto.ActionResponse, error) {
	if in.Type != EventPaymentSucceeded {
		return &dto.ActionResponse{Success: true, Detail: "evento no manejado"}, nil
	}
	obj := in.Data.Object
	if obj.ID == "" || obj.Metadata.SubscriptionID == "" || obj.AmountReceived <= 0 {
		return nil, domain.ErrInvalidInput
	}
	sub, err := uc.subRepo.GetByID(obj.Metadata.SubscriptionID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.ErrNotFound
	}
	plan, err := uc.planRepo.GetByID(sub.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	switch sub.Status {
	case entity.SubscriptionStatusInactive, entity.SubscriptionStatusActive, entity.SubscriptionStatusPastDue:
	default:
		// canceled/expired no reviven por webhook.
		return nil, domain.ErrConflict
	}

	now := uc.now()
	payment := &entity.Payment{
		ID:               uuid.New().String(),
		SubscriptionID:   sub.ID,
		Amount:           decimal.NewFromInt(obj.AmountReceived).Div(decimal.NewFromInt(100)),
		GatewayPaymentID: obj.ID,
		Status:           entity.PaymentStatusSucceeded,
		PaymentDate:      now,
		CreatedAt:        now,
	}
	err = uc.txRunner.Run(ctx, func(
		subRepo repository.SubscriptionRepository,
		payRepo repository.PaymentRepository,
	) error {
		if err := payRepo.Create(payment); err != nil {
			return err
		}
		uc.extend(sub, plan)
		sub.UpdatedAt = uc.now()
		return subRepo.Update(sub)
	})
	if errors.Is(err, domain.ErrDuplicate) {
		uc.log.Info().Str("gateway_payment_id", obj.ID).Msg("webhook repetido, pago ya registrado")
		return &dto.ActionResponse{Success: true, Detail: "pago ya registrado"}, nil
	}
	if err != nil {
		return nil, err
	}
	return &dto.ActionResponse{Success: true, Detail: "pago procesado"}, nil
}

// SweepExpired pasa a expired toda suscripción active/past_due cuyo
// end_date quedó atrás. Pensado para invocarse desde un cron externo.
func (uc *SubscriptionUseCase) SweepExpired() (*dto.SweepResponse, error) {
	today := dateOnly(uc.now())
	n, err := uc.subRepo.ExpireOverdue(today.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	if n > 0 {
		uc.log.Info().Int("expired", n).Msg("suscripciones vencidas barridas")
	}
	return &dto.SweepResponse{Expired: n}, nil
}

// extend aplica la activación o renovación sobre la entidad en memoria.
func (uc *SubscriptionUseCase) extend(sub *entity.Subscription, plan *entity.Plan) {
	today := dateOnly(uc.now())
	if sub.Status == entity.SubscriptionStatusInactive {
		sub.StartDate = today
		sub.EndDate = today.AddDate(0, 0, plan.DurationDays)
	} else {
		base := sub.EndDate
		if base.Before(today) {
			base = today
		}
		sub.EndDate = base.AddDate(0, 0, plan.DurationDays)
	}
	sub.Status = entity.SubscriptionStatusActive
}

// dateOnly trunca a fecha en UTC; las suscripciones contabilizan días, no horas.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func toPlanResponse(p *entity.Plan) *dto.PlanResponse {
	return &dto.PlanResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		DurationDays: p.DurationDays,
		Features:     p.FeaturesList,
		CreatedAt:    p.CreatedAt,
	}
}

func (uc *SubscriptionUseCase) toSubscriptionResponse(s *entity.Subscription, plan *entity.Plan) *dto.SubscriptionResponse {
	resp := &dto.SubscriptionResponse{
		ID:        s.ID,
		SchoolID:  s.SchoolID,
		PlanID:    s.PlanID,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if plan != nil {
		resp.PlanName = plan.Name
	}
	if !s.StartDate.IsZero() {
		start := s.StartDate
		end := s.EndDate
		resp.StartDate = &start
		resp.EndDate = &end
	}
	return resp
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:               p.ID,
		SubscriptionID:   p.SubscriptionID,
		Amount:           p.Amount,
		GatewayPaymentID: p.GatewayPaymentID,
		Status:           p.Status,
		PaymentDate:      p.PaymentDate,
		CreatedAt:        p.CreatedAt,
	}
}
