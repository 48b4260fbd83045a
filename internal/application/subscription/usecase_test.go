package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/issaqr/inventory-qr-api/internal/application/dto"
	"github.com/issaqr/inventory-qr-api/internal/domain"
	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
	"github.com/issaqr/inventory-qr-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakePlanRepo struct {
	plans map[string]*entity.Plan
}

func (r *fakePlanRepo) Create(p *entity.Plan) error {
	for _, existing := range r.plans {
		if existing.Name == p.Name {
			return domain.ErrDuplicate
		}
	}
	r.plans[p.ID] = p
	return nil
}

func (r *fakePlanRepo) GetByID(id string) (*entity.Plan, error) {
	if p, ok := r.plans[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakePlanRepo) List(limit, offset int) ([]*entity.Plan, error) { return nil, nil }
func (r *fakePlanRepo) Update(p *entity.Plan) error                    { r.plans[p.ID] = p; return nil }
func (r *fakePlanRepo) Delete(id string) error                         { delete(r.plans, id); return nil }
func (r *fakePlanRepo) CountActiveSubscriptions(planID string) (int, error) {
	return 0, nil
}

type fakeSubRepo struct {
	subs map[string]*entity.Subscription
}

func (r *fakeSubRepo) Create(s *entity.Subscription) error {
	for _, existing := range r.subs {
		open := existing.Status == entity.SubscriptionStatusInactive ||
			existing.Status == entity.SubscriptionStatusActive ||
			existing.Status == entity.SubscriptionStatusPastDue
		if open && existing.SchoolID == s.SchoolID && existing.PlanID == s.PlanID {
			return domain.ErrDuplicate
		}
	}
	cp := *s
	r.subs[s.ID] = &cp
	return nil
}

func (r *fakeSubRepo) GetByID(id string) (*entity.Subscription, error) {
	if s, ok := r.subs[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeSubRepo) GetOpenBySchoolAndPlan(schoolID, planID string) (*entity.Subscription, error) {
	for _, s := range r.subs {
		open := s.Status == entity.SubscriptionStatusInactive ||
			s.Status == entity.SubscriptionStatusActive ||
			s.Status == entity.SubscriptionStatusPastDue
		if open && s.SchoolID == schoolID && s.PlanID == planID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSubRepo) GetCurrentBySchool(schoolID string) (*entity.Subscription, error) {
	var best *entity.Subscription
	for _, s := range r.subs {
		if s.SchoolID != schoolID || !s.Renewable() {
			continue
		}
		if best == nil || s.EndDate.After(best.EndDate) {
			cp := *s
			best = &cp
		}
	}
	return best, nil
}

func (r *fakeSubRepo) ListBySchool(schoolID string, limit, offset int) ([]*entity.Subscription, error) {
	var out []*entity.Subscription
	for _, s := range r.subs {
		if s.SchoolID == schoolID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSubRepo) Update(s *entity.Subscription) error {
	cp := *s
	r.subs[s.ID] = &cp
	return nil
}

func (r *fakeSubRepo) ExpireOverdue(before string) (int, error) {
	limit, err := time.Parse("2006-01-02", before)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, s := range r.subs {
		if s.Renewable() && s.EndDate.Before(limit) {
			s.Status = entity.SubscriptionStatusExpired
			n++
		}
	}
	return n, nil
}

type fakePaymentRepo struct {
	payments  []*entity.Payment
	byGateway map[string]bool
}

func (r *fakePaymentRepo) Create(p *entity.Payment) error {
	if r.byGateway[p.GatewayPaymentID] {
		return domain.ErrDuplicate
	}
	r.byGateway[p.GatewayPaymentID] = true
	r.payments = append(r.payments, p)
	return nil
}

func (r *fakePaymentRepo) ListBySubscription(subscriptionID string, limit, offset int) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.payments {
		if p.SubscriptionID == subscriptionID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeSchoolRepo struct {
	schools map[string]*entity.School
}

func (r *fakeSchoolRepo) Create(s *entity.School) error { r.schools[s.ID] = s; return nil }
func (r *fakeSchoolRepo) GetByID(id string) (*entity.School, error) {
	if s, ok := r.schools[id]; ok {
		return s, nil
	}
	return nil, nil
}
func (r *fakeSchoolRepo) List(limit, offset int) ([]*entity.School, error) { return nil, nil }
func (r *fakeSchoolRepo) Update(s *entity.School) error                    { return nil }
func (r *fakeSchoolRepo) SoftDelete(id string) error                       { return nil }

// fakePaymentTx ejecuta el callback sin transacción real, contra los fakes.
type fakePaymentTx struct {
	subs     *fakeSubRepo
	payments *fakePaymentRepo
}

func (t *fakePaymentTx) Run(_ context.Context, fn func(
	repository.SubscriptionRepository,
	repository.PaymentRepository,
) error) error {
	return fn(t.subs, t.payments)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	subTestSchoolID = "22222222-2222-2222-2222-222222222222"
	subTestPlanID   = "33333333-3333-3333-3333-333333333333"
)

type subFixture struct {
	uc       *SubscriptionUseCase
	plans    *fakePlanRepo
	subs     *fakeSubRepo
	payments *fakePaymentRepo
	now      time.Time
}

func newSubFixture(t *testing.T) *subFixture {
	t.Helper()
	plans := &fakePlanRepo{plans: make(map[string]*entity.Plan)}
	subs := &fakeSubRepo{subs: make(map[string]*entity.Subscription)}
	payments := &fakePaymentRepo{byGateway: make(map[string]bool)}
	schools := &fakeSchoolRepo{schools: map[string]*entity.School{
		subTestSchoolID: {ID: subTestSchoolID, Name: "Colegio de Prueba"},
	}}
	plans.plans[subTestPlanID] = &entity.Plan{
		ID:           subTestPlanID,
		Name:         "Plan Mensual",
		Price:        decimal.NewFromInt(50),
		DurationDays: 30,
	}
	uc := NewSubscriptionUseCase(
		plans, subs, payments, schools,
		&fakePaymentTx{subs: subs, payments: payments},
		logger.New(logger.Config{Env: "production", Level: "error"}),
	)
	f := &subFixture{
		uc: uc, plans: plans, subs: subs, payments: payments,
		now: time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC),
	}
	uc.now = func() time.Time { return f.now }
	return f
}

func (f *subFixture) seedSub(status string, start, end time.Time) *entity.Subscription {
	sub := &entity.Subscription{
		ID:        "44444444-4444-4444-4444-444444444444",
		SchoolID:  subTestSchoolID,
		PlanID:    subTestPlanID,
		StartDate: start,
		EndDate:   end,
		Status:    status,
		CreatedAt: f.now,
		UpdatedAt: f.now,
	}
	f.subs.subs[sub.ID] = sub
	return sub
}

func webhookEvent(eventType, paymentID, subscriptionID string, cents int64) dto.PaymentWebhookRequest {
	return dto.PaymentWebhookRequest{
		Type: eventType,
		Data: dto.PaymentWebhookData{Object: dto.PaymentWebhookObject{
			ID:             paymentID,
			AmountReceived: cents,
			Metadata:       dto.PaymentWebhookMetadata{SubscriptionID: subscriptionID},
		}},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación de suscripciones
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_SuscripcionNaceInactiva(t *testing.T) {
	f := newSubFixture(t)

	out, err := f.uc.Create(dto.CreateSubscriptionRequest{SchoolID: subTestSchoolID, PlanID: subTestPlanID})
	require.NoError(t, err)

	assert.Equal(t, entity.SubscriptionStatusInactive, out.Status,
		"sin pago la suscripción queda inactive")
	require.NotNil(t, out.StartDate)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), *out.StartDate)
	assert.Equal(t, time.Date(2026, 4, 9, 0, 0, 0, 0, time.UTC), *out.EndDate,
		"end = start + duración del plan")
}

func TestCreate_InactivaExistenteEsIdempotente(t *testing.T) {
	f := newSubFixture(t)

	first, err := f.uc.Create(dto.CreateSubscriptionRequest{SchoolID: subTestSchoolID, PlanID: subTestPlanID})
	require.NoError(t, err)
	second, err := f.uc.Create(dto.CreateSubscriptionRequest{SchoolID: subTestSchoolID, PlanID: subTestPlanID})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "repetir la creación devuelve la inactive existente")
}

func TestCreate_ActivaExistenteRechazada(t *testing.T) {
	f := newSubFixture(t)
	f.seedSub(entity.SubscriptionStatusActive,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))

	_, err := f.uc.Create(dto.CreateSubscriptionRequest{SchoolID: subTestSchoolID, PlanID: subTestPlanID})
	assert.ErrorIs(t, err, domain.ErrSubscriptionActive)
}

// ──────────────────────────────────────────────────────────────────────────────
// Webhook de pagos
// ──────────────────────────────────────────────────────────────────────────────

func TestHandlePaymentWebhook_ActivaInactiva(t *testing.T) {
	f := newSubFixture(t)
	sub := f.seedSub(entity.SubscriptionStatusInactive,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))

	out, err := f.uc.HandlePaymentWebhook(context.Background(),
		webhookEvent(EventPaymentSucceeded, "pi_001", sub.ID, 5000))
	require.NoError(t, err)
	assert.True(t, out.Success)

	stored := f.subs.subs[sub.ID]
	assert.Equal(t, entity.SubscriptionStatusActive, stored.Status)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), stored.StartDate,
		"la activación re-ancla start al día del pago")
	assert.Equal(t, time.Date(2026, 4, 9, 0, 0, 0, 0, time.UTC), stored.EndDate)

	require.Len(t, f.payments.payments, 1)
	assert.True(t, f.payments.payments[0].Amount.Equal(decimal.NewFromInt(50)),
		"el monto llega en centavos y se persiste en unidades")
}

func TestHandlePaymentWebhook_RenuevaVigenteDesdeSuFin(t *testing.T) {
	f := newSubFixture(t)
	// Vigente hasta el 31 de marzo; el pago del 10 extiende desde el 31.
	sub := f.seedSub(entity.SubscriptionStatusActive,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))

	_, err := f.uc.HandlePaymentWebhook(context.Background(),
		webhookEvent(EventPaymentSucceeded, "pi_002", sub.ID, 5000))
	require.NoError(t, err)

	stored := f.subs.subs[sub.ID]
	assert.Equal(t, time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC), stored.EndDate,
		"renovar antes del vencimiento extiende desde el end anterior, no desde hoy")
}

func TestHandlePaymentWebhook_RenuevaVencidaDesdeHoy(t *testing.T) {
	f := newSubFixture(t)
	// past_due con end ya pasado: la extensión arranca en hoy.
	sub := f.seedSub(entity.SubscriptionStatusPastDue,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))

	_, err := f.uc.HandlePaymentWebhook(context.Background(),
		webhookEvent(EventPaymentSucceeded, "pi_003", sub.ID, 5000))
	require.NoError(t, err)

	stored := f.subs.subs[sub.ID]
	assert.Equal(t, entity.SubscriptionStatusActive, stored.Status)
	assert.Equal(t, time.Date(2026, 4, 9, 0, 0, 0, 0, time.UTC), stored.EndDate)
}

func TestHandlePaymentWebhook_ReintentoDuplicadoSinEfectos(t *testing.T) {
	f := newSubFixture(t)
	sub := f.seedSub(entity.SubscriptionStatusInactive,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))
	ev := webhookEvent(EventPaymentSucceeded, "pi_004", sub.ID, 5000)

	_, err := f.uc.HandlePaymentWebhook(context.Background(), ev)
	require.NoError(t, err)
	endAfterFirst := f.subs.subs[sub.ID].EndDate

	out, err := f.uc.HandlePaymentWebhook(context.Background(), ev)
	require.NoError(t, err, "un gateway_payment_id repetido se reconoce, no falla")
	assert.True(t, out.Success)

	assert.Len(t, f.payments.payments, 1, "el reintento no registra un segundo pago")
	assert.Equal(t, endAfterFirst, f.subs.subs[sub.ID].EndDate,
		"el reintento no vuelve a extender la suscripción")
}

func TestHandlePaymentWebhook_EventoNoManejado(t *testing.T) {
	f := newSubFixture(t)

	out, err := f.uc.HandlePaymentWebhook(context.Background(),
		webhookEvent("payment_intent.created", "pi_005", "cualquiera", 5000))
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.Equal(t, "evento no manejado", out.Detail)
	assert.Empty(t, f.payments.payments)
}

func TestHandlePaymentWebhook_CanceladaNoRevive(t *testing.T) {
	f := newSubFixture(t)
	sub := f.seedSub(entity.SubscriptionStatusCanceled,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))

	_, err := f.uc.HandlePaymentWebhook(context.Background(),
		webhookEvent(EventPaymentSucceeded, "pi_006", sub.ID, 5000))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestHandlePaymentWebhook_SinMetadataRechazado(t *testing.T) {
	f := newSubFixture(t)

	_, err := f.uc.HandlePaymentWebhook(context.Background(),
		webhookEvent(EventPaymentSucceeded, "pi_007", "", 5000))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHandlePaymentWebhook_MontoAusenteRechazado(t *testing.T) {
	f := newSubFixture(t)
	sub := f.seedSub(entity.SubscriptionStatusInactive,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))

	// Un payload sin amount_received no debe registrar un pago de 0.00.
	_, err := f.uc.HandlePaymentWebhook(context.Background(),
		webhookEvent(EventPaymentSucceeded, "pi_008", sub.ID, 0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.payments.payments)
	assert.Equal(t, entity.SubscriptionStatusInactive, f.subs.subs[sub.ID].Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Renovación manual y barrido
// ──────────────────────────────────────────────────────────────────────────────

func TestRenew_SoloVigentes(t *testing.T) {
	f := newSubFixture(t)
	sub := f.seedSub(entity.SubscriptionStatusInactive,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))

	_, err := f.uc.Renew(sub.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "una inactive se activa con pago, no con renovación")
}

func TestRenew_ExtiendeVigente(t *testing.T) {
	f := newSubFixture(t)
	sub := f.seedSub(entity.SubscriptionStatusPastDue,
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC))

	out, err := f.uc.Renew(sub.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.SubscriptionStatusActive, out.Status)
	assert.Equal(t, time.Date(2026, 4, 9, 0, 0, 0, 0, time.UTC), *out.EndDate,
		"end quedó atrás, la extensión arranca en hoy")
}

func TestSweepExpired_BarreSoloVencidas(t *testing.T) {
	f := newSubFixture(t)
	vencida := f.seedSub(entity.SubscriptionStatusActive,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	vigente := &entity.Subscription{
		ID:       "55555555-5555-5555-5555-555555555555",
		SchoolID: subTestSchoolID,
		PlanID:   subTestPlanID,
		Status:   entity.SubscriptionStatusActive,
		EndDate:  time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	f.subs.subs[vigente.ID] = vigente

	out, err := f.uc.SweepExpired()
	require.NoError(t, err)

	assert.Equal(t, 1, out.Expired)
	assert.Equal(t, entity.SubscriptionStatusExpired, f.subs.subs[vencida.ID].Status)
	assert.Equal(t, entity.SubscriptionStatusActive, f.subs.subs[vigente.ID].Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Planes
// ──────────────────────────────────────────────────────────────────────────────

func TestDeletePlan_ConSuscripcionesActivasRechazado(t *testing.T) {
	f := newSubFixture(t)
	f.plans.plans[subTestPlanID] = &entity.Plan{ID: subTestPlanID, Name: "Plan Mensual", DurationDays: 30}
	// El fake cuenta suscripciones reales del repo.
	f.seedSub(entity.SubscriptionStatusActive,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))
	counting := &countingPlanRepo{fakePlanRepo: f.plans, subs: f.subs}
	f.uc.planRepo = counting

	err := f.uc.DeletePlan(subTestPlanID)
	assert.ErrorIs(t, err, domain.ErrPlanInUse)
}

func TestCreatePlan_PrecioNegativoRechazado(t *testing.T) {
	f := newSubFixture(t)

	_, err := f.uc.CreatePlan(dto.CreatePlanRequest{
		Name: "Plan Raro", Price: decimal.NewFromInt(-1), DurationDays: 30,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

type countingPlanRepo struct {
	*fakePlanRepo
	subs *fakeSubRepo
}

func (r *countingPlanRepo) CountActiveSubscriptions(planID string) (int, error) {
	n := 0
	for _, s := range r.subs.subs {
		if s.PlanID == planID && s.Renewable() {
			n++
		}
	}
	return n, nil
}
